package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

type seedRecipe struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	Tags         []string
	Difficulty   string
	Servings     int
	PrepTime     int
	CookTime     int
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
}

var seedRecipes = []seedRecipe{
	{
		Title:       "Classic Spaghetti Bolognese",
		Description: "A rich, slow-simmered meat sauce over spaghetti.",
		Ingredients: []string{
			"400g spaghetti",
			"500g ground beef",
			"1 onion, finely chopped",
			"2 cloves garlic, minced",
			"800g canned crushed tomatoes",
			"2 tbsp olive oil",
			"1 tsp dried oregano",
			"Salt and pepper to taste",
		},
		Instructions: []string{
			"Heat the olive oil and soften the onion and garlic.",
			"Brown the beef, breaking it up as it cooks.",
			"Add the tomatoes and oregano, then simmer for 45 minutes.",
			"Cook the spaghetti until al dente and serve topped with the sauce.",
		},
		Tags:       []string{"italian", "pasta", "dinner"},
		Difficulty: "easy",
		Servings:   4,
		PrepTime:   15,
		CookTime:   60,
		Calories:   650, Protein: 32, Carbs: 78, Fat: 22,
	},
	{
		Title:       "Chickpea Buddha Bowl",
		Description: "A colorful vegan bowl with roasted chickpeas and tahini dressing.",
		Ingredients: []string{
			"1 can chickpeas, drained",
			"1 cup cooked quinoa",
			"1 avocado, sliced",
			"2 cups baby spinach",
			"1 carrot, shredded",
			"2 tbsp tahini",
			"1 lemon, juiced",
			"1 tbsp olive oil",
		},
		Instructions: []string{
			"Roast the chickpeas with olive oil at 200C for 20 minutes.",
			"Whisk the tahini with lemon juice and a splash of water.",
			"Arrange quinoa, spinach, carrot and avocado in bowls.",
			"Top with chickpeas and drizzle with the dressing.",
		},
		Tags:       []string{"vegan", "healthy", "lunch"},
		Difficulty: "easy",
		Servings:   2,
		PrepTime:   10,
		CookTime:   20,
		Calories:   520, Protein: 18, Carbs: 55, Fat: 26,
	},
	{
		Title:       "Thai Green Curry",
		Description: "Fragrant coconut curry with vegetables and chicken.",
		Ingredients: []string{
			"500g chicken thighs, sliced",
			"3 tbsp green curry paste",
			"400ml coconut milk",
			"1 red bell pepper, sliced",
			"100g green beans",
			"1 tbsp fish sauce",
			"1 tsp brown sugar",
			"Fresh basil leaves",
		},
		Instructions: []string{
			"Fry the curry paste until fragrant.",
			"Add the chicken and coat it in the paste.",
			"Pour in the coconut milk and simmer for 15 minutes.",
			"Add the vegetables, fish sauce and sugar; cook 5 more minutes.",
			"Finish with basil and serve over rice.",
		},
		Tags:       []string{"thai", "curry", "dinner"},
		Difficulty: "medium",
		Servings:   4,
		PrepTime:   15,
		CookTime:   25,
		Calories:   580, Protein: 35, Carbs: 18, Fat: 40,
	},
	{
		Title:       "Overnight Oats with Berries",
		Description: "No-cook breakfast oats soaked in milk with fresh berries.",
		Ingredients: []string{
			"1/2 cup rolled oats",
			"1/2 cup milk",
			"1/4 cup Greek yogurt",
			"1 tbsp chia seeds",
			"1 tbsp honey",
			"1/2 cup mixed berries",
		},
		Instructions: []string{
			"Stir the oats, milk, yogurt, chia seeds and honey together.",
			"Refrigerate overnight in a sealed jar.",
			"Top with berries before serving.",
		},
		Tags:       []string{"breakfast", "healthy", "no-cook"},
		Difficulty: "easy",
		Servings:   1,
		PrepTime:   5,
		CookTime:   0,
		Calories:   390, Protein: 17, Carbs: 58, Fat: 10,
	},
	{
		Title:       "Beef Tacos with Pico de Gallo",
		Description: "Weeknight tacos with seasoned beef and fresh salsa.",
		Ingredients: []string{
			"500g ground beef",
			"8 corn tortillas",
			"1 tbsp taco seasoning",
			"2 tomatoes, diced",
			"1/2 red onion, diced",
			"1 lime, juiced",
			"Fresh cilantro",
			"1 cup shredded lettuce",
		},
		Instructions: []string{
			"Brown the beef and stir in the taco seasoning.",
			"Mix the tomatoes, onion, lime juice and cilantro for the pico.",
			"Warm the tortillas in a dry skillet.",
			"Fill the tortillas with beef, lettuce and pico de gallo.",
		},
		Tags:       []string{"mexican", "dinner", "quick"},
		Difficulty: "easy",
		Servings:   4,
		PrepTime:   15,
		CookTime:   15,
		Calories:   540, Protein: 30, Carbs: 42, Fat: 27,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db.Gorm); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()

	// Seed author account shared by all seeded recipes.
	author := models.User{
		Name:         "Plateful Kitchen",
		Email:        fmt.Sprintf("kitchen+%d@plateful.app", time.Now().Unix()),
		PasswordHash: "seed-only",
	}
	if err := db.Gorm.WithContext(ctx).Create(&author).Error; err != nil {
		log.Fatalf("Failed to create seed author: %v", err)
	}

	recipes := service.NewRecipeService(db.Gorm)
	for _, seed := range seedRecipes {
		recipe := models.Recipe{
			ID:           uuid.New(),
			Title:        seed.Title,
			Description:  seed.Description,
			Ingredients:  seed.Ingredients,
			Instructions: seed.Instructions,
			Tags:         seed.Tags,
			Difficulty:   seed.Difficulty,
			Servings:     seed.Servings,
			PrepTime:     seed.PrepTime,
			CookTime:     seed.CookTime,
			Calories:     seed.Calories,
			Protein:      seed.Protein,
			Carbs:        seed.Carbs,
			Fat:          seed.Fat,
			AuthorID:     author.ID,
			AuthorName:   author.Name,
		}
		if _, err := recipes.CreateRecipe(ctx, &recipe); err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", seed.Title, err)
		}
		log.Printf("Seeded recipe: %s", seed.Title)
	}

	log.Printf("Seeded %d recipes", len(seedRecipes))
}
