package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// testEnv bundles the router and backing stores for handler tests.
type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Svcs   *Services
}

// setupTestEnv builds a router over an in-memory SQLite database. Redis-backed
// features (drafts, rate limiting) stay disabled.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeLike{},
		&models.RecipeBookmark{},
		&models.MealSlot{},
	))

	svcs := NewServices(db, nil, "test-secret")

	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router, svcs)

	return &testEnv{Router: router, DB: db, Svcs: svcs}
}

// createTestUserAndToken inserts a user and returns their ID with a valid JWT.
func createTestUserAndToken(t *testing.T, env *testEnv) (uuid.UUID, string) {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, env.DB.Create(&user).Error)

	token, err := env.Svcs.Auth.GenerateToken(&types.TokenClaims{
		UserID:   user.ID,
		UserName: user.Name,
	})
	require.NoError(t, err)

	return user.ID, token
}

// createTestRecipe inserts a recipe owned by the given user.
func createTestRecipe(t *testing.T, env *testEnv, authorID uuid.UUID, title string, ingredients []string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:        title,
		Description:  "test recipe",
		Ingredients:  ingredients,
		Instructions: []string{"step 1"},
		AuthorID:     authorID,
	}
	recipe.Embedding = service.GenerateEmbedding(recipe.Title + " " + recipe.Description)
	require.NoError(t, env.DB.Create(&recipe).Error)
	return &recipe
}

// performRequest makes an HTTP request against the test router. An empty
// token leaves the Authorization header unset.
func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
