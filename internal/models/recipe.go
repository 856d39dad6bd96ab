package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// StringList is a custom type for handling ordered string lists in JSONB.
// Legacy documents stored ingredients and instructions either as a JSON
// array or as a single newline-delimited block of text; Scan accepts both
// and always yields the canonical list form.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		// Unrecognized driver types yield an empty list rather than
		// leaving whatever the receiver held before.
		*l = StringList{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(bytes, &list); err == nil {
		*l = compactLines(list)
		return nil
	}

	// Single JSON string, e.g. "\"2 cups flour\n1 cup sugar\"".
	var block string
	if err := json.Unmarshal(bytes, &block); err == nil {
		*l = SplitLines(block)
		return nil
	}

	// Raw text block.
	*l = SplitLines(string(bytes))
	return nil
}

// UnmarshalJSON accepts either a JSON array of strings or a single
// newline-delimited string, so uploads and AI responses can use either form.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = compactLines(list)
		return nil
	}

	var block string
	if err := json.Unmarshal(data, &block); err != nil {
		return err
	}
	*l = SplitLines(block)
	return nil
}

// SplitLines splits a newline-delimited block into trimmed, non-blank lines.
func SplitLines(block string) []string {
	return compactLines(strings.Split(block, "\n"))
}

// compactLines trims every entry and drops blank/whitespace-only ones,
// preserving order.
func compactLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type Recipe struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Ingredients   StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags          StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Difficulty    string          `gorm:"size:20;default:'medium'" json:"difficulty"`
	Servings      int             `json:"servings"`
	PrepTime      int             `json:"prep_time"`
	CookTime      int             `json:"cook_time"`
	ImageURL      string          `gorm:"size:255" json:"image_url"`
	Calories      float64         `gorm:"type:float" json:"calories"`
	Protein       float64         `gorm:"type:float" json:"protein"`
	Carbs         float64         `gorm:"type:float" json:"carbs"`
	Fat           float64         `gorm:"type:float" json:"fat"`
	IsAIGenerated bool            `gorm:"default:false" json:"is_ai_generated"`
	Likes         int             `gorm:"default:0" json:"likes"`
	Bookmarks     int             `gorm:"default:0" json:"bookmarks"`
	Embedding     pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	AuthorID      uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"author_id"`
	AuthorName    string          `gorm:"size:255" json:"author_name"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeLike records a single user's like of a recipe.
type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_like_user_recipe,unique" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_like_user_recipe,unique" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *RecipeLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// RecipeBookmark records a recipe saved to a user's collection.
type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_bookmark_user_recipe,unique" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_bookmark_user_recipe,unique" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *RecipeBookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
