package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recognized values for MealSlot.Day and MealSlot.MealType.
var (
	Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

	MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}
)

// MealSlot assigns one recipe to one meal type on one day within one week.
// PlannedFor pins the slot to a concrete calendar date so the same weekday
// in different weeks is a different slot.
type MealSlot struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index:idx_slot_user_date" json:"user_id"`
	Day        string    `gorm:"size:10;not null" json:"day"`
	MealType   string    `gorm:"size:10;not null" json:"meal_type"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null" json:"recipe_id"`
	PlannedFor time.Time `gorm:"type:date;not null;index:idx_slot_user_date" json:"planned_for"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *MealSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidDay reports whether day is one of the seven recognized weekday names.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// ValidMealType reports whether mealType is one of the recognized meal types.
func ValidMealType(mealType string) bool {
	for _, m := range MealTypes {
		if m == mealType {
			return true
		}
	}
	return false
}
