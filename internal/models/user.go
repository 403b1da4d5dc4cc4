package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	Diets    []WeeklyDiet  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Settings *UserSettings `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSettings is the physiological/goal profile used as generation input.
// At most one row per user; weight and height stay null until the user sets them.
type UserSettings struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Weight    *float64  `gorm:"check:weight IS NULL OR weight > 0" json:"weight"`
	Height    *float64  `gorm:"check:height IS NULL OR height > 0" json:"height"`
	OtherData *string   `gorm:"type:text" json:"other_data"`
	Goals     *string   `gorm:"type:text" json:"goals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
