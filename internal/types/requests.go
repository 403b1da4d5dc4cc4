package types

import (
	"time"

	"github.com/google/uuid"
)

// UpdateSettingsRequest carries a partial settings update. Pointer fields
// distinguish "not supplied" from "set to empty"; only supplied fields are
// written.
type UpdateSettingsRequest struct {
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	OtherData *string  `json:"other_data"`
	Goals     *string  `json:"goals"`
}

// SettingsResponse is the settings read/write response shape.
type SettingsResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Weight    *float64  `json:"weight"`
	Height    *float64  `json:"height"`
	OtherData *string   `json:"other_data"`
	Goals     *string   `json:"goals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
