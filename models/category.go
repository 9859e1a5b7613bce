package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category groups notes per user. Name is unique per owner, enforced by
// the composite index rather than a pre-query.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Category) FromJSON(data []byte) error {
	return json.Unmarshal(data, c)
}

func (c *Category) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// CategoryDetail is a category together with the notes filed under it.
type CategoryDetail struct {
	Category
	Notes []Note `json:"notes"`
}
