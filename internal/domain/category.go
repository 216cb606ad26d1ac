package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type Category struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	IconURL          string    `json:"icon_url,omitempty"`
	ParentCategoryID null.Int  `json:"parent_category_id"` // at most one level of nesting
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CategoryDTO struct {
	Name             string `json:"name" binding:"required"`
	IconURL          string `json:"icon_url"`
	ParentCategoryID *int   `json:"parent_category_id"`
}
