package models

import "github.com/google/uuid"

// Search result discriminators.
const (
	SearchTypeNote     = "note"
	SearchTypeCategory = "category"
)

// SearchResult is one row of the unified search response. Type routes
// client-side navigation; Summary and CategoryName are only set for
// note results.
type SearchResult struct {
	Type         string    `json:"type"`
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
}
