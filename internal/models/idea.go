package models

import "time"

// Idea is a date night idea stored in the date_night_idea table
type Idea struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Description    *string        `json:"description,omitempty"`
	BudgetCategory BudgetCategory `json:"budgetCategory"`
	Location       *string        `json:"location,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	IsSuggested    bool           `json:"isSuggested"`
}

// IdeaInput holds the writable fields of an Idea
type IdeaInput struct {
	Title          string
	Description    *string
	BudgetCategory BudgetCategory
	Location       *string
}
