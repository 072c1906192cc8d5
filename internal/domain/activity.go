package domain

import "time"

// SearchRecord is one logged search query, newest-first in storage.
type SearchRecord struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductRecord is one logged product view or click.
type ProductRecord struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name,omitempty"`
	Category  string    `json:"category,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryCount pairs a category with how often it appeared in the log.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ActivitySummary aggregates the activity log for dashboards.
type ActivitySummary struct {
	TotalEvents   int             `json:"totalEvents"`
	ProductViews  int             `json:"productViews"`
	ProductClicks int             `json:"productClicks"`
	Searches      int             `json:"searches"`
	TopCategories []CategoryCount `json:"topCategories"`
	LastActive    *time.Time      `json:"lastActive,omitempty"`
}
