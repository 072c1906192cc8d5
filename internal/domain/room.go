package domain

import "time"

// RoomDimensions describes the physical room, all values in centimeters.
type RoomDimensions struct {
	Width  float64 `json:"width,omitempty"`
	Length float64 `json:"length,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Room is a user-defined design profile used to personalize product ranking.
// It lives only in this service's storage; there is no sync, the last
// write wins.
type Room struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Styles            []string       `json:"styles,omitempty"`
	BudgetMin         *float64       `json:"budgetMin,omitempty"`
	BudgetMax         *float64       `json:"budgetMax,omitempty"`
	ExistingFurniture string         `json:"existingFurniture,omitempty"`
	Dimensions        RoomDimensions `json:"dimensions,omitempty"`
	ProductIDs        []string       `json:"productIds,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
