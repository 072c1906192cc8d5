package domain

// Dimensions holds product measurements; fields vary by product type
type Dimensions struct {
	Width      int `json:"width,omitempty"`
	Height     int `json:"height,omitempty"`
	Depth      int `json:"depth,omitempty"`
	SeatHeight int `json:"seatHeight,omitempty"`
	Diameter   int `json:"diameter,omitempty"`
}

// Product represents a catalog product as served by the catalog API.
// Tag lists (styles, colors, tags) are free-text and may be missing entirely
// for malformed records; consumers treat nil slices as empty.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	Image       string     `json:"image,omitempty"`
	Images      []string   `json:"images,omitempty"`
	Description string     `json:"description,omitempty"`
	Styles      []string   `json:"styles,omitempty"`
	Colors      []string   `json:"colors,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Dimensions  Dimensions `json:"dimensions,omitempty"`
	InStock     bool       `json:"inStock"`
	Trending    bool       `json:"trending,omitempty"`
}

// MatchResult is the outcome of scoring a single product against a room.
// Score is always within [0, 100]; Reasons are ordered by accumulation.
type MatchResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScoredProduct is a product annotated with its room match.
type ScoredProduct struct {
	Product
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
}

// ProductComparison is the catalog API's verdict on a product pair.
type ProductComparison struct {
	FirstID        string `json:"firstId"`
	SecondID       string `json:"secondId"`
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation,omitempty"`
}

// RoomAnalysis is the catalog API's interpretation of an uploaded room photo.
type RoomAnalysis struct {
	Style         string    `json:"style,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	DetectedItems []string  `json:"detectedItems,omitempty"`
	Suggestions   []Product `json:"suggestions,omitempty"`
}
