package models

import "time"

// Route is a campus shuttle route managed entirely from the dashboard.
type Route struct {
	ID              string    `json:"_id"`
	StartPoint      string    `json:"startPoint"`
	EndPoint        string    `json:"endPoint"`
	Price           float64   `json:"price"`
	StudentDiscount float64   `json:"studentDiscount"` // percentage
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// RouteInput carries the create/edit form fields before numeric coercion.
type RouteInput struct {
	StartPoint      string `json:"startPoint"`
	EndPoint        string `json:"endPoint"`
	Price           string `json:"price"`
	StudentDiscount string `json:"studentDiscount"`
}
