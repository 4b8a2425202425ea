package domain

import "time"

type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	InStock      bool      `json:"inStock"`
	Sizes        []string  `json:"sizes,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}
