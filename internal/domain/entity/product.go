package entity

import (
	"time"
)

type Product struct {
	ID            string    `json:"id" firestore:"id"`
	CollectionID  string    `json:"collectionId" firestore:"collectionId"`
	Name          string    `json:"name" firestore:"name"`
	Description   string    `json:"description" firestore:"description"`
	Size          string    `json:"size" firestore:"size"`
	Color         string    `json:"color" firestore:"color"`
	Price         float64   `json:"price" firestore:"price"`
	StockQuantity int       `json:"stockQuantity" firestore:"stockQuantity"`
	ImageURLs     []string  `json:"imageUrls" firestore:"imageUrls"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`
}
