package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Category    string     `json:"category" db:"category"`
	Stock       int        `json:"stock" db:"stock"`
	Images      []string   `json:"images" db:"image_urls"`
	ModelKey    string     `json:"modelKey,omitempty" db:"model_key"`
	CreatedBy   gocql.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductWithModelURL est la forme renvoyée par l'API : le produit + l'URL signée
// du modèle 3D (null si aucun modèle n'a été uploadé pour ce produit).
type ProductWithModelURL struct {
	Product
	ModelURL *string `json:"modelUrl"`
}
