package repositories

import (
	"context"
	"errors"

	"vitrine3d_back_end/internal/models"
)

// ErrProductNotFound est renvoyée quand l'id ne résout aucun produit.
var ErrProductNotFound = errors.New("produit introuvable")

// ProductRepository abstrait le stockage des produits pour que les handlers
// restent testables sans cluster Scylla.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// Products est l'implémentation branchée au démarrage (Scylla en prod,
// mock en tests).
var Products ProductRepository
