package cache

import (
	"context"
	"encoding/json"
	"time"

	"vitrine3d_back_end/internal/database"
	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/repositories"
)

const ProductCacheTTL = 10 * time.Minute

// GetProduct récupère un produit depuis Redis, sinon depuis le repository.
// Seul l'enregistrement brut est mis en cache, jamais l'URL signée : elle est
// régénérée à chaque requête pour que sa fenêtre de validité reste exacte.
func GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	key := "product:" + productID

	// 1. Essayer le cache Redis
	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
			var p models.Product
			if json.Unmarshal([]byte(data), &p) == nil {
				return &p, nil
			}
		}
	}

	// 2. Récupérer depuis le repository
	p, err := repositories.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	if database.Redis != nil {
		if jsonData, err := json.Marshal(p); err == nil {
			database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)
		}
	}

	return p, nil
}

// InvalidateProduct invalide le cache d'un produit après mutation.
func InvalidateProduct(ctx context.Context, productID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, "product:"+productID)
}
