package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// SearchProducts fait une recherche plein texte via Elasticsearch.
// GET /api/products/search?q=
func SearchProducts(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire). Un résultat vide est un
	// vrai résultat : le fallback ne joue que si Elastic est indisponible
	results, err := services.SearchProducts(query)
	if err != nil {
		// 🔁 2️⃣ Fallback : scan complet + filtre substring en mémoire
		all, listErr := repositories.Products.List(ctx)
		if listErr != nil {
			utils.InternalError(c, "Erreur recherche", listErr)
			return
		}
		fallback := services.ApplyProductQuery(all, services.ProductQuery{Search: query, Limit: len(all) + 1})
		results = fallback.Products
	}

	products := make([]models.ProductWithModelURL, 0, len(results))
	for _, p := range results {
		withURL, err := attachModelURL(ctx, p)
		if err != nil {
			utils.InternalError(c, "Erreur génération URL signée", err)
			return
		}
		products = append(products, withURL)
	}

	c.JSON(http.StatusOK, products)
}
