package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrine3d_back_end/internal/cache"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// UpdateProduct modifie un produit champ par champ : les champs absents du corps
// restent inchangés (merge, pas de remplacement). Propriétaire uniquement.
// PUT /api/products/:id (authentifié)
func UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("id")

	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price" binding:"omitempty,gte=0"`
		Category    *string   `json:"category"`
		Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
		Images      *[]string `json:"images"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := repositories.Products.GetByID(ctx, productID)
	if err == repositories.ErrProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		utils.InternalError(c, "Erreur lecture produit", err)
		return
	}

	if p.CreatedBy.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à modifier ce produit"})
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Images != nil {
		p.Images = *input.Images
	}

	if err := repositories.Products.Update(ctx, p); err != nil {
		utils.InternalError(c, "Erreur mise à jour produit", err)
		return
	}

	// 🔹 Invalider le cache Redis et réindexer
	cache.InvalidateProduct(ctx, productID)
	go services.IndexProduct(*p)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit et son modèle 3D stocké. Propriétaire
// uniquement. L'enregistrement part en premier, l'objet ensuite : en cas de
// panne entre les deux on garde un objet orphelin plutôt qu'une référence morte.
// DELETE /api/products/:id (authentifié)
func DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("id")

	p, err := repositories.Products.GetByID(ctx, productID)
	if err == repositories.ErrProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		utils.InternalError(c, "Erreur lecture produit", err)
		return
	}

	if p.CreatedBy.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à supprimer ce produit"})
		return
	}

	if err := repositories.Products.Delete(ctx, productID); err != nil {
		utils.InternalError(c, "Erreur suppression produit", err)
		return
	}

	if p.ModelKey != "" {
		if err := services.Assets.Remove(ctx, p.ModelKey); err != nil {
			// L'enregistrement est déjà parti : on logge l'objet orphelin
			log.Printf("⚠️ Objet orphelin dans le bucket (%s): %v", p.ModelKey, err)
		}
	}

	// 🔹 Invalider le cache Redis et l'index Elastic
	cache.InvalidateProduct(ctx, productID)
	go services.RemoveProductIndex(productID)

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
