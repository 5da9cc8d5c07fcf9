package product

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vitrine3d_back_end/internal/cache"
	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// GetProducts liste les produits avec filtre, tri et pagination.
// GET /api/products?category&search&sort&page&limit
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := services.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	}

	all, err := repositories.Products.List(ctx)
	if err != nil {
		utils.InternalError(c, "Erreur lecture produits", err)
		return
	}

	result := services.ApplyProductQuery(all, query)

	// Pas de résultat partiel : la moindre URL signée en échec fait tout échouer
	products := make([]models.ProductWithModelURL, 0, len(result.Products))
	for _, p := range result.Products {
		withURL, err := attachModelURL(ctx, p)
		if err != nil {
			utils.InternalError(c, "Erreur génération URL signée", err)
			return
		}
		products = append(products, withURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total":       result.Total,
		"pages":       result.Pages,
		"currentPage": result.CurrentPage,
	})
}

// GetProduct renvoie un produit par id, avec son URL signée de modèle 3D.
// GET /api/products/:id
func GetProduct(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := cache.GetProduct(ctx, c.Param("id"))
	if err == repositories.ErrProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		utils.InternalError(c, "Erreur lecture produit", err)
		return
	}

	withURL, err := attachModelURL(ctx, *p)
	if err != nil {
		utils.InternalError(c, "Erreur génération URL signée", err)
		return
	}

	c.JSON(http.StatusOK, withURL)
}

// CreateProduct crée un produit ; le créateur en devient propriétaire.
// POST /api/products (authentifié)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Price       *float64 `json:"price" binding:"required,gte=0"`
		Category    string   `json:"category" binding:"required"`
		Stock       *int     `json:"stock" binding:"required,gte=0"`
		Images      []string `json:"images"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userUUID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	p := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
		Stock:       *input.Stock,
		Images:      images,
		CreatedBy:   userUUID,
	}

	if err := repositories.Products.Create(c.Request.Context(), &p); err != nil {
		utils.InternalError(c, "Erreur création produit", err)
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// attachModelURL génère l'URL signée du modèle 3D (null si aucun modèle).
// L'URL est toujours générée à la demande, validité fixe services.ModelURLTTL.
func attachModelURL(ctx context.Context, p models.Product) (models.ProductWithModelURL, error) {
	result := models.ProductWithModelURL{Product: p}

	if p.ModelKey == "" {
		return result, nil
	}

	url, err := services.Assets.PresignedURL(ctx, p.ModelKey, services.ModelURLTTL)
	if err != nil {
		return result, err
	}
	result.ModelURL = &url
	return result, nil
}
