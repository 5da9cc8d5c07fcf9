package routes

import (
	"github.com/gin-gonic/gin"

	"vitrine3d_back_end/internal/handlers/order"
	"vitrine3d_back_end/internal/handlers/product"
	"vitrine3d_back_end/internal/handlers/user"
	"vitrine3d_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Produits
	products := api.Group("/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/search", middleware.SearchRateLimit(), product.SearchProducts)
		products.GET("/:id", product.GetProduct)

		products.POST("", middleware.AuthRequired(), product.CreateProduct)
		products.PUT("/:id", middleware.AuthRequired(), product.UpdateProduct)
		products.DELETE("/:id", middleware.AuthRequired(), product.DeleteProduct)
		products.POST("/:id/model", middleware.AuthRequired(), middleware.ModelUploadLimit(), product.UploadProductModel)
	}

	// Utilisateurs
	users := api.Group("/users")
	{
		users.POST("/register", user.Register)
		users.POST("/login", user.Login)
		users.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// Commandes
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", order.CreateOrder)
		orders.GET("", order.GetMyOrders)
	}
}
