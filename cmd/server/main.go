package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"vitrine3d_back_end/internal/config"
	"vitrine3d_back_end/internal/database"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/routes"
	"vitrine3d_back_end/internal/services"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET manquant : impossible de signer les tokens")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	// ✅ Brancher le repository produits et la passerelle de stockage objet
	repositories.Products = repositories.NewScyllaProductRepository(database.Scylla)
	services.UseMinioStorage()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Vitrine3D lancé sur le port", port)
	r.Run(":" + port)
}
