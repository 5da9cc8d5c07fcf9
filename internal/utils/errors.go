package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrine3d_back_end/internal/config"
)

// InternalError renvoie un 500 générique au client. Le détail complet est toujours
// loggé côté serveur, mais n'est renvoyé au client qu'en dehors de la production.
func InternalError(c *gin.Context, message string, err error) {
	log.Printf("❌ %s: %v", message, err)

	body := gin.H{"error": message}
	if !config.IsProduction() && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
