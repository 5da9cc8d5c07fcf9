package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxModelSize est la taille maximale d'un modèle 3D uploadé (50 MiB).
const MaxModelSize = 50 * 1024 * 1024

// Types MIME canoniques des modèles GLB/GLTF. Certains systèmes ne les
// connaissent pas : l'extension du fichier sert de repli.
const (
	MimeGLB  = "model/gltf-binary"
	MimeGLTF = "model/gltf+json"
)

// IsAllowedModelFile accepte un fichier si son type MIME est un des deux types
// canoniques, OU si son nom se termine par .glb / .gltf.
func IsAllowedModelFile(contentType, filename string) bool {
	if contentType == MimeGLB || contentType == MimeGLTF {
		return true
	}
	return strings.HasSuffix(filename, ".glb") || strings.HasSuffix(filename, ".gltf")
}

// ModelUploadLimit plafonne le corps de la requête avant toute lecture du
// multipart : au-delà de 50 MiB, la requête échoue avant le filtre de type.
func ModelUploadLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxModelSize)
		c.Next()
	}
}
