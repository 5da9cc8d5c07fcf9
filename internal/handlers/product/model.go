package product

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vitrine3d_back_end/internal/cache"
	"vitrine3d_back_end/internal/middleware"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// UploadProductModel remplace le modèle 3D d'un produit. Propriétaire uniquement.
// Le nouvel objet est écrit d'abord, l'enregistrement persiste ensuite, et
// l'ancien objet n'est supprimé qu'en dernier : jamais de référence morte.
// POST /api/products/:id/model (authentifié, multipart champ "model")
func UploadProductModel(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à modifier ce produit"})
		return
	}

	// Le plafond de 50 MiB est posé par middleware.ModelUploadLimit : au-delà,
	// la lecture du multipart échoue ici avant le filtre de type
	file, header, err := c.Request.FormFile("model")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu ou fichier trop volumineux (max 50 Mo)"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !middleware.IsAllowedModelFile(contentType, header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de fichier invalide. Seuls les fichiers GLB et GLTF sont acceptés"})
		return
	}

	modelType := c.PostForm("modelType")
	if modelType != "glb" && modelType != "gltf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'modelType' doit valoir 'glb' ou 'gltf'"})
		return
	}
	if ext := strings.TrimPrefix(filepath.Ext(header.Filename), "."); ext != "" && ext != modelType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'modelType' ne correspond pas à l'extension du fichier"})
		return
	}

	// Clé dérivée de l'id et de l'horodatage : pas de collision avec un
	// upload précédent du même produit
	modelKey := fmt.Sprintf("models/%s/%d-%s", productID, time.Now().UnixMilli(), header.Filename)

	if err := services.Assets.Upload(ctx, modelKey, file, header.Size, contentType); err != nil {
		utils.InternalError(c, "Erreur upload du modèle", err)
		return
	}

	oldKey := p.ModelKey
	p.ModelKey = modelKey
	if err := repositories.Products.Update(ctx, p); err != nil {
		utils.InternalError(c, "Erreur mise à jour produit", err)
		return
	}

	// L'enregistrement pointe déjà sur le nouvel objet : l'ancien peut partir
	if oldKey != "" {
		if err := services.Assets.Remove(ctx, oldKey); err != nil {
			log.Printf("⚠️ Ancien modèle non supprimé (%s): %v", oldKey, err)
		}
	}

	cache.InvalidateProduct(ctx, productID)

	modelURL, err := services.Assets.PresignedURL(ctx, modelKey, services.ModelURLTTL)
	if err != nil {
		utils.InternalError(c, "Erreur génération URL signée", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Modèle uploadé avec succès",
		"modelUrl": modelURL,
	})
}
