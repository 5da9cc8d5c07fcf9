package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vitrine3d_back_end/internal/database"
	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

// Register crée un compte local et renvoie directement un JWT.
// POST /api/users/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// email déjà pris ?
	var existingID gocql.UUID
	err := database.Scylla.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).
		WithContext(c.Request.Context()).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}
	if err != gocql.ErrNotFound {
		utils.InternalError(c, "Erreur création utilisateur", err)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.InternalError(c, "Erreur création utilisateur", err)
		return
	}

	u := models.User{
		ID:           gocql.TimeUUID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := database.Scylla.Query(`INSERT INTO users (user_id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).WithContext(c.Request.Context()).Exec(); err != nil {
		utils.InternalError(c, "Erreur création utilisateur", err)
		return
	}

	// ✅ Table miroir pour le login par email
	if err := database.Scylla.Query(`INSERT INTO users_by_email (email, user_id, name, password_hash) VALUES (?, ?, ?, ?)`,
		u.Email, u.ID, u.Name, u.PasswordHash).WithContext(c.Request.Context()).Exec(); err != nil {
		utils.InternalError(c, "Erreur création utilisateur", err)
		return
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		utils.InternalError(c, "Erreur génération token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": u.ID.String(),
		"email":  u.Email,
		"name":   u.Name,
	})
}

// Login vérifie email + mot de passe et renvoie un JWT.
// POST /api/users/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var u models.User
	err := database.Scylla.Query(`SELECT user_id, name, password_hash FROM users_by_email WHERE email = ?`, input.Email).
		WithContext(c.Request.Context()).Scan(&u.ID, &u.Name, &u.PasswordHash)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	u.Email = input.Email

	ok, err := utils.VerifyPassword(input.Password, u.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		utils.InternalError(c, "Erreur génération token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": u.ID.String(),
		"email":  u.Email,
		"name":   u.Name,
	})
}

// Me renvoie le profil de l'utilisateur authentifié.
// GET /api/users/me (authentifié)
func Me(c *gin.Context) {
	userUUID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var u models.User
	err = database.Scylla.Query(`SELECT user_id, name, email, created_at FROM users WHERE user_id = ?`, userUUID).
		WithContext(c.Request.Context()).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":    u.ID.String(),
		"name":      u.Name,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	})
}
