package order

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"vitrine3d_back_end/internal/cache"
	"vitrine3d_back_end/internal/database"
	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// CreateOrder crée une commande depuis le panier client : validation du stock,
// prix recalculés côté serveur, PaymentIntent Stripe, puis e-mail de
// confirmation en asynchrone.
// POST /api/orders (authentifié)
func CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req struct {
		Items []struct {
			ProductID string `json:"productId" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	userUUID, err := gocql.ParseUUID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// ✅ 1. Vérifier le stock et reprendre les prix actuels du catalogue
	var items []models.OrderItem
	var total float64
	updated := make([]*models.Product, 0, len(req.Items))

	for _, item := range req.Items {
		p, err := repositories.Products.GetByID(ctx, item.ProductID)
		if err == repositories.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}
		if err != nil {
			utils.InternalError(c, "Erreur lecture produit", err)
			return
		}

		if p.Stock < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   p.Name,
				"available": p.Stock,
				"requested": item.Quantity,
			})
			return
		}

		items = append(items, models.OrderItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
		total += p.Price * float64(item.Quantity)

		p.Stock -= item.Quantity
		updated = append(updated, p)
	}

	// ✅ 2. Créer le PaymentIntent Stripe (montant en centimes)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(total * 100))),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", userID)

	pi, err := paymentintent.New(params)
	if err != nil {
		utils.InternalError(c, "Erreur création paiement", err)
		return
	}

	// ✅ 3. Persister la commande (items sérialisés en JSON)
	o := models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          userUUID,
		Items:           items,
		Total:           total,
		Status:          "pending",
		PaymentIntentID: pi.ID,
		CreatedAt:       time.Now(),
	}

	itemsJSON, _ := json.Marshal(o.Items)
	if err := database.Scylla.Query(`INSERT INTO orders (user_id, order_id, items, total, status, payment_intent_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.UserID, o.ID, string(itemsJSON), o.Total, o.Status, o.PaymentIntentID, o.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		utils.InternalError(c, "Erreur création commande", err)
		return
	}

	// ✅ 4. Décrémenter les stocks
	for _, p := range updated {
		if err := repositories.Products.Update(ctx, p); err != nil {
			utils.InternalError(c, "Erreur mise à jour stock", err)
			return
		}
		cache.InvalidateProduct(ctx, p.ID.String())
		go services.IndexProduct(*p)
	}

	// 📤 5. Confirmation par e-mail (asynchrone, jamais bloquant)
	if email != "" {
		go services.SendOrderConfirmation(email, o)
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":        o,
		"clientSecret": pi.ClientSecret,
	})
}

// GetMyOrders liste les commandes de l'utilisateur authentifié.
// GET /api/orders (authentifié)
func GetMyOrders(c *gin.Context) {
	userUUID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	iter := database.Scylla.Query(`SELECT order_id, items, total, status, payment_intent_id, created_at FROM orders WHERE user_id = ?`,
		userUUID).WithContext(c.Request.Context()).Iter()

	orders := []models.Order{}
	var o models.Order
	var itemsJSON string

	for iter.Scan(&o.ID, &itemsJSON, &o.Total, &o.Status, &o.PaymentIntentID, &o.CreatedAt) {
		o.UserID = userUUID
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			o.Items = nil
		}
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		utils.InternalError(c, "Erreur lecture commandes", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
