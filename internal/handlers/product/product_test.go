package product_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vitrine3d_back_end/internal/database"
	"vitrine3d_back_end/internal/handlers/product"
	"vitrine3d_back_end/internal/middleware"
	"vitrine3d_back_end/internal/models"
	"vitrine3d_back_end/internal/repositories"
	"vitrine3d_back_end/internal/services"
	"vitrine3d_back_end/internal/utils"
)

// MockAssetStorage simule la passerelle de stockage objet.
type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) Upload(_ context.Context, key string, _ io.Reader, _ int64, contentType string) error {
	args := m.Called(key, contentType)
	return args.Error(0)
}

func (m *MockAssetStorage) Remove(_ context.Context, key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockAssetStorage) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(key, ttl)
	return args.String(0), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *repositories.MockProductRepository, *MockAssetStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "secret-de-test")

	repo := repositories.NewMockProductRepository()
	repositories.Products = repo

	assets := new(MockAssetStorage)
	services.Assets = assets

	r := gin.New()
	// Mêmes routes qu'en production, sans le rate limiting Redis
	r.GET("/api/products", product.GetProducts)
	r.GET("/api/products/search", product.SearchProducts)
	r.GET("/api/products/:id", product.GetProduct)
	r.POST("/api/products", middleware.AuthRequired(), product.CreateProduct)
	r.PUT("/api/products/:id", middleware.AuthRequired(), product.UpdateProduct)
	r.DELETE("/api/products/:id", middleware.AuthRequired(), product.DeleteProduct)
	r.POST("/api/products/:id/model", middleware.AuthRequired(), middleware.ModelUploadLimit(), product.UploadProductModel)

	return r, repo, assets
}

func authHeader(t *testing.T, userID gocql.UUID) string {
	t.Helper()
	token, err := utils.GenerateJWT(models.User{ID: userID, Email: "test@vitrine3d.fr"})
	require.NoError(t, err)
	return "Bearer " + token
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &p))
	return p
}

type listResponse struct {
	Products    []models.ProductWithModelURL `json:"products"`
	Total       int                          `json:"total"`
	Pages       int                          `json:"pages"`
	CurrentPage int                          `json:"currentPage"`
}

func TestGetProducts_PaginationAndModelURL(t *testing.T) {
	r, repo, assets := setupTest(t)
	owner := gocql.TimeUUID()

	seedProduct(t, repo, models.Product{Name: "Chaise", Description: "Chaise en bois", Price: 100, Category: "furniture", CreatedBy: owner})
	seedProduct(t, repo, models.Product{Name: "Lampe", Description: "Lampe de bureau", Price: 45, Category: "lighting", CreatedBy: owner})
	withModel := seedProduct(t, repo, models.Product{Name: "Table", Description: "Table en chêne", Price: 250, Category: "furniture",
		ModelKey: "models/abc/1-table.glb", CreatedBy: owner})

	assets.On("PresignedURL", withModel.ModelKey, services.ModelURLTTL).
		Return("https://minio.test/signed/table.glb", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?page=1&limit=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Pages) // ceil(3/2)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Len(t, resp.Products, 2)

	// Sans modèle : modelUrl null
	assert.Nil(t, resp.Products[0].ModelURL)

	// Page 2 : le produit avec modèle reçoit une URL signée fraîche
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	require.NotNil(t, resp.Products[0].ModelURL)
	assert.Equal(t, "https://minio.test/signed/table.glb", *resp.Products[0].ModelURL)

	assets.AssertExpectations(t)
}

func TestGetProducts_FilterAndSort(t *testing.T) {
	r, repo, _ := setupTest(t)
	owner := gocql.TimeUUID()

	seedProduct(t, repo, models.Product{Name: "Chaise", Description: "Bois", Price: 100, Category: "furniture", CreatedBy: owner})
	seedProduct(t, repo, models.Product{Name: "Table", Description: "Chêne", Price: 250, Category: "furniture", CreatedBy: owner})
	seedProduct(t, repo, models.Product{Name: "Lampe", Description: "Métal", Price: 45, Category: "lighting", CreatedBy: owner})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=furniture&sort=price_desc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Table", resp.Products[0].Name)
	assert.Equal(t, "Chaise", resp.Products[1].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	r, _, _ := setupTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+gocql.TimeUUID().String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_SetsOwner(t *testing.T) {
	r, _, _ := setupTest(t)
	owner := gocql.TimeUUID()

	body := `{"name":"Chair","description":"Une chaise","price":100,"category":"furniture","stock":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, owner))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, owner, created.CreatedBy)
	assert.Equal(t, 5, created.Stock)

	// Le détail renvoie modelUrl: null tant qu'aucun modèle n'est uploadé
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var detail models.ProductWithModelURL
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Nil(t, detail.ModelURL)
}

func TestCreateProduct_RejectsInvalidInput(t *testing.T) {
	r, _, _ := setupTest(t)
	owner := gocql.TimeUUID()

	// Prix négatif refusé par le binding
	body := `{"name":"Chair","description":"Une chaise","price":-1,"category":"furniture","stock":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, owner))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProduct_OwnershipAndMerge(t *testing.T) {
	r, repo, _ := setupTest(t)
	owner := gocql.TimeUUID()
	intruder := gocql.TimeUUID()

	p := seedProduct(t, repo, models.Product{Name: "Chair", Description: "Une chaise", Price: 100, Category: "furniture", Stock: 5, CreatedBy: owner})

	// Non-propriétaire : 403 et enregistrement intact
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+p.ID.String(), strings.NewReader(`{"price":50}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, intruder))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	unchanged, err := repo.GetByID(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 100.0, unchanged.Price)

	// Propriétaire : merge partiel, seuls les champs fournis changent
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/products/"+p.ID.String(), strings.NewReader(`{"price":80}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, owner))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	updated, err := repo.GetByID(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, "Chair", updated.Name)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, owner, updated.CreatedBy)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	r, _, _ := setupTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+gocql.TimeUUID().String(), strings.NewReader(`{"price":80}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, gocql.TimeUUID()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_RemovesStoredModel(t *testing.T) {
	r, repo, assets := setupTest(t)
	owner := gocql.TimeUUID()

	p := seedProduct(t, repo, models.Product{Name: "Table", Description: "Table", Price: 250, Category: "furniture",
		ModelKey: "models/abc/1-table.glb", CreatedBy: owner})

	// Exactement un RemoveObject avec la clé stockée
	assets.On("Remove", "models/abc/1-table.glb").Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+p.ID.String(), nil)
	req.Header.Set("Authorization", authHeader(t, owner))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assets.AssertExpectations(t)

	_, err := repo.GetByID(context.Background(), p.ID.String())
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestDeleteProduct_Forbidden(t *testing.T) {
	r, repo, assets := setupTest(t)
	owner := gocql.TimeUUID()

	p := seedProduct(t, repo, models.Product{Name: "Table", Description: "Table", Price: 250, Category: "furniture",
		ModelKey: "models/abc/1-table.glb", CreatedBy: owner})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+p.ID.String(), nil)
	req.Header.Set("Authorization", authHeader(t, gocql.TimeUUID()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assets.AssertNotCalled(t, "Remove", mock.Anything)

	_, err := repo.GetByID(context.Background(), p.ID.String())
	assert.NoError(t, err)
}

func TestAuthRequired_RejectsForgedToken(t *testing.T) {
	r, _, _ := setupTest(t)

	// Token signé avec un autre secret que JWT_SECRET : refusé, même bien formé
	claims := jwt.MapClaims{
		"user_id": gocql.TimeUUID().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("super_secret"))
	require.NoError(t, err)

	body := `{"name":"Chair","description":"Une chaise","price":100,"category":"furniture","stock":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchProducts_FallbackSubstring(t *testing.T) {
	// Sans client Elasticsearch, la recherche retombe sur le filtre substring
	r, repo, _ := setupTest(t)
	owner := gocql.TimeUUID()

	seedProduct(t, repo, models.Product{Name: "Chaise scandinave", Description: "Bois clair", Price: 100, Category: "furniture", CreatedBy: owner})
	seedProduct(t, repo, models.Product{Name: "Lampe", Description: "Métal", Price: 45, Category: "lighting", CreatedBy: owner})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=CHAISE", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.ProductWithModelURL
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Chaise scandinave", resp[0].Name)

	// Paramètre manquant
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/search", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchProducts_EmptyElasticResultStaysEmpty(t *testing.T) {
	r, repo, _ := setupTest(t)
	owner := gocql.TimeUUID()

	// Ce produit matcherait en substring, mais Elastic répond : zéro hit
	seedProduct(t, repo, models.Product{Name: "Chaise scandinave", Description: "Bois clair", Price: 100, Category: "furniture", CreatedBy: owner})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":{"hits":[]}}`))
	}))
	defer srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	database.Elastic = client
	t.Cleanup(func() { database.Elastic = nil })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=chaise", nil)
	r.ServeHTTP(w, req)

	// Un résultat plein texte vide reste vide : pas de repli substring
	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.ProductWithModelURL
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp)
}
