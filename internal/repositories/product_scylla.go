package repositories

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"vitrine3d_back_end/internal/models"
)

const productColumns = `product_id, name, description, price, category, stock, image_urls, model_key, created_by, created_at, updated_at`

// ScyllaProductRepository stocke les produits dans la table products.
// ScyllaDB ne supporte pas LIKE/regex : List fait un scan complet et le
// filtrage/tri se fait en mémoire dans services.ApplyProductQuery.
type ScyllaProductRepository struct {
	session *gocql.Session
}

func NewScyllaProductRepository(session *gocql.Session) *ScyllaProductRepository {
	return &ScyllaProductRepository{session: session}
}

func (r *ScyllaProductRepository) List(ctx context.Context) ([]models.Product, error) {
	iter := r.session.Query(`SELECT `+productColumns+` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	var modelKey string

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
		&p.Images, &modelKey, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt) {
		p.ModelKey = modelKey
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
		modelKey = ""
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ScyllaProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	productUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var p models.Product
	err = r.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`,
		gocql.UUID(productUUID)).WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
			&p.Images, &p.ModelKey, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ScyllaProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	return r.session.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock,
		p.Images, p.ModelKey, p.CreatedBy, p.CreatedAt, p.UpdatedAt).WithContext(ctx).Exec()
}

func (r *ScyllaProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()

	// created_by et created_at sont immuables : jamais réécrits ici
	return r.session.Query(`UPDATE products SET name = ?, description = ?, price = ?, category = ?, stock = ?, image_urls = ?, model_key = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Stock,
		p.Images, p.ModelKey, p.UpdatedAt, p.ID).WithContext(ctx).Exec()
}

func (r *ScyllaProductRepository) Delete(ctx context.Context, id string) error {
	productUUID, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}
	return r.session.Query(`DELETE FROM products WHERE product_id = ?`,
		gocql.UUID(productUUID)).WithContext(ctx).Exec()
}
