package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"vitrine3d_back_end/internal/models"
)

// MockProductRepository est une implémentation en mémoire de ProductRepository,
// utilisée par les tests des handlers.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string // Ordre d'insertion (Scylla n'a pas d'ordre garanti, les tests si)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]models.Product)}
}

func (r *MockProductRepository) List(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		list = append(list, r.products[id])
	}
	return list, nil
}

func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *MockProductRepository) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	id := p.ID.String()
	r.products[id] = *p
	r.order = append(r.order, id)
	return nil
}

func (r *MockProductRepository) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID.String()
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	r.products[id] = *p
	return nil
}

func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
