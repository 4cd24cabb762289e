package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/listing"
	"gudang/internal/domain/repository"
	"gudang/pkg/errors"
)

// memoryProductRepository is a map-backed ProductRepository used by the
// memory storage driver and by tests. Listing runs through the same query
// engine as the Firestore driver.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	order    []string
}

func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		products: make(map[string]*entity.Product),
	}
}

func (r *memoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	stored := *product
	r.products[product.ID] = &stored
	r.order = append(r.order, product.ID)

	return nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}

	product := *stored
	return &product, nil
}

func (r *memoryProductRepository) List(ctx context.Context, query listing.Query) ([]*entity.Product, int, error) {
	r.mu.RLock()
	snapshot := make([]*entity.Product, 0, len(r.order))
	for _, id := range r.order {
		if stored, ok := r.products[id]; ok {
			product := *stored
			snapshot = append(snapshot, &product)
		}
	}
	r.mu.RUnlock()

	items, totalPages := query.Apply(snapshot)
	return items, totalPages, nil
}

func (r *memoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}

	product.UpdatedAt = time.Now()
	stored := *product
	r.products[product.ID] = &stored

	return nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}

	delete(r.products, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
