package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/repository"
	"gudang/pkg/errors"
)

type memoryCollectionRepository struct {
	mu          sync.RWMutex
	collections map[string]*entity.Collection
}

func NewMemoryCollectionRepository() repository.CollectionRepository {
	return &memoryCollectionRepository{
		collections: make(map[string]*entity.Collection),
	}
}

func (r *memoryCollectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if collection.ID == "" {
		collection.ID = uuid.New().String()
	}

	now := time.Now()
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = now
	}
	collection.UpdatedAt = now

	stored := *collection
	r.collections[collection.ID] = &stored

	return nil
}

func (r *memoryCollectionRepository) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.collections[id]
	if !ok {
		return nil, errors.NotFound("Collection", nil)
	}

	collection := *stored
	return &collection, nil
}

func (r *memoryCollectionRepository) List(ctx context.Context) ([]*entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collections := make([]*entity.Collection, 0, len(r.collections))
	for _, stored := range r.collections {
		collection := *stored
		collections = append(collections, &collection)
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})

	return collections, nil
}
