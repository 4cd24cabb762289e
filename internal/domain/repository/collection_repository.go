package repository

import (
	"context"

	"gudang/internal/domain/entity"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	GetByID(ctx context.Context, id string) (*entity.Collection, error)
	List(ctx context.Context) ([]*entity.Collection, error)
}
