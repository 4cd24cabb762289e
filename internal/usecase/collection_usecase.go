package usecase

import (
	"context"
	"strings"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/repository"
	"gudang/pkg/errors"
)

type CollectionUseCase struct {
	collectionRepo repository.CollectionRepository
}

func NewCollectionUseCase(collectionRepo repository.CollectionRepository) *CollectionUseCase {
	return &CollectionUseCase{
		collectionRepo: collectionRepo,
	}
}

type CreateCollectionInput struct {
	Name        string
	Description string
}

func (uc *CollectionUseCase) CreateCollection(ctx context.Context, input CreateCollectionInput) (*entity.Collection, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Collection name is required", nil)
	}

	collection := &entity.Collection{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := uc.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

func (uc *CollectionUseCase) GetCollectionByID(ctx context.Context, id string) (*entity.Collection, error) {
	return uc.collectionRepo.GetByID(ctx, id)
}

func (uc *CollectionUseCase) ListCollections(ctx context.Context) ([]*entity.Collection, error) {
	collections, err := uc.collectionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if collections == nil {
		collections = []*entity.Collection{}
	}
	return collections, nil
}
