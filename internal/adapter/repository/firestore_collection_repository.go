package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/repository"
	"gudang/pkg/errors"
)

type firestoreCollectionRepository struct {
	client *firestore.Client
}

func NewFirestoreCollectionRepository(client *firestore.Client) repository.CollectionRepository {
	return &firestoreCollectionRepository{
		client: client,
	}
}

func (r *firestoreCollectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	if collection.ID == "" {
		doc := r.client.Collection("collections").NewDoc()
		collection.ID = doc.ID
	}

	now := time.Now()
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = now
	}
	collection.UpdatedAt = now

	_, err := r.client.Collection("collections").Doc(collection.ID).Set(ctx, collection)
	if err != nil {
		return errors.Internal("Failed to create collection", err)
	}

	return nil
}

func (r *firestoreCollectionRepository) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	doc, err := r.client.Collection("collections").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Collection", err)
		}
		return nil, errors.Internal("Failed to get collection", err)
	}

	var collection entity.Collection
	if err := doc.DataTo(&collection); err != nil {
		return nil, errors.Internal("Failed to parse collection data", err)
	}

	return &collection, nil
}

func (r *firestoreCollectionRepository) List(ctx context.Context) ([]*entity.Collection, error) {
	iter := r.client.Collection("collections").OrderBy("name", firestore.Asc).Documents(ctx)

	var collections []*entity.Collection
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate collections", err)
		}

		var collection entity.Collection
		if err := doc.DataTo(&collection); err != nil {
			return nil, errors.Internal("Failed to parse collection data", err)
		}
		collections = append(collections, &collection)
	}

	return collections, nil
}
