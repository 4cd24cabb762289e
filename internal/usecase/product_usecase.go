package usecase

import (
	"context"
	"io"
	"strings"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/listing"
	"gudang/internal/domain/repository"
	"gudang/internal/domain/service"
	"gudang/pkg/errors"
)

// MaxProductImages caps the image list on every product.
const MaxProductImages = 5

type ProductUseCase struct {
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
	fileService    service.FileUploadService
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	collectionRepo repository.CollectionRepository,
	fileService service.FileUploadService,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		fileService:    fileService,
	}
}

// ImageUpload is one raw uploaded file handed to the pipeline.
type ImageUpload struct {
	Content  io.Reader
	FileType string
}

type CreateProductInput struct {
	CollectionID  string
	Name          string
	Description   string
	Size          string
	Color         string
	Price         float64
	StockQuantity int
}

// UpdateProductInput is a partial field set; nil means "leave unchanged".
type UpdateProductInput struct {
	CollectionID  *string
	Name          *string
	Description   *string
	Size          *string
	Color         *string
	Price         *float64
	StockQuantity *int
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput, images []ImageUpload) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Product name is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price must not be negative", nil)
	}
	if input.StockQuantity < 0 {
		return nil, errors.BadRequest("Stock quantity must not be negative", nil)
	}
	if len(images) > MaxProductImages {
		return nil, errors.BadRequest("A product can have at most 5 images", nil)
	}

	if err := uc.validateCollection(ctx, input.CollectionID); err != nil {
		return nil, err
	}

	// Uploads must all succeed before anything is persisted.
	imageURLs, err := uc.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		CollectionID:  input.CollectionID,
		Name:          input.Name,
		Description:   input.Description,
		Size:          input.Size,
		Color:         input.Color,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ImageURLs:     imageURLs,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		uc.cleanupUploads(imageURLs)
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, query listing.Query) ([]*entity.Product, int, error) {
	return uc.productRepo.List(ctx, query)
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input UpdateProductInput, images []ImageUpload) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, errors.BadRequest("Product name is required", nil)
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Size != nil {
		product.Size = *input.Size
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price must not be negative", nil)
		}
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, errors.BadRequest("Stock quantity must not be negative", nil)
		}
		product.StockQuantity = *input.StockQuantity
	}
	if input.CollectionID != nil {
		if err := uc.validateCollection(ctx, *input.CollectionID); err != nil {
			return nil, err
		}
		product.CollectionID = *input.CollectionID
	}

	// Replacement images re-run the pipeline and replace the whole list.
	var newImageURLs []string
	if len(images) > 0 {
		if len(images) > MaxProductImages {
			return nil, errors.BadRequest("A product can have at most 5 images", nil)
		}
		imageURLs, err := uc.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		newImageURLs = imageURLs
		product.ImageURLs = imageURLs
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		uc.cleanupUploads(newImageURLs)
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

func (uc *ProductUseCase) validateCollection(ctx context.Context, collectionID string) error {
	if collectionID == "" {
		return errors.BadRequest("Collection is required", nil)
	}
	if _, err := uc.collectionRepo.GetByID(ctx, collectionID); err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.BadRequest("Unknown collection", err)
		}
		return err
	}
	return nil
}
