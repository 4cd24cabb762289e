package main

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"gudang/internal/adapter/api"
	"gudang/internal/adapter/api/handler"
	"gudang/internal/adapter/api/router"
	"gudang/internal/adapter/repository"
	domainrepo "gudang/internal/domain/repository"
	"gudang/internal/domain/service"
	"gudang/internal/infrastructure/storage"
	"gudang/internal/usecase"
	"gudang/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var productRepo domainrepo.ProductRepository
	var collectionRepo domainrepo.CollectionRepository
	var fileService service.FileUploadService

	switch cfg.StorageDriver {
	case "memory":
		log.Printf("Using in-memory storage driver")
		productRepo = repository.NewMemoryProductRepository()
		collectionRepo = repository.NewMemoryCollectionRepository()
		fileService = storage.NewMemoryFileStore()
	default:
		var opts []option.ClientOption
		if cfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.GCPProject, opts...)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		productRepo = repository.NewFirestoreProductRepository(firestoreClient)
		collectionRepo = repository.NewFirestoreCollectionRepository(firestoreClient)

		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.CredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		fileService = storageClient
	}

	productUseCase := usecase.NewProductUseCase(productRepo, collectionRepo, fileService)
	collectionUseCase := usecase.NewCollectionUseCase(collectionRepo)

	handler.Setup(productUseCase, collectionUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
