package handler

import (
	"gudang/internal/usecase"
)

var (
	productHandler    *ProductHandler
	collectionHandler *CollectionHandler
	healthHandler     *HealthHandler
)

func Setup(
	productUseCase *usecase.ProductUseCase,
	collectionUseCase *usecase.CollectionUseCase,
) {
	productHandler = NewProductHandler(productUseCase)
	collectionHandler = NewCollectionHandler(collectionUseCase)
	healthHandler = NewHealthHandler()
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCollectionHandler() *CollectionHandler {
	return collectionHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
