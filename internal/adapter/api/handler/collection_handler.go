package handler

import (
	"gudang/internal/usecase"
	"gudang/pkg/response"

	"github.com/labstack/echo/v4"
)

type CollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCollectionHandler(collectionUseCase *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
	}
}

type createCollectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *CollectionHandler) ListCollections(c echo.Context) error {
	collections, err := h.collectionUseCase.ListCollections(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collections)
}

func (h *CollectionHandler) GetCollection(c echo.Context) error {
	id := c.Param("id")

	collection, err := h.collectionUseCase.GetCollectionByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collection)
}

func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	var req createCollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collectionUseCase.CreateCollection(c.Request().Context(), usecase.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, collection)
}
