package router

import (
	"gudang/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupCollectionRouter(e *echo.Echo) {
	collectionHandler := handler.GetCollectionHandler()

	collections := e.Group("/collections")
	collections.GET("", collectionHandler.ListCollections)
	collections.GET("/:id", collectionHandler.GetCollection)
	collections.POST("", collectionHandler.CreateCollection)
}
