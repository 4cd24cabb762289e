package router

import (
	"gudang/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo) {
	productHandler := handler.GetProductHandler()

	inventory := e.Group("/inventory")
	inventory.GET("", productHandler.ListProducts)
	inventory.GET("/:id", productHandler.GetProduct)
	inventory.POST("", productHandler.CreateProduct)
	inventory.PUT("/:id", productHandler.UpdateProduct)
	inventory.DELETE("/:id", productHandler.DeleteProduct)
}
