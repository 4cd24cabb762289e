package handler

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"gudang/internal/domain/listing"
	"gudang/internal/usecase"
	"gudang/pkg/errors"
	"gudang/pkg/response"
	"gudang/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// sortFieldAliases maps the legacy admin-form column names onto the
// whitelisted sort fields.
var sortFieldAliases = map[string]string{
	"productName":  "name",
	"collectionID": "collectionId",
}

type createProductRequest struct {
	Name          string  `validate:"required"`
	Description   string  `validate:"-"`
	Size          string  `validate:"-"`
	Color         string  `validate:"-"`
	Price         float64 `validate:"gte=0"`
	StockQuantity int     `validate:"gte=0"`
	CollectionID  string  `validate:"required"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	sortField := c.QueryParam("_sort")
	if alias, ok := sortFieldAliases[sortField]; ok {
		sortField = alias
	}

	query := listing.Query{
		Page:         pagination.Page,
		Limit:        pagination.PageSize,
		Search:       c.QueryParam("q"),
		CollectionID: c.QueryParam("category"),
		SortField:    sortField,
		SortOrder:    c.QueryParam("_order"),
	}

	items, totalPages, err := h.productUseCase.ListProducts(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, totalPages)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productUseCase.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	price, err := parsePrice(c.FormValue("price"))
	if err != nil {
		return response.Error(c, err)
	}

	stockQuantity, err := parseStockQuantity(c.FormValue("stockQuantity"))
	if err != nil {
		return response.Error(c, err)
	}

	req := createProductRequest{
		Name:          c.FormValue("productName"),
		Description:   c.FormValue("description"),
		Size:          c.FormValue("size"),
		Color:         c.FormValue("color"),
		Price:         price,
		StockQuantity: stockQuantity,
		CollectionID:  c.FormValue("collectionID"),
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	images, cleanup, err := openImageFiles(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer cleanup()

	product, err := h.productUseCase.CreateProduct(
		c.Request().Context(),
		usecase.CreateProductInput{
			CollectionID:  req.CollectionID,
			Name:          req.Name,
			Description:   req.Description,
			Size:          req.Size,
			Color:         req.Color,
			Price:         req.Price,
			StockQuantity: req.StockQuantity,
		},
		images,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

// updateProductRequest is the JSON shape of a partial update; absent
// fields stay nil and are left unchanged.
type updateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Size          *string  `json:"size"`
	Color         *string  `json:"color"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stockQuantity"`
	CollectionID  *string  `json:"collectionId"`
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	var input usecase.UpdateProductInput
	var images []usecase.ImageUpload

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		var req updateProductRequest
		if err := c.Bind(&req); err != nil {
			return response.Error(c, errors.BadRequest("Invalid request body", err))
		}
		input = usecase.UpdateProductInput{
			Name:          req.Name,
			Description:   req.Description,
			Size:          req.Size,
			Color:         req.Color,
			Price:         req.Price,
			StockQuantity: req.StockQuantity,
			CollectionID:  req.CollectionID,
		}
	} else {
		parsed, err := parseUpdateForm(c)
		if err != nil {
			return response.Error(c, err)
		}
		input = parsed

		files, cleanup, err := openImageFiles(c)
		if err != nil {
			return response.Error(c, err)
		}
		defer cleanup()
		images = files
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), id, input, images)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted",
	})
}

// parseUpdateForm reads a partial update from form fields; only fields
// present in the submission are touched.
func parseUpdateForm(c echo.Context) (usecase.UpdateProductInput, error) {
	var input usecase.UpdateProductInput

	params, err := c.FormParams()
	if err != nil {
		return input, errors.BadRequest("Invalid form data", err)
	}

	setString := func(key string, dst **string) {
		if values, ok := params[key]; ok && len(values) > 0 {
			value := values[0]
			*dst = &value
		}
	}

	setString("productName", &input.Name)
	setString("description", &input.Description)
	setString("size", &input.Size)
	setString("color", &input.Color)
	setString("collectionID", &input.CollectionID)

	if values, ok := params["price"]; ok && len(values) > 0 {
		price, err := parsePrice(values[0])
		if err != nil {
			return input, err
		}
		input.Price = &price
	}

	if values, ok := params["stockQuantity"]; ok && len(values) > 0 {
		stockQuantity, err := parseStockQuantity(values[0])
		if err != nil {
			return input, err
		}
		input.StockQuantity = &stockQuantity
	}

	return input, nil
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.BadRequest("Price is required", nil)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.BadRequest("Price must be a number", err)
	}
	return price, nil
}

func parseStockQuantity(raw string) (int, error) {
	if raw == "" {
		return 0, errors.BadRequest("Stock quantity is required", nil)
	}
	stockQuantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest("Stock quantity must be an integer", err)
	}
	return stockQuantity, nil
}

// openImageFiles pulls the uploaded "images" parts in submission order.
// The cap is enforced here, before anything reaches the upload pipeline.
func openImageFiles(c echo.Context) ([]usecase.ImageUpload, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; no images attached.
		return nil, noop, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, noop, nil
	}
	if len(files) > usecase.MaxProductImages {
		return nil, noop, errors.BadRequest(
			fmt.Sprintf("At most %d images are allowed", usecase.MaxProductImages), nil)
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	images := make([]usecase.ImageUpload, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			cleanup()
			return nil, noop, errors.BadRequest("Unable to read uploaded file", err)
		}
		opened = append(opened, src)
		images = append(images, usecase.ImageUpload{
			Content:  src,
			FileType: fileHeader.Header.Get("Content-Type"),
		})
	}

	return images, cleanup, nil
}
