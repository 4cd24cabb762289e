package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"gudang/internal/adapter/api"
	"gudang/internal/adapter/api/handler"
	"gudang/internal/adapter/repository"
	"gudang/internal/domain/entity"
	"gudang/internal/domain/listing"
	domainrepo "gudang/internal/domain/repository"
	"gudang/internal/usecase"
	"gudang/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu     sync.Mutex
	count  int
	failOn string
}

func (f *fakeUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	raw, _ := io.ReadAll(file)
	if f.failOn != "" && string(raw) == f.failOn {
		return "", fmt.Errorf("upload exploded")
	}
	f.mu.Lock()
	f.count++
	n := f.count
	f.mu.Unlock()
	return fmt.Sprintf("https://storage.googleapis.com/test-bucket/%s/img-%d", folder, n), nil
}

func (f *fakeUploader) DeleteFile(ctx context.Context, fileURL string) error { return nil }

func (f *fakeUploader) Close() error { return nil }

type fixture struct {
	echo           *echo.Echo
	handler        *handler.ProductHandler
	productRepo    domainrepo.ProductRepository
	collectionRepo domainrepo.CollectionRepository
	collection     *entity.Collection
}

func newFixture(t *testing.T, uploader *fakeUploader) *fixture {
	t.Helper()

	productRepo := repository.NewMemoryProductRepository()
	collectionRepo := repository.NewMemoryCollectionRepository()

	collection := &entity.Collection{Name: "Winter"}
	require.NoError(t, collectionRepo.Create(context.Background(), collection))

	uc := usecase.NewProductUseCase(productRepo, collectionRepo, uploader)

	e := echo.New()
	e.Validator = api.NewValidator()

	return &fixture{
		echo:           e,
		handler:        handler.NewProductHandler(uc),
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		collection:     collection,
	}
}

func multipartBody(t *testing.T, fields map[string]string, imageContents []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for i, content := range imageContents {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="img-%d.png"`, i))
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (f *fixture) createForm(t *testing.T, overrides map[string]string, imageContents []string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	fields := map[string]string{
		"productName":   "Red Scarf",
		"description":   "Wool scarf",
		"price":         "19.99",
		"stockQuantity": "3",
		"collectionID":  f.collection.ID,
		"size":          "M",
		"color":         "red",
	}
	for key, value := range overrides {
		fields[key] = value
	}

	body, contentType := multipartBody(t, fields, imageContents)
	req := httptest.NewRequest(http.MethodPost, "/inventory", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	return rec, f.handler.CreateProduct(c)
}

func listingAll() listing.Query {
	return listing.Query{Page: 1, Limit: 100}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp.Error.Code
}

func TestCreateProductHandler(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var product entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Red Scarf", product.Name)
	assert.Equal(t, 19.99, product.Price)
	assert.Equal(t, 3, product.StockQuantity)
	assert.Len(t, product.ImageURLs, 2)
}

func TestCreateProductHandlerRejectsNonNumericPrice(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, map[string]string{"price": "cheap"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestCreateProductHandlerRejectsNonNumericStock(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, map[string]string{"stockQuantity": "many"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestCreateProductHandlerRequiresName(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, map[string]string{"productName": ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestCreateProductHandlerRejectsSixImages(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, []string{"1", "2", "3", "4", "5", "6"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestCreateProductHandlerUploadFailure(t *testing.T) {
	f := newFixture(t, &fakeUploader{failOn: "bad"})

	rec, err := f.createForm(t, nil, []string{"good", "bad"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPLOAD_FAILED", errorCode(t, rec))

	// Nothing was persisted.
	items, _, repoErr := f.productRepo.List(context.Background(), listingAll())
	require.NoError(t, repoErr)
	assert.Empty(t, items)
}

func TestGetProductHandlerNotFound(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodGet, "/inventory/ghost", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	c.SetPath("/inventory/:id")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	require.NoError(t, f.handler.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestUpdateProductHandlerJSONPartial(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, nil)
	require.NoError(t, err)
	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodPut, "/inventory/"+created.ID,
		strings.NewReader(`{"price": 42.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	updateRec := httptest.NewRecorder()
	c := f.echo.NewContext(req, updateRec)
	c.SetPath("/inventory/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	require.NoError(t, f.handler.UpdateProduct(c))
	assert.Equal(t, http.StatusOK, updateRec.Code)

	var updated entity.Product
	require.NoError(t, json.Unmarshal(updateRec.Body.Bytes(), &updated))
	assert.Equal(t, 42.5, updated.Price)
	assert.Equal(t, "Red Scarf", updated.Name)
	assert.Equal(t, created.CollectionID, updated.CollectionID)
}

func TestUpdateProductHandlerFormPartial(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, nil)
	require.NoError(t, err)
	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	body, contentType := multipartBody(t, map[string]string{"stockQuantity": "7"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/inventory/"+created.ID, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	updateRec := httptest.NewRecorder()
	c := f.echo.NewContext(req, updateRec)
	c.SetPath("/inventory/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	require.NoError(t, f.handler.UpdateProduct(c))
	assert.Equal(t, http.StatusOK, updateRec.Code)

	var updated entity.Product
	require.NoError(t, json.Unmarshal(updateRec.Body.Bytes(), &updated))
	assert.Equal(t, 7, updated.StockQuantity)
	assert.Equal(t, 19.99, updated.Price)
}

func TestUpdateProductHandlerRejectsEmptyNumericFields(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, nil)
	require.NoError(t, err)
	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// A blank submitted value must not be coerced to zero.
	for _, field := range []string{"price", "stockQuantity"} {
		body, contentType := multipartBody(t, map[string]string{field: ""}, nil)
		req := httptest.NewRequest(http.MethodPut, "/inventory/"+created.ID, body)
		req.Header.Set(echo.HeaderContentType, contentType)
		updateRec := httptest.NewRecorder()
		c := f.echo.NewContext(req, updateRec)
		c.SetPath("/inventory/:id")
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, f.handler.UpdateProduct(c))
		assert.Equal(t, http.StatusBadRequest, updateRec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, updateRec))
	}

	stored, err := f.productRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.99, stored.Price)
	assert.Equal(t, 3, stored.StockQuantity)
}

func TestCreateProductHandlerRequiresPrice(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, map[string]string{"price": ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestUpdateProductHandlerNotFound(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPut, "/inventory/ghost",
		strings.NewReader(`{"price": 1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	c.SetPath("/inventory/:id")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	require.NoError(t, f.handler.UpdateProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductHandlerTwiceReturnsNotFound(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	rec, err := f.createForm(t, nil, nil)
	require.NoError(t, err)
	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	del := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/inventory/"+created.ID, nil)
		deleteRec := httptest.NewRecorder()
		c := f.echo.NewContext(req, deleteRec)
		c.SetPath("/inventory/:id")
		c.SetParamNames("id")
		c.SetParamValues(created.ID)
		require.NoError(t, f.handler.DeleteProduct(c))
		return deleteRec
	}

	assert.Equal(t, http.StatusOK, del().Code)
	assert.Equal(t, http.StatusNotFound, del().Code)
}

func TestListProductsHandler(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	for i := 1; i <= 12; i++ {
		_, err := f.createForm(t, map[string]string{
			"productName": fmt.Sprintf("Shirt %02d", i),
			"price":       fmt.Sprintf("%d", i),
		}, nil)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/inventory?page=2&limit=5&_sort=price&_order=asc", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.ListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Items      []entity.Product `json:"items"`
		TotalPages int              `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Items, 5)
	assert.Equal(t, "Shirt 06", result.Items[0].Name)
	assert.Equal(t, "Shirt 10", result.Items[4].Name)
}

func TestListProductsHandlerSortAlias(t *testing.T) {
	f := newFixture(t, &fakeUploader{})

	for _, name := range []string{"banana", "apple"} {
		_, err := f.createForm(t, map[string]string{"productName": name}, nil)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/inventory?_sort=productName&_order=asc", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.ListProducts(c))

	var result struct {
		Items []entity.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "apple", result.Items[0].Name)
}
