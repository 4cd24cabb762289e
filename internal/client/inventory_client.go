package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/listing"
	"gudang/pkg/errors"
	"gudang/pkg/response"
)

// InventoryClient is a thin HTTP client over the inventory REST surface.
type InventoryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type ListResult struct {
	Items      []entity.Product `json:"items"`
	TotalPages int              `json:"totalPages"`
}

// ImageFile is one attachment of a create/update form submission.
type ImageFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// ProductForm carries the admin form fields for create and full-form
// update submissions. Field names follow the original admin form.
type ProductForm struct {
	Name          string
	Description   string
	Size          string
	Color         string
	Price         float64
	StockQuantity int
	CollectionID  string
	Images        []ImageFile
}

func (c *InventoryClient) ListProducts(ctx context.Context, query listing.Query) (*ListResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.Search != "" {
		params.Set("q", query.Search)
	}
	if query.CollectionID != "" {
		params.Set("category", query.CollectionID)
	}
	if query.SortField != "" {
		params.Set("_sort", query.SortField)
		params.Set("_order", query.SortOrder)
	}

	var result ListResult
	if err := c.doJSON(ctx, http.MethodGet, "/inventory?"+params.Encode(), nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *InventoryClient) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := c.doJSON(ctx, http.MethodGet, "/inventory/"+url.PathEscape(id), nil, "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *InventoryClient) CreateProduct(ctx context.Context, form ProductForm) (*entity.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var product entity.Product
	if err := c.doJSON(ctx, http.MethodPost, "/inventory", body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *InventoryClient) UpdateProduct(ctx context.Context, id string, form ProductForm) (*entity.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var product entity.Product
	if err := c.doJSON(ctx, http.MethodPut, "/inventory/"+url.PathEscape(id), body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *InventoryClient) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/inventory/"+url.PathEscape(id), nil, "", nil)
}

func (c *InventoryClient) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	var collections []entity.Collection
	if err := c.doJSON(ctx, http.MethodGet, "/collections", nil, "", &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (c *InventoryClient) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp response.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Code == "" {
		return errors.New("HTTP_ERROR", fmt.Sprintf("request failed with status %d", resp.StatusCode), resp.StatusCode, nil)
	}
	return errors.New(errResp.Error.Code, errResp.Error.Message, resp.StatusCode, nil)
}

func encodeProductForm(form ProductForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"productName":   form.Name,
		"description":   form.Description,
		"size":          form.Size,
		"color":         form.Color,
		"price":         strconv.FormatFloat(form.Price, 'f', -1, 64),
		"stockQuantity": strconv.Itoa(form.StockQuantity),
		"collectionID":  form.CollectionID,
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	for _, img := range form.Images {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename=%q`, img.Name))
		header.Set("Content-Type", img.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
