package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/adiwijaya/storefront-service/internal/domain"
	"github.com/adiwijaya/storefront-service/internal/dto"
	"github.com/adiwijaya/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductService struct {
	addRequest    dto.ProductRequest
	addImage      *dto.ImageUpload
	updateRequest dto.ProductRequest
	deletedID     string
	err           error
	product       dto.ProductResponse
}

func (s *fakeProductService) AddProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) error {
	s.addRequest = data
	s.addImage = image
	return s.err
}

func (s *fakeProductService) UpdateProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) error {
	s.updateRequest = data
	return s.err
}

func (s *fakeProductService) DeleteProduct(ctx context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *fakeProductService) GetProductByID(ctx context.Context, id string) (dto.ProductResponse, error) {
	return s.product, s.err
}

type fakeCatalog struct {
	products []domain.Product
	queries  []string
}

func (c *fakeCatalog) Refresh(ctx context.Context) error { return nil }

func (c *fakeCatalog) Products(q string) []domain.Product {
	c.queries = append(c.queries, q)
	return c.products
}

func (c *fakeCatalog) Subscribe() (<-chan []domain.Product, func()) { return nil, func() {} }

func (c *fakeCatalog) ConsumeEvent() {}

func newTestController(svc *fakeProductService, catalog *fakeCatalog) *Controller {
	return &Controller{service: svc, catalog: catalog}
}

func multipartProductForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withImage {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="lamp.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGetProducts(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{
		{ID: "01ABC", Name: "Lamp", Price: 19.99, ImageURL: "https://cdn.example.com/images/01ABC"},
	}}
	c := newTestController(&fakeProductService{}, catalog)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=lam", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.GetProducts(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"lam"}, catalog.queries)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Metadata struct {
				TotalCount uint64 `json:"total_count"`
			} `json:"_metadata"`
			Records []dto.ProductResponse `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, uint64(1), resp.Data.Metadata.TotalCount)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, "Lamp", resp.Data.Records[0].Name)
}

func TestGetProductByIDNotFound(t *testing.T) {
	c := newTestController(&fakeProductService{err: errs.ErrNotFound}, &fakeCatalog{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/products/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("missing")

	require.NoError(t, c.GetProductByID(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddProduct(t *testing.T) {
	svc := &fakeProductService{}
	c := newTestController(svc, &fakeCatalog{})

	body, contentType := multipartProductForm(t, map[string]string{
		"name":        "Lamp",
		"description": "Desk lamp",
		"price":       "19.99",
	}, true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lamp", svc.addRequest.Name)
	assert.Equal(t, "Desk lamp", svc.addRequest.Description)
	assert.Equal(t, "19.99", svc.addRequest.Price)
	require.NotNil(t, svc.addImage)
	assert.Equal(t, "image/jpeg", svc.addImage.ContentType)

	content, err := io.ReadAll(svc.addImage.Content)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))
}

func TestAddProductValidationError(t *testing.T) {
	svc := &fakeProductService{err: errs.ErrValidation}
	c := newTestController(svc, &fakeCatalog{})

	body, contentType := multipartProductForm(t, map[string]string{"name": "Lamp"}, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductWithoutNewImage(t *testing.T) {
	svc := &fakeProductService{}
	c := newTestController(svc, &fakeCatalog{})

	body, contentType := multipartProductForm(t, map[string]string{
		"name":        "Lamp",
		"description": "Desk lamp",
		"price":       "19.99",
		"image_url":   "https://cdn.example.com/images/01ABC",
	}, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/products/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("01ABC")

	require.NoError(t, c.UpdateProduct(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "01ABC", svc.updateRequest.ID)
	assert.Equal(t, "https://cdn.example.com/images/01ABC", svc.updateRequest.ImageURL)
}

func TestDeleteProduct(t *testing.T) {
	type TestCase struct {
		Name           string
		ServiceErr     error
		ExpectedStatus int
	}

	testCases := []TestCase{
		{Name: "Existing product", ServiceErr: nil, ExpectedStatus: http.StatusOK},
		{Name: "Already deleted", ServiceErr: errs.ErrNotFound, ExpectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			svc := &fakeProductService{err: tc.ServiceErr}
			c := newTestController(svc, &fakeCatalog{})

			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)
			ctx.SetPath("/api/v1/products/:id")
			ctx.SetParamNames("id")
			ctx.SetParamValues("01ABC")

			require.NoError(t, c.DeleteProduct(ctx))

			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			assert.Equal(t, "01ABC", svc.deletedID)
		})
	}
}

func TestAddProductRejectsNonImageUpload(t *testing.T) {
	svc := &fakeProductService{}
	c := newTestController(svc, &fakeCatalog{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.addRequest.Name)
}
