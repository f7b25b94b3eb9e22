package controller

import (
	"strings"

	"github.com/adiwijaya/storefront-service/internal/dto"
	"github.com/adiwijaya/storefront-service/internal/service"
	pkgdto "github.com/adiwijaya/storefront-service/pkg/dto"
	"github.com/adiwijaya/storefront-service/pkg/errs"
	"github.com/adiwijaya/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProductService
	catalog service.CatalogSync
}

func CreateProductController(e *echo.Group, service service.ProductService, catalog service.CatalogSync, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
		catalog: catalog,
	}
	e.GET("/products", c.GetProducts)
	e.GET("/products/:id", c.GetProductByID)
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.PUT("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
}

func (c *Controller) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
	}

	products := c.catalog.Products(filter.Q)

	responsePayload := pkgdto.PaginationResponse{}
	responsePayload.Metadata.TotalCount = uint64(len(products))
	responsePayload.Metadata.Limit = filter.Limit
	responsePayload.Metadata.Page = uint64(filter.Page)

	if filter.Limit > 0 && filter.Page > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start > len(products) {
			start = len(products)
		}
		end := start + filter.Limit
		if end > len(products) {
			end = len(products)
		}
		products = products[start:end]
	}

	records := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		records = append(records, dto.ProductResponse{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			ImageURL:    product.ImageURL,
		})
	}
	responsePayload.Records = records

	return pkgdto.WriteSuccessResponse(e, "successfuly retrieved products record", responsePayload)
}

func (c *Controller) GetProductByID(e echo.Context) error {
	id := e.Param("id")
	product, err := c.service.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", product)
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
	}

	image, err := c.readImageUpload(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	_, externalID := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().Str("component", "AddProduct").Str("user", externalID).Msg("")

	err = c.service.AddProduct(e.Request().Context(), payload, image)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product added successfully", nil)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	id := e.Param("id")
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
	}

	image, err := c.readImageUpload(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	_, externalID := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().Str("component", "UpdateProduct").Str("user", externalID).Msg("")

	payload.ID = id
	err = c.service.UpdateProduct(e.Request().Context(), payload, image)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product updated successfully", nil)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	id := e.Param("id")

	_, externalID := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().Str("component", "DeleteProduct").Str("user", externalID).Msg("")

	err := c.service.DeleteProduct(e.Request().Context(), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product deleted successfully", nil)
}

// readImageUpload extracts the optional multipart image part. Returns nil when
// the request carries no new image, which the service treats as "keep the
// existing URL".
func (c *Controller) readImageUpload(e echo.Context) (*dto.ImageUpload, error) {
	fileHeader, err := e.FormFile("image")
	if err != nil {
		return nil, nil
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, errs.ErrNotAnImage
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("component", "readImageUpload").Msg("")
		return nil, errs.ErrClient
	}

	return &dto.ImageUpload{Content: src, ContentType: contentType}, nil
}
