package repository

import (
	"context"
	"io"

	"github.com/adiwijaya/storefront-service/internal/domain"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

type BlobProductRepository interface {
	UploadImage(ctx context.Context, key string, content io.Reader, contentType string) (err error)
	ResolveImageURL(ctx context.Context, key string) (url string, err error)
	DeleteImage(ctx context.Context, key string) (err error)
}
