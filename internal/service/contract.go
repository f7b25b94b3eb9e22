package service

import (
	"context"

	"github.com/adiwijaya/storefront-service/internal/domain"
	"github.com/adiwijaya/storefront-service/internal/dto"
	"github.com/segmentio/kafka-go"
)

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) (err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	GetProductByID(ctx context.Context, id string) (product dto.ProductResponse, err error)
}

// CatalogSync keeps the served product list current with the record store.
// Consumers only ever see complete snapshots, never partial updates.
type CatalogSync interface {
	Refresh(ctx context.Context) (err error)
	Products(q string) []domain.Product
	Subscribe() (<-chan []domain.Product, func())
	ConsumeEvent()
}

// EventProducer is satisfied by *kafka.Conn.
type EventProducer interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}
