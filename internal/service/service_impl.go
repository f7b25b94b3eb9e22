package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adiwijaya/storefront-service/config"
	"github.com/adiwijaya/storefront-service/internal/domain"
	"github.com/adiwijaya/storefront-service/internal/dto"
	"github.com/adiwijaya/storefront-service/internal/repository"
	"github.com/adiwijaya/storefront-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

type ProductServiceImpl struct {
	mongoDBRepo   repository.MongoDBProductRepository
	blobRepo      repository.BlobProductRepository
	config        config.Config
	kafkaProducer EventProducer
}

func CreateProductService(mongoDBRepo repository.MongoDBProductRepository, blobRepo repository.BlobProductRepository, config config.Config, kafkaProducer EventProducer) ProductService {
	return &ProductServiceImpl{mongoDBRepo: mongoDBRepo, blobRepo: blobRepo, config: config, kafkaProducer: kafkaProducer}
}

func imageKey(productID string) string {
	return fmt.Sprintf("images/%s", productID)
}

func parsePrice(price string) (float64, error) {
	parsed, err := strconv.ParseFloat(price, 64)
	if err != nil || parsed < 0 {
		return 0, errs.ErrInvalidPrice
	}

	return parsed, nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) (err error) {
	if data.Name == "" || data.Description == "" || data.Price == "" || image == nil {
		return errs.ErrValidation
	}

	defer image.Content.Close()

	price, err := parsePrice(data.Price)
	if err != nil {
		return
	}

	productID := ulid.Make().String()

	err = s.blobRepo.UploadImage(ctx, imageKey(productID), image.Content, image.ContentType)
	if err != nil {
		return
	}

	imageURL, err := s.blobRepo.ResolveImageURL(ctx, imageKey(productID))
	if err != nil {
		return
	}

	product := domain.Product{
		ID:          productID,
		Name:        data.Name,
		Description: data.Description,
		Price:       price,
		ImageURL:    imageURL,
	}

	err = s.mongoDBRepo.AddProduct(ctx, product)
	if err != nil {
		// The blob is already uploaded at this point; the orphan is accepted
		// and left for a reconciliation sweep.
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Str("product_id", productID).Msg("record write failed after blob upload")
		return
	}

	return s.publishEvent(ctx, "add_product", dto.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
	})
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest, image *dto.ImageUpload) (err error) {
	if data.ID == "" || data.Name == "" || data.Description == "" || data.Price == "" {
		return errs.ErrValidation
	}

	if image != nil {
		defer image.Content.Close()
	}

	price, err := parsePrice(data.Price)
	if err != nil {
		return
	}

	// Re-upload only when the image reference is not already a resolved
	// remote URL, so text-only edits skip the blob store entirely.
	imageURL := data.ImageURL
	if !strings.HasPrefix(imageURL, "https://") {
		if image == nil {
			return errs.ErrValidation
		}

		err = s.blobRepo.UploadImage(ctx, imageKey(data.ID), image.Content, image.ContentType)
		if err != nil {
			return
		}

		imageURL, err = s.blobRepo.ResolveImageURL(ctx, imageKey(data.ID))
		if err != nil {
			return
		}
	}

	product := domain.Product{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       price,
		ImageURL:    imageURL,
	}

	err = s.mongoDBRepo.UpdateProduct(ctx, product)
	if err != nil {
		return
	}

	return s.publishEvent(ctx, "update_product", dto.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
	})
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	if id == "" {
		return errs.ErrValidation
	}

	err = s.mongoDBRepo.DeleteProduct(ctx, id)
	if err != nil {
		// Includes the repeated-delete case, which surfaces as a plain
		// not-found instead of a failure.
		return
	}

	err = s.blobRepo.DeleteImage(ctx, imageKey(id))
	if err != nil {
		// The record is already gone; an undeleted blob is an accepted
		// orphan, not a reason to fail the whole operation.
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Str("product_id", id).Msg("blob deletion failed after record removal")
	}

	return s.publishEvent(ctx, "delete_product", dto.ProductResponse{ID: id})
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product dto.ProductResponse, err error) {
	data, err := s.mongoDBRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	product = dto.ProductResponse{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImageURL:    data.ImageURL,
	}

	return
}

func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, data interface{}) (err error) {
	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.writeKafkaMessage(jsonMsg)
		if err == nil {
			break
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}

	if err != nil {
		return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
	}

	return
}

func (s *ProductServiceImpl) writeKafkaMessage(msg []byte) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Value: msg,
		},
	)
	return err
}
