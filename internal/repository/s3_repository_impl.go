package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/adiwijaya/storefront-service/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type S3ProductRepositoryImpl struct {
	client *s3.Client
	config config.BlobConfig
}

func CreateNewS3Repository(client *s3.Client, config config.BlobConfig) BlobProductRepository {
	return &S3ProductRepositoryImpl{client: client, config: config}
}

func (r *S3ProductRepositoryImpl) UploadImage(ctx context.Context, key string, content io.Reader, contentType string) (err error) {
	input := &s3.PutObjectInput{
		Bucket: &r.config.Bucket,
		Key:    &key,
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	_, err = r.client.PutObject(ctx, input)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UploadImage").Msg("")
		return
	}

	return
}

// ResolveImageURL returns the durable public URL of an uploaded object. The
// bucket serves objects publicly, so the URL never expires.
func (r *S3ProductRepositoryImpl) ResolveImageURL(ctx context.Context, key string) (url string, err error) {
	if r.config.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.PublicBaseURL, "/"), key), nil
	}

	if r.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(r.config.Endpoint, "/"), r.config.Bucket, key), nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.config.Bucket, r.config.Region, key), nil
}

func (r *S3ProductRepositoryImpl) DeleteImage(ctx context.Context, key string) (err error) {
	_, err = r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &r.config.Bucket,
		Key:    &key,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteImage").Msg("")
		return
	}

	return
}
