package repository

import (
	"context"
	"testing"

	"github.com/adiwijaya/storefront-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImageURL(t *testing.T) {
	type TestCase struct {
		Name        string
		Config      config.BlobConfig
		ExpectedURL string
	}

	testCases := []TestCase{
		{
			Name:        "Public base URL",
			Config:      config.BlobConfig{Bucket: "storefront", PublicBaseURL: "https://cdn.example.com/"},
			ExpectedURL: "https://cdn.example.com/images/01ABC",
		},
		{
			Name:        "Custom endpoint",
			Config:      config.BlobConfig{Bucket: "storefront", Endpoint: "https://minio.local:9000"},
			ExpectedURL: "https://minio.local:9000/storefront/images/01ABC",
		},
		{
			Name:        "Default AWS URL",
			Config:      config.BlobConfig{Bucket: "storefront", Region: "ap-southeast-1"},
			ExpectedURL: "https://storefront.s3.ap-southeast-1.amazonaws.com/images/01ABC",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			repo := &S3ProductRepositoryImpl{config: tc.Config}

			url, err := repo.ResolveImageURL(context.Background(), "images/01ABC")

			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedURL, url)
		})
	}
}
