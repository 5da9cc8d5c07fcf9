package services

import (
	"context"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/minio/minio-go/v7"

	"vitrine3d_back_end/internal/database"
)

// ModelURLTTL est la durée de validité fixe des URLs signées de modèles 3D.
const ModelURLTTL = 3600 * time.Second

// AssetStorage est la passerelle vers le stockage objet : upload, suppression
// et émission d'URLs signées. Aucune logique de retry ni de cache.
type AssetStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Assets est l'implémentation branchée au démarrage (MinIO en prod, mock en tests).
var Assets AssetStorage

// minioStorage délègue tout au client MinIO global, bucket MINIO_BUCKET.
type minioStorage struct{}

// UseMinioStorage branche la passerelle sur le client MinIO global.
func UseMinioStorage() {
	Assets = &minioStorage{}
}

func (s *minioStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := database.MinIO.PutObject(ctx, os.Getenv("MINIO_BUCKET"), key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *minioStorage) Remove(ctx context.Context, key string) error {
	return database.MinIO.RemoveObject(ctx, os.Getenv("MINIO_BUCKET"), key, minio.RemoveObjectOptions{})
}

func (s *minioStorage) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, os.Getenv("MINIO_BUCKET"), key, ttl, reqParams)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
