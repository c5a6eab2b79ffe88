package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"restaurant-api/models"
)

// UploadFile is one multipart file, read into memory by the handler.
type UploadFile struct {
	Name string
	Data []byte
}

// ImageStorage stores and removes restaurant images.
type ImageStorage interface {
	// Upload stores each file and returns its descriptor.
	Upload(ctx context.Context, restaurantID string, files []UploadFile) ([]models.Image, error)
	// Delete removes the given images and reports whether removal
	// succeeded. A false return gates restaurant deletion; it is a
	// soft-fail, not an error.
	Delete(ctx context.Context, images []models.Image) bool
}

// S3Storage is the AWS S3 implementation of ImageStorage.
type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Storage builds an S3 client from the default credential chain.
func NewS3Storage(ctx context.Context, region, bucket string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, restaurantID string, files []UploadFile) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		key := fmt.Sprintf("restaurants/%s/%s%s", restaurantID, uuid.NewString(), strings.ToLower(filepath.Ext(file.Name)))

		out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(file.Data),
			ContentType: aws.String(http.DetectContentType(file.Data)),
		})
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", file.Name, err)
		}

		images = append(images, models.Image{
			Key:    key,
			URL:    fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
			Bucket: s.bucket,
			ETag:   aws.ToString(out.ETag),
		})
	}
	return images, nil
}

func (s *S3Storage) Delete(ctx context.Context, images []models.Image) bool {
	if len(images) == 0 {
		return true
	}

	objects := make([]s3types.ObjectIdentifier, 0, len(images))
	for _, image := range images {
		objects = append(objects, s3types.ObjectIdentifier{Key: aws.String(image.Key)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return false
	}
	return len(out.Errors) == 0
}
