package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
)

// s3Storage implements Uploader over AWS S3, selected by the
// STORAGE_BACKEND setting as an alternative to Cloudinary.
type s3Storage struct {
	cfg      *config.Config
	s3Client *s3.Client
}

// NewS3Storage creates the S3-backed Uploader.
func NewS3Storage(cfg *config.Config) (Uploader, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3Storage{
		cfg:      cfg,
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// Upload stores a media buffer under folder/<uuid> and returns its
// delivery URL off the configured media base.
func (s *s3Storage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s", folder, uuid.NewString())

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s to S3: %w", key, err)
	}

	return strings.TrimSuffix(s.cfg.MediaBaseS3URL, "/") + "/" + key, nil
}

// Delete removes an object by key. The resource type distinction is a
// Cloudinary concept; S3 keys are uniform.
func (s *s3Storage) Delete(ctx context.Context, publicID, _ string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from S3: %w", publicID, err)
	}
	return nil
}
