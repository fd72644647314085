package infra_s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	app_config "github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/model"
)

var ErrEmptyPoster = errors.New("s3: poster has no content")

type API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PosterStorage mirrors posters into a public bucket.
type PosterStorage struct {
	client API

	bucketName string
	prefix     string
	publicURL  string
	logger     *slog.Logger
}

func New(ctx context.Context, client API, cfg app_config.S3, logger *slog.Logger) (*PosterStorage, error) {
	storage := &PosterStorage{
		client:     client,
		bucketName: cfg.Bucket,
		prefix:     cfg.Prefix,
		publicURL:  publicBase(cfg),
		logger:     logger.With(slog.String("component", "s3")),
	}

	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		var apiError smithy.APIError
		if errors.As(err, &apiError) {
			if _, ok := apiError.(*types.NotFound); ok {
				return nil, fmt.Errorf("s3: bucket %s does not exist: %w", cfg.Bucket, err)
			}
		}
		return nil, fmt.Errorf("s3: bucket %s is not accessible: %w", cfg.Bucket, err)
	}

	storage.logger.Info("bucket is available", slog.String("bucket", cfg.Bucket))
	return storage, nil
}

// Save uploads the poster under "<prefix>/<movie id><ext>" and returns its
// public URL.
func (s *PosterStorage) Save(ctx context.Context, p model.Poster) (string, error) {
	if len(p.Content) == 0 {
		return "", ErrEmptyPoster
	}

	key := s.buildKey(s.prefix, p.MovieID.String()+posterExt(p.Filename))
	contentType := p.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.Content),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}); err != nil {
		return "", fmt.Errorf("failed to save poster to S3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *PosterStorage) buildKey(paths ...string) string {
	var cleaned []string
	for _, p := range paths {
		clean := strings.ReplaceAll(p, "\\", "")
		clean = strings.ReplaceAll(clean, "/", "")
		if clean != "" {
			cleaned = append(cleaned, clean)
		}
	}
	return path.Join(cleaned...)
}

func posterExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

func publicBase(cfg app_config.S3) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
