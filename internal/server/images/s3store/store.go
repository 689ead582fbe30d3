// Package s3store implements images.Store on top of an S3 compatible bucket.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/iudanet/shareall/internal/server/images"
)

const maxNameAttempts = 5

var _ images.Store = (*Store)(nil)

// Client is the subset of *s3.Client used by Store
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options содержит параметры подключения к S3
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string // каталог изображений профиля внутри bucket
}

// Store хранит изображения как объекты {Prefix}/{name}
type Store struct {
	client Client
	logger *slog.Logger
	bucket string
	prefix string
}

// New создает S3 клиент по параметрам и оборачивает его в Store
func New(ctx context.Context, logger *slog.Logger, opts Options) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// MinIO и другие совместимые хранилища не поддерживают virtual-hosted style
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, logger, opts.Bucket, opts.Prefix), nil
}

// NewWithClient создает Store поверх готового клиента
func NewWithClient(client Client, logger *slog.Logger, bucket, prefix string) *Store {
	return &Store{client: client, logger: logger, bucket: bucket, prefix: prefix}
}

// Save загружает изображение под новым случайным именем
// If-None-Match: * не дает перезаписать существующий объект
func (s *Store) Save(ctx context.Context, data []byte) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := images.NewName()

		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(s.key(name)),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(images.DetectType(data)),
			IfNoneMatch:   aws.String("*"),
		})
		if err != nil {
			if isPreconditionFailed(err) {
				s.logger.WarnContext(ctx, "image name collision, retrying", slog.String("name", name))
				continue
			}
			return "", fmt.Errorf("failed to put object: %w", err)
		}

		s.logger.DebugContext(ctx, "image uploaded", slog.String("name", name), slog.Int("bytes", len(data)))
		return name, nil
	}

	return "", fmt.Errorf("failed to allocate image name after %d attempts", maxNameAttempts)
}

// Delete удаляет объект; S3 не возвращает ошибку для отсутствующего ключа
func (s *Store) Delete(ctx context.Context, name string) error {
	if !images.ValidName(name) {
		return images.ErrInvalidName
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// Open возвращает содержимое объекта
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !images.ValidName(name) {
		return nil, images.ErrImageNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, images.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	return out.Body, nil
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}
