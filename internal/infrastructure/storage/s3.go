package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"image-gallery-api/config"
)

// S3 stores uploads in an object-storage bucket. Keys are prefixed with
// the upload date so the bucket stays browsable; the prefix carries no
// meaning outside this backend.
type S3 struct {
	logger *zap.Logger
	gen    *Generator
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, cfg config.S3, gen *Generator, logger *zap.Logger) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			// minio and friends
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 storage ready", zap.String("bucket", cfg.BucketUploads))

	return &S3{
		logger: logger,
		gen:    gen,
		client: client,
		bucket: cfg.BucketUploads,
	}, nil
}

func (s *S3) Store(ctx context.Context, content io.Reader, contentType, originalFilename string) (Reference, error) {
	name := s.gen.Generate(originalFilename)
	now := time.Now().UTC()
	key := path.Join(
		"images",
		fmt.Sprintf("%04d/%02d/%02d", now.Year(), int(now.Month()), now.Day()),
		name,
	)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   content,
		// refuse to overwrite on the exceedingly rare name collision
		IfNoneMatch: aws.String("*"),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return Reference{}, fmt.Errorf("s3 put object: %w", err)
	}

	return Reference{
		FileName: s.gen.DisplayName(originalFilename),
		Key:      Key(key),
	}, nil
}

func (s *S3) Retrieve(ctx context.Context, key Key) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	return out.Body, nil
}

func (s *S3) Delete(ctx context.Context, key Key) (bool, error) {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(key)),
	}); err != nil {
		return false, fmt.Errorf("s3 delete object: %w", err)
	}
	return true, nil
}
