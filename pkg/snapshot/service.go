// Package snapshot uploads periodic exports of the catalog to S3.
package snapshot

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jordanlanch/industrycatalog/pkg/export"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/models"
)

// ObjectStore is the subset of the S3 client snapshots need
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Source pages through the catalog
type Source interface {
	GetAll(ctx context.Context, filters models.IndustryFilters, page models.Page) ([]models.Industry, error)
}

// Config holds snapshot configuration
type Config struct {
	Bucket        string
	Prefix        string // key prefix, default "snapshots/"
	Format        export.Format
	RetentionDays int // 0 keeps every snapshot
}

// S3Config holds the credentials used to build an S3 client
type S3Config struct {
	Region          string
	AccessKeyID     string // empty uses the default credential chain
	SecretAccessKey string
}

// NewS3Client builds an S3 client for cfg
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Service writes catalog snapshots to a bucket
type Service struct {
	objects ObjectStore
	source  Source
	cfg     Config
	logger  logger.Logger
	now     func() time.Time
}

// NewService creates a snapshot service
func NewService(objects ObjectStore, source Source, cfg Config, log logger.Logger) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("snapshot bucket not configured")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "snapshots/"
	}
	if !strings.HasSuffix(cfg.Prefix, "/") {
		cfg.Prefix += "/"
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatCSV
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Service{
		objects: objects,
		source:  source,
		cfg:     cfg,
		logger:  log,
		now:     time.Now,
	}, nil
}

// Result describes an uploaded snapshot
type Result struct {
	Key      string
	Records  int
	Size     int64
	Duration time.Duration
	Deleted  int // expired snapshots removed
}

// CreateSnapshot exports every industry and uploads the file
func (s *Service) CreateSnapshot(ctx context.Context) (*Result, error) {
	start := time.Now()

	records, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	body, key, err := s.encode(records)
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(s.cfg.Format.ContentType()),
		StorageClass: types.StorageClassStandardIa,
	}
	if s.cfg.Format == export.FormatCSV {
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.objects.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	result := &Result{
		Key:     key,
		Records: len(records),
		Size:    int64(len(body)),
	}

	deleted, err := s.cleanup(ctx)
	if err != nil {
		s.logger.Warn("failed to clean up old snapshots", "error", err)
	}
	result.Deleted = deleted
	result.Duration = time.Since(start)

	s.logger.Info("snapshot uploaded",
		"bucket", s.cfg.Bucket,
		"key", key,
		"records", result.Records,
		"size", result.Size,
		"deleted", deleted,
	)
	return result, nil
}

// collect reads the whole catalog in MaxLimit windows. The store source
// returns records in _id order, so consecutive windows do not overlap.
func (s *Service) collect(ctx context.Context) ([]models.Industry, error) {
	var all []models.Industry
	page := models.Page{Limit: models.MaxLimit}
	for {
		batch, err := s.source.GetAll(ctx, models.IndustryFilters{}, page)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < page.Limit {
			return all, nil
		}
		page.Skip += page.Limit
	}
}

func (s *Service) encode(records []models.Industry) ([]byte, string, error) {
	key := fmt.Sprintf("%sindustries-%s.%s", s.cfg.Prefix, s.now().UTC().Format("20060102-150405"), s.cfg.Format)

	var buf bytes.Buffer
	if s.cfg.Format != export.FormatCSV {
		if err := export.Write(&buf, s.cfg.Format, records); err != nil {
			return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return buf.Bytes(), key, nil
	}

	zw := gzip.NewWriter(&buf)
	if err := export.Write(zw, s.cfg.Format, records); err != nil {
		return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to compress snapshot: %w", err)
	}
	return buf.Bytes(), key + ".gz", nil
}

// cleanup deletes snapshots older than the retention period
func (s *Service) cleanup(ctx context.Context) (int, error) {
	if s.cfg.RetentionDays <= 0 {
		return 0, nil
	}

	cutoff := s.now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)

	out, err := s.objects.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.cfg.Prefix),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list snapshots: %w", err)
	}

	deleted := 0
	for _, obj := range out.Contents {
		if !aws.ToTime(obj.LastModified).Before(cutoff) {
			continue
		}
		_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			s.logger.Warn("failed to delete old snapshot", "key", aws.ToString(obj.Key), "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
