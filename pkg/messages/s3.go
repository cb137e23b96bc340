package messages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used by S3Source.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds connection settings for S3-compatible object storage.
type S3Config struct {
	Bucket    string `env:"INTL_S3_BUCKET"`
	Prefix    string `env:"INTL_S3_PREFIX" envDefault:"locales/"`
	Region    string `env:"INTL_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"INTL_S3_ENDPOINT"`
	AccessKey string `env:"INTL_S3_ACCESS_KEY"`
	SecretKey string `env:"INTL_S3_SECRET_KEY"`
	PathStyle bool   `env:"INTL_S3_PATH_STYLE" envDefault:"false"`
}

// NewS3Client builds an S3 client with static credentials. A custom
// endpoint enables S3-compatible providers (MinIO, R2, DigitalOcean Spaces).
func NewS3Client(cfg S3Config) *s3.Client {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}
	return s3.New(s3.Options{}, opts...)
}

// S3Source reads catalog files stored as objects. Object keys below the
// prefix follow the FSSource layout: {locale}.json or {locale}/{ns}.json.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a source for the objects under prefix in bucket.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Load lists the prefix and decodes every JSON or YAML object found.
func (s *S3Source) Load(ctx context.Context) (map[string]*Node, error) {
	trees := map[string]*Node{}

	pager := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, describeS3Error("list objects", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rel := strings.TrimPrefix(key, s.prefix)
			if unmarshalerFor(rel) == nil {
				continue
			}
			data, err := s.read(ctx, key)
			if err != nil {
				return nil, err
			}
			if err := addFile(trees, rel, data); err != nil {
				return nil, err
			}
		}
	}
	return trees, nil
}

func (s *S3Source) read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, describeS3Error("get object "+key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func describeS3Error(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("s3 %s: %s: %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("s3 %s: %w", op, err)
}
