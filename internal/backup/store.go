package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/massage-scheduler/internal/config"
)

// ===============================
// Local directory
// ===============================

type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (d *DirStore) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// ===============================
// S3 compatible bucket
// ===============================

// ObjectPutter is the part of *s3.Client the store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Store(cfg config.BackupConfig) *S3Store {
	awsCfg := aws.Config{Region: cfg.Region}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWith(client, cfg.Bucket, "backups/")
}

func NewS3StoreWith(client ObjectPutter, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := strings.TrimPrefix(s.prefix+name, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// NewStore picks S3 when a bucket is configured and the local folder otherwise.
func NewStore(cfg config.BackupConfig) Store {
	if cfg.S3Enabled() {
		return NewS3Store(cfg)
	}
	return NewDirStore(cfg.Dir)
}
