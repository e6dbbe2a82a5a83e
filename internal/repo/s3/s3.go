package s3

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage archives published playlist templates to object storage so
// past catalog states can be inspected or rolled back.
type Storage struct {
	cli    *minio.Client
	bucket string
}

func New(conf config.S3Config) *Storage {
	cli, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		zap.L().Fatal("failed to create s3 client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, conf.Bucket)
	if err != nil {
		zap.L().Fatal("failed to check bucket", zap.Error(err))
	}
	if !exists {
		if err = cli.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Fatal("failed to create bucket", zap.Error(err))
		}
	}

	return &Storage{cli: cli, bucket: conf.Bucket}
}

// UploadTemplate stores the template under a timestamped key.
func (s *Storage) UploadTemplate(ctx context.Context, path string) error {
	key := fmt.Sprintf(
		"templates/%s-%s",
		time.Now().UTC().Format("20060102T150405"),
		filepath.Base(path),
	)

	info, err := s.cli.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{
		ContentType: "application/x-mpegurl",
	})
	if err != nil {
		return fmt.Errorf("failed to upload template: %w", err)
	}

	zap.L().Info(
		"template archived",
		zap.String("key", key),
		zap.Int64("size", info.Size),
	)
	return nil
}
