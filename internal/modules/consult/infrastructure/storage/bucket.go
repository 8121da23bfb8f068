package storage

import (
	"context"
	"fmt"
	"time"

	"SaDam/internal/config"
	"SaDam/internal/modules/consult/domain/gateway"
	"SaDam/pkg/zlog"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// bucketImpl 托管对象存储的 REST 客户端，与关系库之间没有事务
type bucketImpl struct {
	client  *resty.Client
	baseURL string
	bucket  string
}

func NewStorageBucket(conf *config.Config) gateway.StorageBucket {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetAuthToken(conf.StorageConfig.APIKey)

	return &bucketImpl{
		client:  client,
		baseURL: conf.StorageConfig.URL,
		bucket:  conf.StorageConfig.Bucket,
	}
}

func (b *bucketImpl) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	objectURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", b.baseURL, b.bucket, path)

	// 先尽力删除同名对象，避免重名冲突，删除失败不阻塞写入
	if resp, err := b.client.R().SetContext(ctx).Delete(objectURL); err != nil {
		zlog.Warn("bucket delete-before-write failed", zap.Error(err), zap.String("path", path))
	} else if resp.StatusCode() != 200 && resp.StatusCode() != 404 {
		zlog.Warn("bucket delete-before-write returned unexpected status",
			zap.Int("status", resp.StatusCode()), zap.String("path", path))
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(objectURL)
	if err != nil {
		zlog.Warn("bucket upload failed", zap.Error(err), zap.String("path", path))
		return "", fmt.Errorf("bucket upload failed")
	}
	if resp.StatusCode() != 200 {
		zlog.Warn("bucket upload returned non-200",
			zap.Int("status", resp.StatusCode()), zap.String("path", path))
		return "", fmt.Errorf("bucket upload failed")
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", b.baseURL, b.bucket, path), nil
}
