// Package archive writes translated events as JSON objects to an
// S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nugen/evgb/internal/storage"
)

const defaultRegion = "us-east-1"

// Config holds the object store connection settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Prefix is prepended to every object key; defaults to "events"
	Prefix string
}

// objectAPI is the part of the minio client the archive uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Archive is a storage.Sink writing one object per event.
type Archive struct {
	client objectAPI
	bucket string
	region string
	prefix string

	initOnce sync.Once
	initErr  error
}

var _ storage.Sink = (*Archive)(nil)

// New connects to the object store described by cfg.
func New(cfg Config) (*Archive, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("archive endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New("archive access key and secret key are required")
	}

	cfg.Region = strings.TrimSpace(cfg.Region)
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}
	return newArchive(client, cfg)
}

func newArchive(client objectAPI, cfg Config) (*Archive, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix == "" {
		prefix = "events"
	}
	return &Archive{
		client: client,
		bucket: bucket,
		region: cfg.Region,
		prefix: prefix,
	}, nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.initOnce.Do(func() {
		exists, err := a.client.BucketExists(ctx, a.bucket)
		if err != nil {
			a.initErr = err
			return
		}
		if exists {
			return
		}
		a.initErr = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region})
	})
	return a.initErr
}

// Key returns the object key of e: <prefix>/<run>/<id>.json.
func (a *Archive) Key(e *storage.EventTruth) string {
	return path.Join(a.prefix, strconv.Itoa(e.Run), e.ID+".json")
}

// SaveEvent writes e as a JSON object, replacing any previous object.
func (a *Archive) SaveEvent(ctx context.Context, e *storage.EventTruth) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := a.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, a.Key(e), bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put event %s: %w", e.ID, err)
	}
	return nil
}
