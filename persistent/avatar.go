package persistent

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/buzkaaclicker/vitae"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint        string
	AccessKeyId     string
	SecretAccessKey string
	Region          string
	UseSSL          bool
	// Address buckets as endpoint/bucket instead of bucket.endpoint.
	PathStyle bool
}

// MinioOpen creates client for any S3 compatible endpoint. No request is made.
func MinioOpen(cfg MinioConfig) (*minio.Client, error) {
	lookup := minio.BucketLookupDNS
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyId, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return client, nil
}

// AvatarStore uploads avatars to a bucket of S3 compatible object storage.
type AvatarStore struct {
	Client    *minio.Client
	Bucket    string
	PathStyle bool
}

var _ vitae.AvatarStore = (*AvatarStore)(nil)

func (s *AvatarStore) Upload(ctx context.Context, key string, avatar vitae.Avatar) (string, error) {
	info, err := s.Client.PutObject(ctx, s.Bucket, key,
		bytes.NewReader(avatar.Data), int64(len(avatar.Data)),
		minio.PutObjectOptions{ContentType: avatar.ContentType})
	if err != nil {
		return "", fmt.Errorf("%w: put object %s: %w", vitae.ErrStorageUpload, key, err)
	}
	// Location is reported only by multipart uploads.
	if info.Location != "" {
		return info.Location, nil
	}
	return s.ObjectURL(key), nil
}

// ObjectURL returns address of the object as served by the storage endpoint.
func (s *AvatarStore) ObjectURL(key string) string {
	endpoint := s.Client.EndpointURL()
	u := url.URL{Scheme: endpoint.Scheme, Host: endpoint.Host}
	if s.PathStyle {
		u.Path = "/" + s.Bucket + "/" + key
	} else {
		u.Host = s.Bucket + "." + endpoint.Host
		u.Path = "/" + key
	}
	return u.String()
}

// BucketExists reports whether configured bucket is reachable with configured credentials.
func (s *AvatarStore) BucketExists(ctx context.Context) (bool, error) {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return false, fmt.Errorf("bucket exists: %w", err)
	}
	return exists, nil
}
