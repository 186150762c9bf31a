package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of the S3 client the bucket wrapper uses.
// *s3.Client satisfies it; tests substitute a fake.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	PublicBaseURL   string
}

// Bucket wraps object storage operations against a single named bucket.
type Bucket struct {
	api           ObjectAPI
	name          string
	publicBaseURL string
}

// New connects to the R2 bucket described by cfg.
func New(ctx context.Context, cfg Config) (*Bucket, error) {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
			CipherSuites: []uint16{
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			},
		},
	}
	httpClient := &http.Client{Transport: tr}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return NewWithClient(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

// NewWithClient builds a Bucket around an existing ObjectAPI implementation.
func NewWithClient(api ObjectAPI, name, publicBaseURL string) *Bucket {
	return &Bucket{
		api:           api,
		name:          name,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (b *Bucket) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (b *Bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	res, err := b.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

func (b *Bucket) Remove(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	return err
}

// URL returns the public URL for an object key.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("%s/%s", b.publicBaseURL, key)
}

// ObjectKeyFromURL derives the bucket object key from a stored public URL by
// taking its last two path segments. Uploads write keys of the form
// images/<id>_<name>, so a URL ending in .../images/abc.png yields
// images/abc.png. URLs with fewer than two segments are returned unchanged;
// URLs with query strings or deeper key paths are not handled.
func ObjectKeyFromURL(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 2 {
		return rawURL
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
