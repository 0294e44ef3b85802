// Package s3 publishes generated documents to an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	DefaultRegion = "eu-west-2"
	DefaultPrefix = "reports/"

	contentTypePDF = "application/pdf"
)

var ErrNoBucket = errors.New("publish bucket is not configured")

// PutObjectAPI is the part of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Settings struct {
	Bucket  string
	Prefix  string
	Profile string
}

type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func LoadConfig(ctx context.Context, profile string) (*awssdk.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

func NewPublisher(client PutObjectAPI, settings Settings) (*Publisher, error) {
	if settings.Bucket == "" {
		return nil, ErrNoBucket
	}
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	prefix := settings.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Publisher{client: client, bucket: settings.Bucket, prefix: prefix}, nil
}

// NewPublisherFromConfig loads the shared AWS configuration and builds a publisher on a real client.
func NewPublisherFromConfig(ctx context.Context, settings Settings) (*Publisher, error) {
	if settings.Bucket == "" {
		return nil, ErrNoBucket
	}
	cfg, err := LoadConfig(ctx, settings.Profile)
	if err != nil {
		return nil, err
	}
	return NewPublisher(s3.NewFromConfig(*cfg), settings)
}

// Key is the object key a report with the given id is stored under.
func (p *Publisher) Key(id string) string {
	return path.Join(p.prefix, id+".pdf")
}

// Publish uploads the document and returns its s3:// URI.
func (p *Publisher) Publish(ctx context.Context, id string, document []byte) (string, error) {
	key := p.Key(id)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        awssdk.String(p.bucket),
		Key:           awssdk.String(key),
		Body:          bytes.NewReader(document),
		ContentType:   awssdk.String(contentTypePDF),
		ContentLength: awssdk.Int64(int64(len(document))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, p.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}
