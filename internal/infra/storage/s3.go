package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	repo "github.com/Lucas16AR/stock-app/internal/repository"
)

// S3互換ストレージ（AWS S3 / MinIO / R2）
type S3Disk struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

type S3Options struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string // 実AWSなら空
	URL      string
	Prefix   string // 例: uploads
}

// DI
func NewS3Disk(ctx context.Context, opt S3Options) (*S3Disk, error) {
	if opt.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(opt.Region),
	}
	// MinIO などは静的な認証情報が必要
	if opt.Key != "" && opt.Secret != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opt.Key, opt.Secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if opt.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opt.Endpoint)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(opt.URL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opt.Bucket, opt.Region)
	}

	return &S3Disk{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  opt.Bucket,
		prefix:  strings.Trim(opt.Prefix, "/"),
		baseURL: baseURL,
	}, nil
}

func (d *S3Disk) key(path string) string {
	path = strings.TrimLeft(path, "/")
	if d.prefix == "" {
		return path
	}
	return d.prefix + "/" + path
}

func (d *S3Disk) Put(ctx context.Context, path string, r io.Reader) error {
	// マルチパートのファイルは Seek できないことがあるので一度読む
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/s3: read: %w", err)
	}
	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
		Body:   bytes.NewReader(data),
		// 既存キーは上書きしない（条件付き書き込み）
		IfNoneMatch: aws.String("*"),
	})
	if isPreconditionFailed(err) {
		return fmt.Errorf("storage/s3: put %s: %w", path, repo.ErrFileExists)
	}
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

func (d *S3Disk) Exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
	})
	if err == nil {
		return true, nil
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, fmt.Errorf("storage/s3: head %s: %w", path, err)
}

// S3 は存在しないキーの削除でもエラーにならない
func (d *S3Disk) Delete(ctx context.Context, path string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *S3Disk) URL(path string) string {
	return d.baseURL + "/" + d.key(path)
}
