package seed

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the catalog loader needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures fetching for s3:// catalog references.
type S3Options struct {
	Region    string
	Endpoint  string // optional; set for MinIO-style backends, implies path-style addressing
	AccessKey string // optional static credentials; default chain otherwise
	SecretKey string
	Client    S3API // optional; tests inject a fake
}

// LoadOverlay reads and parses a catalog overlay. ref is either a local file
// path or an s3://bucket/key URL.
func LoadOverlay(ctx context.Context, ref string, opts S3Options) (Catalog, error) {
	var data []byte
	var err error
	if strings.HasPrefix(ref, "s3://") {
		data, err = fetchS3(ctx, ref, opts)
	} else {
		data, err = os.ReadFile(ref)
		if err != nil {
			err = fmt.Errorf("read catalog: %w", err)
		}
	}
	if err != nil {
		return Catalog{}, err
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", ref, err)
	}
	return catalog, nil
}

func fetchS3(ctx context.Context, ref string, opts S3Options) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parse catalog reference: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("catalog reference %q must look like s3://bucket/key", ref)
	}

	client := opts.Client
	if client == nil {
		client, err = newS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
