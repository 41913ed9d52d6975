package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vitalscope/vitalscope/pkg/analysis"
)

// S3Config holds configuration for the S3 snapshot backend.
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Repository stores the snapshot record in AWS S3 (or S3-compatible
// stores like MinIO).
type S3Repository struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Repository creates an S3-backed Repository.
func NewS3Repository(ctx context.Context, cfg S3Config) (*S3Repository, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	key := cfg.Key
	if key == "" {
		key = "vitalscope/state.json"
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3Repository{client: client, bucket: cfg.Bucket, key: key}, nil
}

// Save writes the snapshot record.
func (r *S3Repository) Save(ctx context.Context, state *analysis.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", r.key, err)
	}
	return nil
}

// Load reads the snapshot record. A missing object is not an error.
func (r *S3Repository) Load(ctx context.Context) (*analysis.State, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("s3 get %s: %w", r.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", r.key, err)
	}
	var state analysis.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &state, nil
}
