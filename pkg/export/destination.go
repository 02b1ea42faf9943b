package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultRegion = "us-east-1"
	s3Scheme      = "s3://"
	pdfMediaType  = "application/pdf"
)

// Destination receives a finished PDF under a file name.
type Destination interface {
	Deliver(ctx context.Context, name string, content []byte) (string, error)
}

// Directory writes PDFs below a local directory.
type Directory struct {
	Path string
}

func (d Directory) Deliver(ctx context.Context, name string, content []byte) (string, error) {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(d.Path, name)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	zerolog.Ctx(ctx).Info().Str("path", target).Int("bytes", len(content)).Msg("report exported")
	return target, nil
}

// ObjectPutter is the part of the S3 API used for delivery.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Bucket uploads PDFs to an S3 bucket under an optional key prefix.
type Bucket struct {
	Client ObjectPutter
	Name   string
	Prefix string
}

func (b Bucket) Deliver(ctx context.Context, name string, content []byte) (string, error) {
	key := name
	if b.Prefix != "" {
		key = strings.TrimSuffix(b.Prefix, "/") + "/" + name
	}

	_, err := b.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        awssdk.String(b.Name),
		Key:           awssdk.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: awssdk.Int64(int64(len(content))),
		ContentType:   awssdk.String(pdfMediaType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", b.Name, key, err)
	}

	location := s3Scheme + b.Name + "/" + key
	zerolog.Ctx(ctx).Info().Str("location", location).Int("bytes", len(content)).Msg("report exported")
	return location, nil
}

// IsS3 reports whether target names an s3:// location.
func IsS3(target string) bool {
	return strings.HasPrefix(target, s3Scheme)
}

// ParseS3 splits s3://bucket/prefix into its bucket and key prefix.
func ParseS3(target string) (bucket, prefix string, err error) {
	if !IsS3(target) {
		return "", "", fmt.Errorf("not an s3 location: %q", target)
	}
	rest := strings.TrimPrefix(target, s3Scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", target)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// LoadAWSConfig loads the shared AWS configuration for profile.
func LoadAWSConfig(ctx context.Context, profile string) (*awssdk.Config, error) {
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

// NewDestination returns a Bucket for s3:// targets and a Directory otherwise.
func NewDestination(ctx context.Context, target, awsProfile string) (Destination, error) {
	if !IsS3(target) {
		if target == "" {
			target = "."
		}
		return Directory{Path: target}, nil
	}

	bucket, prefix, err := ParseS3(target)
	if err != nil {
		return nil, err
	}
	awsCfg, err := LoadAWSConfig(ctx, awsProfile)
	if err != nil {
		return nil, err
	}
	return Bucket{Client: s3.NewFromConfig(*awsCfg), Name: bucket, Prefix: prefix}, nil
}

// Deliver renders report and hands the PDF to dest under the variant's file name.
func (e *Exporter) Deliver(ctx context.Context, dest Destination, report domain.Report, variant Variant, user string) (string, error) {
	if report.ID == "" {
		return "", ErrNoReport
	}
	var buf bytes.Buffer
	if _, err := e.Write(&buf, report, variant, user); err != nil {
		return "", err
	}
	return dest.Deliver(ctx, variant.Filename(report.ID), buf.Bytes())
}
