package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/thanhminhmr/go-testerror/exception"
)

const objectSuffix = ".json"

const (
	errorS3Save   = exception.String("Report: Failed to save report to S3")
	errorS3Get    = exception.String("Report: Failed to get report from S3")
	errorS3List   = exception.String("Report: Failed to list reports from S3")
	errorS3Decode = exception.String("Report: Failed to decode report object")
)

// S3Client is the subset of the S3 API the store uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// S3Store keeps each report as one JSON object named after its ID. IDs are
// time ordered, so the key order is the creation order.
type S3Store struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3Client creates a client for S3 or an S3-compatible service.
func NewS3Client(config *S3Config) *s3.Client {
	options := s3.Options{
		Region:      config.Region,
		Credentials: credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
	}
	if config.Endpoint != "" {
		options.BaseEndpoint = aws.String(config.Endpoint)
		options.UsePathStyle = true
	}
	return s3.New(options)
}

func NewS3Store(client S3Client, config *S3Config) *S3Store {
	return &S3Store{
		client: client,
		bucket: config.Bucket,
		prefix: strings.Trim(config.Prefix, "/"),
	}
}

func (s *S3Store) key(id uuid.UUID) string {
	if s.prefix == "" {
		return id.String() + objectSuffix
	}
	return s.prefix + "/" + id.String() + objectSuffix
}

func (s *S3Store) listPrefix() string {
	if s.prefix == "" {
		return ""
	}
	return s.prefix + "/"
}

func (s *S3Store) Save(ctx context.Context, report *Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errorS3Save.AddCause(err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(report.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errorS3Save.AddCause(err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound.SetMessage("%s", id)
		}
		return nil, errorS3Get.AddCause(err)
	}
	defer output.Body.Close()
	report := &Report{}
	if err := json.NewDecoder(output.Body).Decode(report); err != nil {
		return nil, errorS3Decode.AddCause(err)
	}
	return report, nil
}

func (s *S3Store) List(ctx context.Context, limit int) ([]*Report, error) {
	if limit == 0 {
		return []*Report{}, nil
	}
	ids, err := s.listIds(ctx)
	if err != nil {
		return nil, errorS3List.AddCause(err)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(b.String(), a.String()) })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	reports := make([]*Report, 0, len(ids))
	for _, id := range ids {
		report, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// deleted between listing and reading
			continue
		} else if err != nil {
			return nil, errorS3List.AddCause(err)
		}
		reports = append(reports, report)
	}
	slices.SortStableFunc(reports, newer)
	return reports, nil
}

func (s *S3Store) listIds(ctx context.Context) ([]uuid.UUID, error) {
	prefix := s.listPrefix()
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	var ids []uuid.UUID
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, object := range page.Contents {
			name, found := strings.CutSuffix(strings.TrimPrefix(aws.ToString(object.Key), prefix), objectSuffix)
			if !found {
				continue
			}
			if id, err := uuid.Parse(name); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
