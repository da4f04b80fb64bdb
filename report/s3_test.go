package report_test

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-testerror/report"
)

// fakeS3 is an in-memory bucket.
type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(input.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, exists := f.objects[aws.ToString(input.Key)]
	if !exists {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(input.Prefix)) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	output := &s3.ListObjectsV2Output{}
	for _, key := range keys {
		output.Contents = append(output.Contents, types.Object{Key: aws.String(key)})
	}
	return output, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{"reports/notes.txt": []byte("ignored")}}
	store := report.NewS3Store(client, &report.S3Config{Bucket: "bucket", Prefix: "/reports/"})
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	older := newReport(t, "older", base)
	newer := newReport(t, "newer", base.Add(time.Minute))
	newer.Text = "Error: newer\n    at f (file:///a.js:1:1)"

	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))
	assert.Contains(t, client.objects, "reports/"+newer.ID.String()+".json")

	got, err := store.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, report.ErrNotFound)

	list, err := store.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)

	list, err = store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "newer", list[0].Name)
}
