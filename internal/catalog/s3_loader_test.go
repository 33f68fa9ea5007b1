package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"foodpedia/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Restaurant, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Restaurant, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.calls = append(f.calls, key)

	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"catalogue-bucket/catalog/restaurants.jsonl.gz": gzipLines(t,
			`{"id":"r2","name":"Bella Napoli","cuisine":"Italian","emoji":"🍕"}`,
		),
	}}
	loader := NewS3LoaderWithClient(client, "catalogue-bucket", zerolog.Nop())

	restaurants, err := loader.Load(context.Background(), "catalog/restaurants.jsonl.gz")

	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "Bella Napoli", restaurants[0].Name)
	assert.Equal(t, []string{"catalogue-bucket/catalog/restaurants.jsonl.gz"}, client.calls)
}

func TestS3Loader_Load_Errors(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"bucket/broken.gz": gzipLines(t, `not json`),
	}}
	loader := NewS3LoaderWithClient(client, "bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "missing.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get object from S3")

	_, err = loader.Load(context.Background(), "broken.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bucket/broken.gz:1")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			assert.Equal(t, "catalog/test.gz", path, "S3 key should have prefix")
			return []model.Restaurant{{ID: "s3", Name: "From S3"}}, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	restaurants, err := fallback.Load(context.Background(), "test.gz")

	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "s3", restaurants[0].ID)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			assert.Equal(t, "test.gz", path, "local path should not have prefix")
			return []model.Restaurant{{ID: "local", Name: "From disk"}}, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	restaurants, err := fallback.Load(context.Background(), "test.gz")

	require.NoError(t, err)
	assert.Equal(t, "local", restaurants[0].ID)
}

func TestFallbackLoader_NoS3(t *testing.T) {
	calls := 0
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			calls++
			return []model.Restaurant{}, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "test.gz")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Restaurant, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "test.gz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
