package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront-core/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error

	putInfo minioLib.UploadInfo
	putErr  error

	getRC  io.ReadCloser
	getErr error

	removeErr error

	lastPutBody []byte
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, _ string, reader io.Reader, _ int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.lastPutBody, _ = io.ReadAll(reader)
	return f.putInfo, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

// failingReadCloser mimics the SDK behavior where a missing object only
// surfaces when the object body is read.
type failingReadCloser struct{ err error }

func (r failingReadCloser) Read(_ []byte) (int, error) { return 0, r.err }
func (r failingReadCloser) Close() error               { return nil }

func TestNewWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	s, err := NewWithAPI(ctx, api, "storefront")
	require.NoError(t, err)
	assert.Equal(t, "storefront", s.bucket)
}

func TestNewWithAPI_CreateBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}
	s, err := NewWithAPI(ctx, api, "storefront")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewWithAPI_BucketExistsError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExistsErr: errors.New("boom")}
	s, err := NewWithAPI(ctx, api, "storefront")
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestNewWithAPI_MakeBucketError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false, makeBucketErr: errors.New("fail")}
	s, err := NewWithAPI(ctx, api, "storefront")
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestStore_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		api := &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte(`[]`)))}
		s := &Store{api: api, bucket: "b"}

		value, err := s.Read(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, `[]`, value)
	})

	t.Run("missing object", func(t *testing.T) {
		api := &fakeMinio{getRC: failingReadCloser{err: minioLib.ErrorResponse{Code: "NoSuchKey"}}}
		s := &Store{api: api, bucket: "b"}

		_, err := s.Read(ctx, "cart")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		api := &fakeMinio{getErr: errors.New("get-fail")}
		s := &Store{api: api, bucket: "b"}

		_, err := s.Read(ctx, "cart")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})

	t.Run("read error", func(t *testing.T) {
		api := &fakeMinio{getRC: failingReadCloser{err: errors.New("read-fail")}}
		s := &Store{api: api, bucket: "b"}

		_, err := s.Read(ctx, "cart")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read object")
	})
}

func TestStore_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		s := &Store{api: api, bucket: "b"}

		require.NoError(t, s.Write(ctx, "cart", `[{"quantity":1}]`))
		assert.Equal(t, []byte(`[{"quantity":1}]`), api.lastPutBody)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		s := &Store{api: api, bucket: "b"}

		err := s.Write(ctx, "cart", `[]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s := &Store{api: &fakeMinio{}, bucket: "b"}
		assert.NoError(t, s.Delete(ctx, "cart"))
	})

	t.Run("error", func(t *testing.T) {
		s := &Store{api: &fakeMinio{removeErr: errors.New("remove-fail")}, bucket: "b"}
		err := s.Delete(ctx, "cart")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}
