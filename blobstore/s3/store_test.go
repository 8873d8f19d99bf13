package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const snapshotBucket = "kmeans-snapshots"

func TestStore_Open(t *testing.T) {
	client := new(MockS3Client)
	store := NewStore(client, snapshotBucket, "runs")
	ctx := context.Background()

	t.Run("MissingSnapshot", func(t *testing.T) {
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return aws.ToString(in.Key) == "runs/k3-missing.kmns"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(ctx, "k3-missing.kmns")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ReportsSize", func(t *testing.T) {
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return aws.ToString(in.Bucket) == snapshotBucket && aws.ToString(in.Key) == "runs/k3-seed777.kmns"
		})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(56 + 48 + 16)}, nil).Once()

		blob, err := store.Open(ctx, "k3-seed777.kmns")
		require.NoError(t, err)
		assert.Equal(t, int64(120), blob.Size())
		require.NoError(t, blob.Close())
	})

	client.AssertExpectations(t)
}

func TestStore_Put(t *testing.T) {
	client := new(MockS3Client)
	store := NewStore(client, snapshotBucket, "runs/")
	snapshot := []byte("KMNS\x01\x00\x01")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Key) == "runs/k2-seed42.kmns" &&
			in.ChecksumCRC32C != nil && aws.ToInt64(in.ContentLength) == int64(len(snapshot))
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		body, _ := io.ReadAll(in.Body)
		assert.Equal(t, snapshot, body)
		assert.Equal(t, computeCRC32C(snapshot), aws.ToString(in.ChecksumCRC32C))
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "k2-seed42.kmns", snapshot))
	client.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	client := new(MockS3Client)
	store := NewStore(client, snapshotBucket, "runs")

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "runs/k4-stale.kmns"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	assert.NoError(t, store.Delete(context.Background(), "k4-stale.kmns"))
	client.AssertExpectations(t)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("StripsRoot", func(t *testing.T) {
		client := new(MockS3Client)
		store := NewStore(client, snapshotBucket, "runs/")

		client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
			return aws.ToString(in.Prefix) == "runs/"
		})).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("runs/k3-seed777.kmns")},
				{Key: aws.String("runs/2026/k2-seed1.kmns")},
			},
		}, nil).Once()

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026/k2-seed1.kmns", "k3-seed777.kmns"}, names)
	})

	t.Run("RootIsADirectory", func(t *testing.T) {
		client := new(MockS3Client)
		store := NewStore(client, snapshotBucket, "models")

		// "models" must not reach sibling roots such as "models-old/".
		client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
			return aws.ToString(in.Prefix) == "models/"
		})).Return(&s3.ListObjectsV2Output{}, nil).Once()

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, names)
		client.AssertExpectations(t)
	})

	t.Run("KeepsTrailingSlash", func(t *testing.T) {
		client := new(MockS3Client)
		store := NewStore(client, snapshotBucket, "models")

		client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
			return aws.ToString(in.Prefix) == "models/runs/"
		})).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{{Key: aws.String("models/runs/k2.kmns")}},
		}, nil).Once()

		names, err := store.List(ctx, "runs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"runs/k2.kmns"}, names)
		client.AssertExpectations(t)
	})

	t.Run("BucketRoot", func(t *testing.T) {
		client := new(MockS3Client)
		store := NewStore(client, snapshotBucket, "")

		client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
			return aws.ToString(in.Prefix) == "k3"
		})).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{{Key: aws.String("k3-seed777.kmns")}},
		}, nil).Once()

		names, err := store.List(ctx, "k3")
		require.NoError(t, err)
		assert.Equal(t, []string{"k3-seed777.kmns"}, names)
	})
}

func TestStore_List_Pagination(t *testing.T) {
	client := new(MockS3Client)
	store := NewStore(client, snapshotBucket, "runs")

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("page-2"),
		Contents:              []types.Object{{Key: aws.String("runs/k5.kmns")}},
	}, nil).Once()

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "page-2"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("runs/k4.kmns")}},
	}, nil).Once()

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"k4.kmns", "k5.kmns"}, names)
	client.AssertExpectations(t)
}

func TestBlob_ReadAt(t *testing.T) {
	client := new(MockS3Client)
	blob := &s3Blob{
		client: client,
		bucket: snapshotBucket,
		key:    "runs/k2.kmns",
		size:   12,
	}
	ctx := context.Background()

	t.Run("Header", func(t *testing.T) {
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Key) == "runs/k2.kmns" && aws.ToString(in.Range) == "bytes=0-3"
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("KMNS")),
		}, nil).Once()

		buf := make([]byte, 4)
		n, err := blob.ReadAt(ctx, buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "KMNS", string(buf))
	})

	t.Run("ShortTail", func(t *testing.T) {
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Range) == "bytes=9-11"
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("\x00\x01\x02")),
		}, nil).Once()

		buf := make([]byte, 8)
		n, err := blob.ReadAt(ctx, buf, 9)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte{0, 1, 2}, buf[:n])
	})

	t.Run("PastEnd", func(t *testing.T) {
		n, err := blob.ReadAt(ctx, make([]byte, 4), 12)
		assert.Zero(t, n)
		assert.Equal(t, io.EOF, err)
	})

	client.AssertExpectations(t)
}

func TestKeyPrefix(t *testing.T) {
	tests := []struct {
		root, want string
	}{
		{"", ""},
		{"/", ""},
		{"runs", "runs/"},
		{"runs/", "runs/"},
		{"/tenant/runs//", "tenant/runs/"},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			assert.Equal(t, tt.want, keyPrefix(tt.root))
		})
	}
}

func TestComputeCRC32C(t *testing.T) {
	// CRC32C("123456789") = 0xE3069283
	assert.Equal(t, "4waSgw==", computeCRC32C([]byte("123456789")))
}
