package objstore_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/pkg/objstore"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := objstore.NewMemoryStore("http://objects.local")

	ok, err := m.Exists(ctx, "papers/a.pdf")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Put(ctx, "papers/a.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	ok, err = m.Exists(ctx, "papers/a.pdf")
	require.NoError(t, err)
	require.True(t, ok)

	data, ct, err := m.Get("papers/a.pdf")
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(data))
	require.Equal(t, "application/pdf", ct)

	u, err := m.PresignGet(ctx, "papers/a.pdf", 15*time.Minute)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, "http://objects.local/papers%2Fa.pdf?expires="))

	require.NoError(t, m.Delete(ctx, "papers/a.pdf"))
	require.NoError(t, m.Delete(ctx, "papers/a.pdf"))

	_, _, err = m.Get("papers/a.pdf")
	require.ErrorIs(t, err, objstore.ErrNotFound)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := objstore.NewS3Store(context.Background(), objstore.S3Config{Region: "us-east-1"})
	require.Error(t, err)
}

func TestS3Store_PresignGet(t *testing.T) {
	s, err := objstore.NewS3Store(context.Background(), objstore.S3Config{
		Bucket:          "papers",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	u, err := s.PresignGet(context.Background(), "papers/01J.pdf", 15*time.Minute)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, "http://localhost:9000/papers/papers/01J.pdf?"), u)
	require.Contains(t, u, "X-Amz-Expires=900")
}
