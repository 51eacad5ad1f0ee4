package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_StoreRetrieveDelete(t *testing.T) {
	m := NewMemory(newTestGenerator(t), false)
	ctx := context.Background()
	content := []byte{0xff, 0xd8, 0xff, 0xe0}

	ref, err := m.Store(ctx, bytes.NewReader(content), "image/jpeg", "pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	rc, err := m.Retrieve(ctx, ref.Key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	ok, err := m.Delete(ctx, ref.Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, m.Len())

	_, err = m.Retrieve(ctx, ref.Key)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = m.Delete(ctx, ref.Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_AppendOnlyRefusesDelete(t *testing.T) {
	m := NewMemory(newTestGenerator(t), true)
	ctx := context.Background()

	ref, err := m.Store(ctx, bytes.NewReader([]byte("x")), "image/png", "a.png")
	require.NoError(t, err)

	ok, err := m.Delete(ctx, ref.Key)
	assert.ErrorIs(t, err, ErrDeleteUnsupported)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestWhitelist_Allow(t *testing.T) {
	w := NewWhitelist([]string{"image/png", "image/jpeg"})

	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"image/png", false},
		{"image/jpeg", false},
		{"application/x-msdownload", true},
		{"IMAGE/PNG", true}, // membership is exact-string
		{"", true},
	}

	for _, tt := range tests {
		err := w.Allow(tt.contentType)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrForbiddenMimeType, tt.contentType)
		} else {
			assert.NoError(t, err, tt.contentType)
		}
	}
}
