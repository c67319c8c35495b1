package archive_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/storage/mocks"
)

func TestRemoteReadRange(t *testing.T) {
	client := new(mocks.Client)
	payload := []byte("remote bytes")
	client.On("GetObject", mock.Anything, "gamedata", "mirror/data.002", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)

	r := archive.NewRemote(client, "gamedata", "mirror", nil)
	got, err := r.ReadRange(context.Background(), 2, 128, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	client.AssertExpectations(t)
}

func TestRemoteReadRangeDecodesBlocks(t *testing.T) {
	client := new(mocks.Client)
	frame := blteFrame([]byte("inflated"))
	client.On("GetObject", mock.Anything, "gamedata", "data.000", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(frame)), nil)

	r := archive.NewRemote(client, "gamedata", "", nil)
	got, err := r.ReadRange(context.Background(), 0, 0, len(frame))
	require.NoError(t, err)
	assert.Equal(t, []byte("inflated"), got)
}

func TestRemoteShortRead(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "gamedata", "data.000", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("tiny"))), nil)

	r := archive.NewRemote(client, "gamedata", "", nil)
	_, err := r.ReadRange(context.Background(), 0, 0, 100)
	assert.Error(t, err)
}

func TestRemoteExists(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "gamedata", "data.001", mock.Anything).
		Return(minio.ObjectInfo{Key: "data.001"}, nil)

	r := archive.NewRemote(client, "gamedata", "", nil)
	assert.True(t, r.Exists(context.Background(), 1))
}

func TestRemoteListArchives(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "mirror/data.001"}
	ch <- minio.ObjectInfo{Key: "mirror/readme.md"}
	ch <- minio.ObjectInfo{Key: "mirror/data.000"}
	close(ch)
	client.On("ListObjects", mock.Anything, "gamedata", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	r := archive.NewRemote(client, "gamedata", "mirror", nil)
	indexes, err := r.ListArchives(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indexes)
}
