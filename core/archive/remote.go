package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"gamedata-manager/core/blte"
	"gamedata-manager/core/errs"
	"gamedata-manager/core/storage"
)

// Remote serves archive byte ranges from an object-storage CDN mirror
// instead of local disk. Objects follow the same numbering convention
// as local archives, under an optional prefix. The minio client
// multiplexes its own connections, so no handle pool is needed here.
type Remote struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewRemote creates a remote source over a bucket.
func NewRemote(client storage.Client, bucket, prefix string, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// ObjectName returns the object key for an archive index.
func (r *Remote) ObjectName(index int) string {
	return path.Join(r.prefix, ArchiveName(index))
}

// ReadRange fetches length bytes at offset from an archive object via a
// ranged GetObject, decompressing encoded blocks exactly like the local
// store.
func (r *Remote) ReadRange(ctx context.Context, index int, offset int64, length int) ([]byte, error) {
	object := r.ObjectName(index)

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(offset, offset+int64(length)-1); err != nil {
		return nil, fmt.Errorf("invalid range [%d,%d): %w", offset, offset+int64(length), err)
	}

	rc, err := r.client.GetObject(ctx, r.bucket, object, opts)
	if err != nil {
		return nil, errs.IO("get", object, err)
	}
	defer rc.Close()

	buf := make([]byte, length)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errs.IO("read", object, err)
	}
	if n < length {
		return nil, errs.FormatAt(offset, "short read from archive object %s: got %d of %d bytes", object, n, length)
	}

	if blte.IsEncoded(buf) {
		decoded, err := blte.Decode(buf)
		if err != nil {
			return nil, fmt.Errorf("archive object %s at offset %d: %w", object, offset, err)
		}
		return decoded, nil
	}
	return buf, nil
}

// Exists reports whether the archive object is present in the bucket.
func (r *Remote) Exists(ctx context.Context, index int) bool {
	_, err := r.client.StatObject(ctx, r.bucket, r.ObjectName(index), minio.StatObjectOptions{})
	return err == nil
}

// ListArchives lists the mirror's archive objects by the numbering
// convention and returns their indexes in ascending order.
func (r *Remote) ListArchives(ctx context.Context) ([]int, error) {
	opts := minio.ListObjectsOptions{Prefix: r.prefix, Recursive: true}
	var indexes []int
	for info := range r.client.ListObjects(ctx, r.bucket, opts) {
		if info.Err != nil {
			return nil, errs.IO("list", r.bucket, info.Err)
		}
		m := archivePattern.FindStringSubmatch(path.Base(info.Key))
		if m == nil {
			continue
		}
		if idx, err := strconv.Atoi(m[1]); err == nil {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)
	return indexes, nil
}
