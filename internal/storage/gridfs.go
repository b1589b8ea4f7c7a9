package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrFileNotFound = errors.New("file not found")

// StoredFile identifies a committed blob.
type StoredFile struct {
	ID       string `json:"_id"`
	Filename string `json:"filename"`
}

// BlobStore is the store-by-key blob capability behind the file endpoints.
// Save either commits the whole stream or leaves nothing behind.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, metadata map[string]string) (*StoredFile, error)
	Open(ctx context.Context, filename string) (io.ReadCloser, int64, error)
}

// GridFSStore keeps blobs in the store's GridFS bucket so uploads can be
// streamed back out of the file routes.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(bucket *gridfs.Bucket) *GridFSStore {
	return &GridFSStore{bucket: bucket}
}

// FileKey derives the stored filename from the uploader and the original
// name: <userID><unix-ms>.<ext>.
func FileKey(userID, originalName string) string {
	ext := ""
	if i := strings.LastIndex(originalName, "."); i >= 0 && i < len(originalName)-1 {
		ext = originalName[i+1:]
	}
	key := fmt.Sprintf("%s%d", userID, time.Now().UnixMilli())
	if ext != "" {
		key = key + "." + ext
	}
	return key
}

func (s *GridFSStore) Save(ctx context.Context, key string, r io.Reader, metadata map[string]string) (*StoredFile, error) {
	meta := bson.M{}
	for k, v := range metadata {
		meta[k] = v
	}

	stream, err := s.bucket.OpenUploadStream(key, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return nil, fmt.Errorf("failed to open upload stream: %v", err)
	}

	if _, err := io.Copy(stream, r); err != nil {
		// Abort discards any chunks already written.
		_ = stream.Abort()
		return nil, fmt.Errorf("failed to write file: %v", err)
	}

	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize file: %v", err)
	}

	id := ""
	if oid, ok := stream.FileID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}

	return &StoredFile{ID: id, Filename: key}, nil
}

func (s *GridFSStore) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(filename)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, 0, ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("failed to open file %q: %v", filename, err)
	}
	return stream, stream.GetFile().Length, nil
}
