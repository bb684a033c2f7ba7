package repositories

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postFilesBucket = "post_files"

// ErrFileNotFound is returned when a post has no stored file
var ErrFileNotFound = errors.New("file not found")

// FileRepository stores the file payload attached to a post, keyed by the post ID
type FileRepository interface {
	Upload(ctx context.Context, postID primitive.ObjectID, filename string, source io.Reader) error
	Download(ctx context.Context, postID primitive.ObjectID, w io.Writer) error
	Delete(ctx context.Context, postID primitive.ObjectID) error
}

// GridFSFileRepository implements FileRepository with MongoDB GridFS
type GridFSFileRepository struct {
	db *mongo.Database
}

// NewGridFSFileRepository creates a new GridFSFileRepository
func NewGridFSFileRepository(db *mongo.Database) *GridFSFileRepository {
	return &GridFSFileRepository{db: db}
}

// bucket returns a fresh bucket per call; a gridfs.Bucket keeps per-stream buffers and is
// not shared between requests.
func (r *GridFSFileRepository) bucket() (*gridfs.Bucket, error) {
	return gridfs.NewBucket(r.db, options.GridFSBucket().SetName(postFilesBucket))
}

func (r *GridFSFileRepository) Upload(_ context.Context, postID primitive.ObjectID, filename string, source io.Reader) error {
	bucket, err := r.bucket()
	if err != nil {
		return err
	}
	return bucket.UploadFromStreamWithID(postID, filename, source)
}

func (r *GridFSFileRepository) Download(_ context.Context, postID primitive.ObjectID, w io.Writer) error {
	bucket, err := r.bucket()
	if err != nil {
		return err
	}
	if _, err := bucket.DownloadToStream(postID, w); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func (r *GridFSFileRepository) Delete(_ context.Context, postID primitive.ObjectID) error {
	bucket, err := r.bucket()
	if err != nil {
		return err
	}
	if err := bucket.Delete(postID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return err
	}
	return nil
}
