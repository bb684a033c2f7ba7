package services

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FileURL is the public download location of the file attached to post postID.
func FileURL(publicURL, postID string) string {
	return strings.TrimRight(publicURL, "/") + "/file/download/" + postID
}

// postResponse maps p to its response shape; posts without a file carry no file URL.
func postResponse(publicURL string, p models.Post) models.PostResponse {
	if p.FileName == "" {
		return p.ToResponse("")
	}
	return p.ToResponse(FileURL(publicURL, p.ID.Hex()))
}

// Upload is a file attached to a new post
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type PostService struct {
	posts     repositories.PostRepository
	files     repositories.FileRepository
	publicURL string
	log       *zap.Logger
}

func NewPostService(posts repositories.PostRepository, files repositories.FileRepository, publicURL string, log *zap.Logger) *PostService {
	return &PostService{posts: posts, files: files, publicURL: publicURL, log: log.Named("post")}
}

func (s *PostService) response(p models.Post) models.PostResponse {
	return postResponse(s.publicURL, p)
}

func (s *PostService) responses(posts []models.Post, total int64, page pagination.Page) *pagination.Result[models.PostResponse] {
	items := make([]models.PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, s.response(p))
	}
	return &pagination.Result[models.PostResponse]{Items: items, TotalItems: total, Page: page}
}

// CreatePost stores the post and, when given, its file. A failed upload removes the post.
func (s *PostService) CreatePost(ctx context.Context, userID uint, req models.PostRequest, file *Upload) (*models.PostResponse, error) {
	post := &models.Post{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Title:  req.Title,
		Text:   req.Text,
	}
	if file != nil {
		post.FileName = file.Name
		post.ContentType = file.ContentType
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	if file != nil {
		if err := s.files.Upload(ctx, post.ID, file.Name, file.Content); err != nil {
			if derr := s.posts.DeletePost(ctx, post.ID.Hex()); derr != nil {
				s.log.Error("failed to roll back post after upload error", zap.String("post", post.ID.Hex()), zap.Error(derr))
			}
			return nil, errors.Wrap(err, "failed to store post file")
		}
	}

	resp := s.response(*post)
	return &resp, nil
}

func (s *PostService) getPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, "failed to load post")
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.PostResponse, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.response(*post)
	return &resp, nil
}

// ListPosts pages through all posts, newest first unless the page asks otherwise.
func (s *PostService) ListPosts(ctx context.Context, page pagination.Page) (*pagination.Result[models.PostResponse], error) {
	posts, total, err := s.posts.GetAllPosts(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}
	return s.responses(posts, total, page), nil
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, page pagination.Page) (*pagination.Result[models.PostResponse], error) {
	posts, total, err := s.posts.GetPostsByUserIDs(ctx, []uint{userID}, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user posts")
	}
	return s.responses(posts, total, page), nil
}

// UpdatePost edits title and text. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, userID uint, id string, req models.PostRequest) (*models.PostResponse, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errors.WithMessage(ErrForbidden, "only the author can edit a post")
	}

	post.Title = req.Title
	post.Text = req.Text
	if err := s.posts.UpdatePost(ctx, id, post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, "failed to update post")
	}

	resp := s.response(*post)
	return &resp, nil
}

// DeletePost removes the post and its file. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, userID uint, id string) error {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return errors.WithMessage(ErrForbidden, "only the author can delete a post")
	}

	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return errors.Wrap(err, "failed to delete post")
	}
	if err := s.files.Delete(ctx, post.ID); err != nil {
		s.log.Warn("post deleted but file removal failed", zap.String("post", id), zap.Error(err))
	}
	return nil
}

// DownloadFile returns the post, for its file metadata, and the file content.
func (s *PostService) DownloadFile(ctx context.Context, id string) (*models.Post, []byte, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := s.files.Download(ctx, post.ID, &buf); err != nil {
		if errors.Is(err, repositories.ErrFileNotFound) {
			return nil, nil, errors.WithMessage(ErrNotFound, "file")
		}
		return nil, nil, errors.Wrap(err, "failed to download file")
	}
	return post, buf.Bytes(), nil
}
