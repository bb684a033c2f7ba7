package services

import (
	"context"
	"io"

	"firebase.google.com/go/v4/auth"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []uint, page pagination.Page) ([]models.Post, int64, error) {
	args := m.Called(ctx, userIDs, page)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepository) GetAllPosts(ctx context.Context, page pagination.Page) ([]models.Post, int64, error) {
	args := m.Called(ctx, page)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	return m.Called(ctx, id, post).Error(0)
}

func (m *mockPostRepository) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFileRepository struct {
	mock.Mock
}

func (m *mockFileRepository) Upload(ctx context.Context, postID primitive.ObjectID, filename string, source io.Reader) error {
	return m.Called(ctx, postID, filename, source).Error(0)
}

func (m *mockFileRepository) Download(ctx context.Context, postID primitive.ObjectID, w io.Writer) error {
	args := m.Called(ctx, postID, w)
	if content, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, content)
	}
	return args.Error(1)
}

func (m *mockFileRepository) Delete(ctx context.Context, postID primitive.ObjectID) error {
	return m.Called(ctx, postID).Error(0)
}

type mockFirebaseVerifier struct {
	mock.Mock
}

func (m *mockFirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*auth.Token)
	return token, args.Error(1)
}
