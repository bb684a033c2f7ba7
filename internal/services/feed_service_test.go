package services

import (
	"context"
	"testing"
	"time"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

func newFeedService(t *testing.T, f *friendshipFixture, posts *mockPostRepository, force bool) *FeedService {
	return NewFeedService(f.store, posts, FeedConfig{ForceDateDesc: force, PublicURL: "http://localhost:8080/"}, zaptest.NewLogger(t))
}

func TestActivityFeedUnknownUser(t *testing.T) {
	f := newFriendshipFixture(t)
	posts := new(mockPostRepository)
	feed := newFeedService(t, f, posts, true)

	_, err := feed.GetActivityFeed(context.Background(), 42, pagination.FirstPage())
	assert.ErrorIs(t, err, ErrUserNotFound)
	posts.AssertNotCalled(t, "GetPostsByUserIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityFeedWithoutFriends(t *testing.T) {
	f := newFriendshipFixture(t, "alice", "bob")
	posts := new(mockPostRepository)
	feed := newFeedService(t, f, posts, true)

	// a pending request is not a friendship
	_, err := f.friends.SendRequest(context.Background(), f.users[0].ID, f.users[1].ID)
	require.NoError(t, err)

	result, err := feed.GetActivityFeed(context.Background(), f.users[0].ID, pagination.FirstPage())
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.TotalItems)
	posts.AssertNotCalled(t, "GetPostsByUserIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityFeed(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob", "carol", "dave")
	alice, bob, carol := f.users[0].ID, f.users[1].ID, f.users[2].ID
	f.befriend(t, alice, bob)
	f.befriend(t, carol, alice)

	older := models.Post{ID: primitive.NewObjectID(), UserID: carol, Title: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Post{ID: primitive.NewObjectID(), UserID: bob, Title: "newer", FileName: "a.png", CreatedAt: time.Now()}

	requested := pagination.Parse("2", "5", "title,asc")

	t.Run("sort forced to date desc", func(t *testing.T) {
		posts := new(mockPostRepository)
		posts.On("GetPostsByUserIDs", ctx, []uint{bob, carol}, mock.MatchedBy(func(p pagination.Page) bool {
			return p.Number == 2 && p.Size == 5 && p.Sort != nil && *p.Sort == pagination.DateDesc()
		})).Return([]models.Post{newer, older}, int64(7), nil).Once()

		result, err := newFeedService(t, f, posts, true).GetActivityFeed(ctx, alice, requested)
		require.NoError(t, err)
		posts.AssertExpectations(t)

		require.Len(t, result.Items, 2)
		assert.Equal(t, "newer", result.Items[0].Title)
		assert.Equal(t, "http://localhost:8080/file/download/"+newer.ID.Hex(), result.Items[0].FileURL)
		assert.Empty(t, result.Items[1].FileURL, "post without a file")
		assert.Equal(t, int64(7), result.TotalItems)
		assert.Equal(t, 2, result.TotalPages())
		for _, item := range result.Items {
			assert.NotEqual(t, alice, item.UserID)
		}
	})

	t.Run("caller sort kept when not forced", func(t *testing.T) {
		posts := new(mockPostRepository)
		posts.On("GetPostsByUserIDs", ctx, []uint{bob, carol}, requested).
			Return([]models.Post{newer}, int64(1), nil).Once()

		result, err := newFeedService(t, f, posts, false).GetActivityFeed(ctx, alice, requested)
		require.NoError(t, err)
		posts.AssertExpectations(t)
		assert.Len(t, result.Items, 1)
	})
}
