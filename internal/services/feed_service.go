package services

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type FeedConfig struct {
	// ForceDateDesc ignores the caller's sort and always orders the feed newest first.
	ForceDateDesc bool
	// PublicURL prefixes the file download path in each post.
	PublicURL string
}

// FeedService builds a user's activity feed from the posts of their friends.
type FeedService struct {
	store   repositories.Store
	friends *FriendshipService
	posts   repositories.PostRepository
	cfg     FeedConfig
	log     *zap.Logger
}

func NewFeedService(store repositories.Store, posts repositories.PostRepository, cfg FeedConfig, log *zap.Logger) *FeedService {
	return &FeedService{
		store:   store,
		friends: NewFriendshipService(store, log),
		posts:   posts,
		cfg:     cfg,
		log:     log.Named("feed"),
	}
}

// GetActivityFeed returns one page of posts written by userID's friends.
func (s *FeedService) GetActivityFeed(ctx context.Context, userID uint, page pagination.Page) (*pagination.Result[models.PostResponse], error) {
	exists, err := s.store.Users().ExistsByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user")
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	authors, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return pagination.Empty[models.PostResponse](page), nil
	}

	if s.cfg.ForceDateDesc {
		page = page.WithSort(pagination.DateDesc())
	}

	posts, total, err := s.posts.GetPostsByUserIDs(ctx, authors, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query feed posts")
	}

	items := make([]models.PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, postResponse(s.cfg.PublicURL, p))
	}

	s.log.Debug("feed built", zap.Uint("user", userID), zap.Int("friends", len(authors)), zap.Int("items", len(items)))
	return &pagination.Result[models.PostResponse]{Items: items, TotalItems: total, Page: page}, nil
}
