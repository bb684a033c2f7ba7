package services

import (
	"context"
	"testing"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/nanomedia/social-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type friendshipFixture struct {
	db       *gorm.DB
	store    *repositories.PostgresStore
	friends  *FriendshipService
	messages *MessageService
	users    []*models.User
}

func newFriendshipFixture(t *testing.T, usernames ...string) *friendshipFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	store := repositories.NewPostgresStore(db)
	log := zaptest.NewLogger(t)

	f := &friendshipFixture{
		db:       db,
		store:    store,
		friends:  NewFriendshipService(store, log),
		messages: NewMessageService(store, log),
	}
	for _, name := range usernames {
		f.users = append(f.users, testutil.CreateUser(t, db, name))
	}
	return f
}

func (f *friendshipFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *friendshipFixture) befriend(t *testing.T, a, b uint) *models.Friendship {
	t.Helper()
	ctx := context.Background()
	req, err := f.friends.SendRequest(ctx, a, b)
	require.NoError(t, err)
	friendship, err := f.friends.AcceptRequest(ctx, b, req.ID)
	require.NoError(t, err)
	return friendship
}

func TestSendRequest(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob")
	alice, bob := f.users[0].ID, f.users[1].ID

	t.Run("to self", func(t *testing.T) {
		_, err := f.friends.SendRequest(ctx, alice, alice)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		_, err := f.friends.SendRequest(ctx, alice, 999)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown sender", func(t *testing.T) {
		_, err := f.friends.SendRequest(ctx, 999, bob)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Zero(t, f.count(t, &models.Follower{}))
	})

	t.Run("creates request and notification", func(t *testing.T) {
		req, err := f.friends.SendRequest(ctx, alice, bob)
		require.NoError(t, err)
		assert.NotZero(t, req.ID)
		assert.Equal(t, alice, req.SenderID)
		assert.Equal(t, bob, req.ReceiverID)

		var notifications []models.Notification
		require.NoError(t, f.db.Where("recipient_id = ?", bob).Find(&notifications).Error)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationFriendRequest, notifications[0].Type)
		assert.Equal(t, req.ID, notifications[0].TargetID)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := f.friends.SendRequest(ctx, alice, bob)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
		assert.Equal(t, int64(1), f.count(t, &models.Follower{}))
	})

	t.Run("reverse direction is independent", func(t *testing.T) {
		_, err := f.friends.SendRequest(ctx, bob, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.count(t, &models.Follower{}))
	})
}

func TestAcceptRequest(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob", "carol")
	alice, bob, carol := f.users[0].ID, f.users[1].ID, f.users[2].ID

	req, err := f.friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	t.Run("missing request", func(t *testing.T) {
		_, err := f.friends.AcceptRequest(ctx, bob, 999)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("not the receiver", func(t *testing.T) {
		_, err := f.friends.AcceptRequest(ctx, carol, req.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Zero(t, f.count(t, &models.Friendship{}))
	})

	t.Run("creates friendship and reciprocal follow", func(t *testing.T) {
		friendship, err := f.friends.AcceptRequest(ctx, bob, req.ID)
		require.NoError(t, err)
		assert.Equal(t, alice, friendship.UserOneID)
		assert.Equal(t, bob, friendship.UserTwoID)

		exists, err := f.store.Followers().ExistsBySenderReceiver(ctx, bob, alice)
		require.NoError(t, err)
		assert.True(t, exists, "reciprocal follow should be created")

		_, err = f.store.Followers().GetFollowerByID(ctx, req.ID)
		assert.NoError(t, err, "original request is kept")

		ok, err := f.messages.AreFriends(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, ok)

		var accepted int64
		require.NoError(t, f.db.Model(&models.Notification{}).
			Where("recipient_id = ? AND type = ?", alice, models.NotificationFriendAccept).
			Count(&accepted).Error)
		assert.Equal(t, int64(1), accepted)
	})

	t.Run("accepting again", func(t *testing.T) {
		_, err := f.friends.AcceptRequest(ctx, bob, req.ID)
		assert.ErrorIs(t, err, ErrDuplicateFriendship)
		assert.Equal(t, int64(1), f.count(t, &models.Friendship{}))
	})
}

func TestAcceptReciprocalRequests(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob")
	alice, bob := f.users[0].ID, f.users[1].ID

	aToB, err := f.friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	bToA, err := f.friends.SendRequest(ctx, bob, alice)
	require.NoError(t, err)

	_, err = f.friends.AcceptRequest(ctx, bob, aToB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.count(t, &models.Follower{}), "existing reverse request is reused")

	_, err = f.friends.AcceptRequest(ctx, alice, bToA.ID)
	assert.ErrorIs(t, err, ErrDuplicateFriendship)
	assert.Equal(t, int64(1), f.count(t, &models.Friendship{}))
}

func TestFriendshipPairIndex(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob")
	alice, bob := f.users[0].ID, f.users[1].ID

	require.NoError(t, f.store.Friendships().CreateFriendship(ctx, &models.Friendship{UserOneID: alice, UserTwoID: bob}))
	err := f.store.Friendships().CreateFriendship(ctx, &models.Friendship{UserOneID: bob, UserTwoID: alice})
	require.Error(t, err, "the reversed pair must be rejected by the store")
	assert.Equal(t, int64(1), f.count(t, &models.Friendship{}))
}

func TestRemoveFriendship(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob")
	alice, bob := f.users[0].ID, f.users[1].ID

	req, err := f.friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, uint(1), req.ID)

	friendship, err := f.friends.AcceptRequest(ctx, bob, req.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, friendship.UserOneID)
	assert.Equal(t, bob, friendship.UserTwoID)

	require.NoError(t, f.friends.RemoveFriendship(ctx, alice, bob))

	assert.Zero(t, f.count(t, &models.Friendship{}))
	exists, err := f.store.Followers().ExistsBySenderReceiver(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, exists, "remover's follow edge is deleted")
	exists, err = f.store.Followers().ExistsBySenderReceiver(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, exists, "removed user keeps following the remover")

	ok, err := f.messages.AreFriends(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.friends.RemoveFriendship(ctx, alice, bob)
	assert.ErrorIs(t, err, ErrFriendshipNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFriendshipByEitherParty(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob")
	alice, bob := f.users[0].ID, f.users[1].ID
	f.befriend(t, alice, bob)

	// stored as (alice, bob); bob removes
	require.NoError(t, f.friends.RemoveFriendship(ctx, bob, alice))
	assert.Zero(t, f.count(t, &models.Friendship{}))

	exists, err := f.store.Followers().ExistsBySenderReceiver(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.store.Followers().ExistsBySenderReceiver(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRemoveFollow(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob", "carol")
	alice, bob, carol := f.users[0].ID, f.users[1].ID, f.users[2].ID
	f.befriend(t, alice, bob)

	following, err := f.friends.ListFollowing(ctx, alice)
	require.NoError(t, err)
	require.Len(t, following, 1)
	followID := following[0].ID

	assert.ErrorIs(t, f.friends.RemoveFollow(ctx, alice, 999), ErrFollowNotFound)
	assert.ErrorIs(t, f.friends.RemoveFollow(ctx, carol, followID), ErrForbidden)

	require.NoError(t, f.friends.RemoveFollow(ctx, bob, followID))
	assert.ErrorIs(t, f.friends.RemoveFollow(ctx, bob, followID), ErrFollowNotFound)

	ok, err := f.messages.AreFriends(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok, "removing a follow does not touch the friendship")
}

func TestListRelationships(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob", "carol", "dave")
	alice, bob, carol, dave := f.users[0].ID, f.users[1].ID, f.users[2].ID, f.users[3].ID

	f.befriend(t, alice, bob)
	f.befriend(t, carol, alice)
	_, err := f.friends.SendRequest(ctx, dave, alice)
	require.NoError(t, err)

	friendships, err := f.friends.ListFriendships(ctx, alice)
	require.NoError(t, err)
	require.Len(t, friendships, 2)
	assert.True(t, friendships[0].ID < friendships[1].ID)
	for _, fr := range friendships {
		assert.Contains(t, []uint{fr.UserOneID, fr.UserTwoID}, alice)
	}

	ids, err := f.friends.FriendIDs(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob, carol}, ids)

	followers, err := f.friends.ListFollowers(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, followers, 3, "bob (reciprocal), carol and dave")

	following, err := f.friends.ListFollowing(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, following, 2, "alice's request to bob and the reciprocal to carol")
}

func TestFriendIDsExcludesSelf(t *testing.T) {
	friendships := []models.Friendship{
		{ID: 1, UserOneID: 1, UserTwoID: 2},
		{ID: 2, UserOneID: 3, UserTwoID: 1},
		{ID: 3, UserOneID: 1, UserTwoID: 1},
		{ID: 4, UserOneID: 2, UserTwoID: 1},
	}
	assert.Equal(t, []uint{2, 3}, friendIDs(1, friendships))
	assert.Empty(t, friendIDs(1, nil))
}
