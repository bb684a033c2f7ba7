package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreFriendsSymmetric(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "alice", "bob", "carol")
	alice, bob, carol := f.users[0].ID, f.users[1].ID, f.users[2].ID
	f.befriend(t, alice, bob)

	pairs := [][2]uint{{alice, bob}, {alice, carol}, {bob, carol}, {alice, alice}}
	for _, p := range pairs {
		ab, err := f.messages.AreFriends(ctx, p[0], p[1])
		require.NoError(t, err)
		ba, err := f.messages.AreFriends(ctx, p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "pair %v", p)
	}

	ok, err := f.messages.AreFriends(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMessagingRequiresFriendship(t *testing.T) {
	ctx := context.Background()
	f := newFriendshipFixture(t, "u1", "u2", "u3", "u4", "u5", "u6")
	five, six := f.users[4].ID, f.users[5].ID
	require.Equal(t, uint(5), five)
	require.Equal(t, uint(6), six)

	_, err := f.messages.SendMessage(ctx, five, six, "hello")
	assert.ErrorIs(t, err, ErrNotFriends)
	_, err = f.messages.GetMessages(ctx, five, six)
	assert.ErrorIs(t, err, ErrNotFriends)

	f.befriend(t, five, six)

	first, err := f.messages.SendMessage(ctx, five, six, "hello")
	require.NoError(t, err)
	second, err := f.messages.SendMessage(ctx, six, five, "hi back")
	require.NoError(t, err)

	messages, err := f.messages.GetMessages(ctx, six, five)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, "hello", messages[0].Text)
	assert.Equal(t, second.ID, messages[1].ID)
	assert.False(t, messages[1].CreatedAt.Before(messages[0].CreatedAt))
}

func TestSendMessageUnknownUser(t *testing.T) {
	f := newFriendshipFixture(t, "alice")

	_, err := f.messages.SendMessage(context.Background(), f.users[0].ID, 77, "hello")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
