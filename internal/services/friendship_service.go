package services

import (
	"context"
	"fmt"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FriendshipService owns the follow request → friendship lifecycle. Every mutating
// operation runs in a single store transaction.
type FriendshipService struct {
	store repositories.Store
	log   *zap.Logger
}

func NewFriendshipService(store repositories.Store, log *zap.Logger) *FriendshipService {
	return &FriendshipService{store: store, log: log.Named("friendship")}
}

// SendRequest creates the senderID → receiverID follow edge and notifies the receiver.
// Both users must exist.
func (s *FriendshipService) SendRequest(ctx context.Context, senderID, receiverID uint) (*models.Follower, error) {
	if senderID == receiverID {
		return nil, errors.WithMessage(ErrInvalidOperation, "cannot friend yourself")
	}

	var follower *models.Follower
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		for _, id := range []uint{senderID, receiverID} {
			exists, err := tx.Users().ExistsByID(ctx, id)
			if err != nil {
				return errors.Wrap(err, "failed to look up user")
			}
			if !exists {
				return errors.WithMessagef(ErrUserNotFound, "user %d", id)
			}
		}

		exists, err := tx.Followers().ExistsBySenderReceiver(ctx, senderID, receiverID)
		if err != nil {
			return errors.Wrap(err, "failed to check existing request")
		}
		if exists {
			return ErrDuplicateRequest
		}

		follower = &models.Follower{SenderID: senderID, ReceiverID: receiverID}
		if err := tx.Followers().CreateFollower(ctx, follower); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRequest
			}
			return errors.Wrap(err, "failed to create friend request")
		}

		err = tx.Notifications().CreateNotification(ctx, &models.Notification{
			Type:        models.NotificationFriendRequest,
			ActorID:     senderID,
			RecipientID: receiverID,
			TargetID:    follower.ID,
			TargetType:  "follower",
			Message:     "sent you a friend request",
		})
		return errors.Wrap(err, "failed to create notification")
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("friend request sent", zap.Uint("sender", senderID), zap.Uint("receiver", receiverID))
	return follower, nil
}

// AcceptRequest turns request requestID into a friendship. Only the receiver of the
// request may accept it. The request row is kept as the sender's follow edge and the
// reciprocal edge is created when missing.
func (s *FriendshipService) AcceptRequest(ctx context.Context, actorID, requestID uint) (*models.Friendship, error) {
	var friendship *models.Friendship
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		request, err := tx.Followers().GetFollowerByID(ctx, requestID)
		if err != nil {
			return notFound(err, ErrRequestNotFound, "failed to load friend request")
		}
		if request.ReceiverID != actorID {
			return errors.WithMessage(ErrForbidden, "only the receiver can accept a friend request")
		}

		senderID, receiverID := request.SenderID, request.ReceiverID
		exists, err := tx.Friendships().ExistsBetween(ctx, senderID, receiverID)
		if err != nil {
			return errors.Wrap(err, "failed to check existing friendship")
		}
		if exists {
			return ErrDuplicateFriendship
		}

		friendship = &models.Friendship{UserOneID: senderID, UserTwoID: receiverID}
		if err := tx.Friendships().CreateFriendship(ctx, friendship); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateFriendship
			}
			return errors.Wrap(err, "failed to create friendship")
		}

		reciprocal, err := tx.Followers().ExistsBySenderReceiver(ctx, receiverID, senderID)
		if err != nil {
			return errors.Wrap(err, "failed to check reciprocal follow")
		}
		if !reciprocal {
			err = tx.Followers().CreateFollower(ctx, &models.Follower{SenderID: receiverID, ReceiverID: senderID})
			if err != nil {
				return errors.Wrap(err, "failed to create reciprocal follow")
			}
		}

		err = tx.Notifications().CreateNotification(ctx, &models.Notification{
			Type:        models.NotificationFriendAccept,
			ActorID:     receiverID,
			RecipientID: senderID,
			TargetID:    friendship.ID,
			TargetType:  "friendship",
			Message:     "accepted your friend request",
		})
		return errors.Wrap(err, "failed to create notification")
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("friend request accepted", zap.Uint("request", requestID), zap.Uint("friendship", friendship.ID))
	return friendship, nil
}

// RemoveFriendship deletes the friendship between removerID and deletedID along with the
// remover's follow edge. The deleted user's edge towards the remover is left in place.
func (s *FriendshipService) RemoveFriendship(ctx context.Context, removerID, deletedID uint) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		friendship, err := tx.Friendships().GetByUsers(ctx, removerID, deletedID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			friendship, err = tx.Friendships().GetByUsers(ctx, deletedID, removerID)
		}
		if err != nil {
			return notFound(err, ErrFriendshipNotFound, "failed to load friendship")
		}

		if err := tx.Friendships().DeleteFriendship(ctx, friendship.ID); err != nil {
			return errors.Wrap(err, "failed to delete friendship")
		}
		if err := tx.Followers().DeleteBySenderReceiver(ctx, removerID, deletedID); err != nil {
			return errors.Wrap(err, "failed to delete follow edge")
		}
		return nil
	})
}

// RemoveFollow deletes a single follow edge. Either end of the edge may remove it;
// friendships are not touched.
func (s *FriendshipService) RemoveFollow(ctx context.Context, actorID, followID uint) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		follower, err := tx.Followers().GetFollowerByID(ctx, followID)
		if err != nil {
			return notFound(err, ErrFollowNotFound, "failed to load follow")
		}
		if follower.SenderID != actorID && follower.ReceiverID != actorID {
			return errors.WithMessage(ErrForbidden, fmt.Sprintf("follow %d does not involve user %d", followID, actorID))
		}
		if err := tx.Followers().DeleteFollower(ctx, follower.ID); err != nil {
			return errors.Wrap(err, "failed to delete follow")
		}
		return nil
	})
}

// ListFriendships returns every friendship userID is part of, ordered by id.
func (s *FriendshipService) ListFriendships(ctx context.Context, userID uint) ([]models.Friendship, error) {
	friendships, err := s.store.Friendships().GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list friendships")
	}
	return friendships, nil
}

// ListFollowers returns the follow edges pointing at userID.
func (s *FriendshipService) ListFollowers(ctx context.Context, userID uint) ([]models.Follower, error) {
	followers, err := s.store.Followers().GetByReceiverID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followers")
	}
	return followers, nil
}

// ListFollowing returns the follow edges sent by userID.
func (s *FriendshipService) ListFollowing(ctx context.Context, userID uint) ([]models.Follower, error) {
	following, err := s.store.Followers().GetBySenderID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list following")
	}
	return following, nil
}

// FriendIDs returns the ids of userID's friends in friendship order, without userID and
// without repeats.
func (s *FriendshipService) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	friendships, err := s.ListFriendships(ctx, userID)
	if err != nil {
		return nil, err
	}
	return friendIDs(userID, friendships), nil
}

func friendIDs(userID uint, friendships []models.Friendship) []uint {
	seen := make(map[uint]struct{}, len(friendships))
	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		id := f.Other(userID)
		if id == userID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
