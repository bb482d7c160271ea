package services

import (
	"context"
	"errors"

	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"gorm.io/gorm"
)

// RelationshipService owns the lifecycle of directed follow edges: creation,
// acceptance by the edge's target, and deletion by the edge's follower.
type RelationshipService interface {
	Follow(ctx context.Context, actor *models.User, targetUsername string) (string, error)
	Accept(ctx context.Context, actor *models.User, requesterUsername string) error
	Unfollow(ctx context.Context, actor *models.User, targetUsername string) error
}

type relationshipService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) RelationshipService {
	return &relationshipService{userRepo: userRepo, followRepo: followRepo}
}

// Follow creates the edge (actor -> target). The edge is accepted immediately
// when the target account is public, otherwise it stays a pending request
// until the target accepts it. The returned status is "following" or
// "requested" accordingly.
func (s *relationshipService) Follow(ctx context.Context, actor *models.User, targetUsername string) (string, error) {
	if targetUsername == actor.Username {
		return "", ErrCannotFollowSelf
	}

	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	existing, err := s.followRepo.GetFollow(ctx, actor.ID, target.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if existing != nil {
		return "", &AlreadyFollowingError{Status: existing.Status()}
	}

	follow := &models.Follow{
		FollowerID:  actor.ID,
		FollowingID: target.ID,
		IsAccepted:  !target.IsPrivate,
	}
	if err := s.followRepo.CreateFollow(ctx, follow); err != nil {
		return "", err
	}
	return follow.Status(), nil
}

// Accept marks the pending edge (requester -> actor) as accepted. Only the
// edge's target may accept it, and only that edge changes.
func (s *relationshipService) Accept(ctx context.Context, actor *models.User, requesterUsername string) error {
	requester, err := s.userRepo.GetUserByUsername(ctx, requesterUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	follow, err := s.followRepo.GetFollow(ctx, requester.ID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRequested
		}
		return err
	}
	if follow.IsAccepted {
		return ErrAlreadyAccepted
	}

	return s.followRepo.AcceptFollow(ctx, requester.ID, actor.ID)
}

// Unfollow deletes the edge (actor -> target). The reverse edge, if any, is
// left untouched.
func (s *relationshipService) Unfollow(ctx context.Context, actor *models.User, targetUsername string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if _, err := s.followRepo.GetFollow(ctx, actor.ID, target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFollowing
		}
		return err
	}

	return s.followRepo.DeleteFollow(ctx, actor.ID, target.ID)
}
