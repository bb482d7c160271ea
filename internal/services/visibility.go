package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"gorm.io/gorm"
)

// VisibilityService resolves what a given viewer is allowed to see: another
// account's profile, the paginated home feed, and follow suggestions.
type VisibilityService interface {
	Profile(ctx context.Context, viewer *models.User, targetUsername string) (ProfileView, error)
	Feed(ctx context.Context, viewer *models.User, page, size int) (*FeedPage, error)
	Suggestions(ctx context.Context, viewer *models.User) ([]models.UserCompact, error)
}

// ProfileView is one of SelfProfileView, OtherProfileView or
// RestrictedProfileView. Each variant carries a fixed field set instead of
// one shape with conditionally present keys.
type ProfileView interface {
	profileView()
}

// ProfileHeader is the part of a profile every viewer gets
type ProfileHeader struct {
	ID             uint      `json:"id"`
	Fullname       string    `json:"fullname"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio,omitempty"`
	IsPrivate      bool      `json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
	IsYourAccount  bool      `json:"is_your_account"`
	PostsCount     int64     `json:"posts_count"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
}

// ProfilePost is a post entry inside a profile view
type ProfilePost struct {
	ID          uint                    `json:"id"`
	Caption     string                  `json:"caption"`
	CreatedAt   time.Time               `json:"created_at"`
	Attachments []models.PostAttachment `json:"attachments"`
}

// SelfProfileView is the viewer's own public profile. It never carries a
// following status.
type SelfProfileView struct {
	ProfileHeader
	Posts []ProfilePost `json:"posts"`
}

// OtherProfileView is another account whose posts the viewer may see, either
// because the account is public or because the viewer's follow was accepted.
type OtherProfileView struct {
	ProfileHeader
	FollowingStatus string        `json:"following_status"`
	Posts           []ProfilePost `json:"posts"`
}

// RestrictedProfileView is a profile whose post list is withheld: a private
// account the viewer does not follow with an accepted edge. The viewer's own
// private profile also resolves to this variant, without a following status.
type RestrictedProfileView struct {
	ProfileHeader
	FollowingStatus string `json:"following_status,omitempty"`
}

func (SelfProfileView) profileView()       {}
func (OtherProfileView) profileView()      {}
func (RestrictedProfileView) profileView() {}

// FeedPost is a feed entry with a denormalized owner snapshot
type FeedPost struct {
	ID          uint                    `json:"id"`
	Caption     string                  `json:"caption"`
	CreatedAt   time.Time               `json:"created_at"`
	User        models.UserCompact      `json:"user"`
	Attachments []models.PostAttachment `json:"attachments"`
}

// FeedPage is one page of the viewer's home feed
type FeedPage struct {
	MaxPages int        `json:"maxPages"`
	Page     int        `json:"page"`
	Size     int        `json:"size"`
	Posts    []FeedPost `json:"posts"`
}

type visibilityService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	postRepo   repositories.PostRepository
}

// NewVisibilityService creates a new VisibilityService
func NewVisibilityService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
) VisibilityService {
	return &visibilityService{userRepo: userRepo, followRepo: followRepo, postRepo: postRepo}
}

// Profile resolves the view of targetUsername's profile as seen by viewer.
// The post list is included only when the target is public or the viewer's
// edge towards the target is accepted; that rule applies to self-views too.
func (s *visibilityService) Profile(ctx context.Context, viewer *models.User, targetUsername string) (ProfileView, error) {
	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	header, err := s.buildHeader(ctx, viewer, target)
	if err != nil {
		return nil, err
	}

	var relation *models.Follow
	if viewer.ID != target.ID {
		relation, err = s.followRepo.GetFollow(ctx, viewer.ID, target.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	postsVisible := !target.IsPrivate || (relation != nil && relation.IsAccepted)

	if viewer.ID == target.ID {
		if !postsVisible {
			return RestrictedProfileView{ProfileHeader: header}, nil
		}
		posts, err := s.profilePosts(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		return SelfProfileView{ProfileHeader: header, Posts: posts}, nil
	}

	status := models.StatusNotFollowing
	if relation != nil {
		status = relation.Status()
	}
	if !postsVisible {
		return RestrictedProfileView{ProfileHeader: header, FollowingStatus: status}, nil
	}
	posts, err := s.profilePosts(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	return OtherProfileView{ProfileHeader: header, FollowingStatus: status, Posts: posts}, nil
}

func (s *visibilityService) buildHeader(ctx context.Context, viewer, target *models.User) (ProfileHeader, error) {
	postsCount, err := s.postRepo.CountByUser(ctx, target.ID)
	if err != nil {
		return ProfileHeader{}, err
	}
	followersCount, err := s.followRepo.GetFollowersCount(ctx, target.ID)
	if err != nil {
		return ProfileHeader{}, err
	}
	followingCount, err := s.followRepo.GetFollowingCount(ctx, target.ID)
	if err != nil {
		return ProfileHeader{}, err
	}
	return ProfileHeader{
		ID:             target.ID,
		Fullname:       target.Fullname,
		Username:       target.Username,
		Bio:            target.Bio,
		IsPrivate:      target.IsPrivate,
		CreatedAt:      target.CreatedAt,
		IsYourAccount:  viewer.ID == target.ID,
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}, nil
}

func (s *visibilityService) profilePosts(ctx context.Context, userID uint) ([]ProfilePost, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]ProfilePost, len(posts))
	for i, p := range posts {
		result[i] = ProfilePost{
			ID:          p.ID,
			Caption:     p.Caption,
			CreatedAt:   p.CreatedAt,
			Attachments: p.Attachments,
		}
	}
	return result, nil
}

// Feed returns page (zero-indexed) of the posts visible to viewer: their own
// posts plus posts of accounts they follow with an accepted edge, ordered by
// post id descending.
//
// MaxPages is computed against the unfiltered total post count, matching the
// observed upstream behavior even though the page content is viewer-filtered.
func (s *visibilityService) Feed(ctx context.Context, viewer *models.User, page, size int) (*FeedPage, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	totalRows, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListVisible(ctx, viewer.ID, page*size, size)
	if err != nil {
		return nil, err
	}

	entries := make([]FeedPost, len(posts))
	for i, p := range posts {
		entries[i] = FeedPost{
			ID:          p.ID,
			Caption:     p.Caption,
			CreatedAt:   p.CreatedAt,
			User:        p.User.ToCompact(),
			Attachments: p.Attachments,
		}
	}

	return &FeedPage{
		MaxPages: int(math.Ceil(float64(totalRows) / float64(size))),
		Page:     page,
		Size:     size,
		Posts:    entries,
	}, nil
}

// Suggestions returns every account the viewer never followed or requested.
// An empty result set is reported as ErrNoSuggestions, matching the upstream
// contract of a 404 rather than an empty list.
func (s *visibilityService) Suggestions(ctx context.Context, viewer *models.User) ([]models.UserCompact, error) {
	users, err := s.userRepo.ListNotFollowed(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoSuggestions
	}
	result := make([]models.UserCompact, len(users))
	for i := range users {
		result[i] = users[i].ToCompact()
	}
	return result, nil
}
