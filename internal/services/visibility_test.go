package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
)

func newVisibilityService(db *gorm.DB) VisibilityService {
	return NewVisibilityService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresPostRepository(db),
	)
}

func seedPost(t *testing.T, db *gorm.DB, owner *models.User, caption string, attachments ...string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: owner.ID, Caption: caption}
	for _, path := range attachments {
		post.Attachments = append(post.Attachments, models.PostAttachment{StoragePath: path})
	}
	require.NoError(t, db.Create(post).Error, "seed post")
	return post
}

func TestProfileOfPublicAccountIncludesPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	seedPost(t, db, alice, "hello", "http://store/post/1.jpg")

	view, err := svc.Profile(context.Background(), bob, "alice")
	require.NoError(t, err)

	other, ok := view.(OtherProfileView)
	require.True(t, ok, "expected OtherProfileView, got %T", view)
	assert.Equal(t, models.StatusNotFollowing, other.FollowingStatus)
	assert.False(t, other.IsYourAccount)
	require.Len(t, other.Posts, 1)
	assert.Equal(t, "hello", other.Posts[0].Caption)
	require.Len(t, other.Posts[0].Attachments, 1)
	assert.Equal(t, "http://store/post/1.jpg", other.Posts[0].Attachments[0].StoragePath)
}

func TestProfileOfPrivateAccountWithholdsPosts(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", false)
	seedPost(t, db, alice, "secret")

	// No edge at all
	view, err := svc.Profile(context.Background(), bob, "alice")
	require.NoError(t, err)
	restricted, ok := view.(RestrictedProfileView)
	require.True(t, ok, "expected RestrictedProfileView, got %T", view)
	assert.Equal(t, models.StatusNotFollowing, restricted.FollowingStatus)
	assert.EqualValues(t, 1, restricted.PostsCount)

	// Pending request still withholds posts
	_, err = relSvc.Follow(context.Background(), bob, "alice")
	require.NoError(t, err)
	view, err = svc.Profile(context.Background(), bob, "alice")
	require.NoError(t, err)
	restricted, ok = view.(RestrictedProfileView)
	require.True(t, ok, "expected RestrictedProfileView, got %T", view)
	assert.Equal(t, models.StatusRequested, restricted.FollowingStatus)

	// Accepted edge reveals them
	require.NoError(t, relSvc.Accept(context.Background(), alice, "bob"))
	view, err = svc.Profile(context.Background(), bob, "alice")
	require.NoError(t, err)
	other, ok := view.(OtherProfileView)
	require.True(t, ok, "expected OtherProfileView, got %T", view)
	assert.Equal(t, models.StatusFollowing, other.FollowingStatus)
	require.Len(t, other.Posts, 1)
}

func TestProfileSelfViewHasNoFollowingStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	seedPost(t, db, alice, "mine")

	view, err := svc.Profile(context.Background(), alice, "alice")
	require.NoError(t, err)
	self, ok := view.(SelfProfileView)
	require.True(t, ok, "expected SelfProfileView, got %T", view)
	assert.True(t, self.IsYourAccount)
	require.Len(t, self.Posts, 1)
}

func TestProfilePrivateSelfViewWithholdsPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", true)
	seedPost(t, db, alice, "mine")

	// A private account with no accepted viewer edge never exposes the post
	// list, even to its owner.
	view, err := svc.Profile(context.Background(), alice, "alice")
	require.NoError(t, err)
	restricted, ok := view.(RestrictedProfileView)
	require.True(t, ok, "expected RestrictedProfileView, got %T", view)
	assert.True(t, restricted.IsYourAccount)
	assert.Empty(t, restricted.FollowingStatus)
}

func TestProfileCountsIncludePendingFollowers(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", false)
	carol := seedUser(t, db, "carol", false)

	_, err := relSvc.Follow(context.Background(), bob, "alice")
	require.NoError(t, err)
	_, err = relSvc.Follow(context.Background(), carol, "alice")
	require.NoError(t, err)

	view, err := svc.Profile(context.Background(), bob, "alice")
	require.NoError(t, err)
	restricted := view.(RestrictedProfileView)
	assert.EqualValues(t, 2, restricted.FollowersCount)
	assert.EqualValues(t, 0, restricted.FollowingCount)
}

func TestProfileUnknownUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)

	_, err := svc.Profile(context.Background(), alice, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFeedOnlyContainsOwnAndAcceptedPosts(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	priya := seedUser(t, db, "priya", true)
	dave := seedUser(t, db, "dave", false)

	seedPost(t, db, alice, "from alice")
	seedPost(t, db, priya, "from priya")
	seedPost(t, db, dave, "from dave")
	seedPost(t, db, bob, "from bob")

	// bob follows alice (accepted) and priya (pending); never dave
	_, err := relSvc.Follow(context.Background(), bob, "alice")
	require.NoError(t, err)
	_, err = relSvc.Follow(context.Background(), bob, "priya")
	require.NoError(t, err)

	feed, err := svc.Feed(context.Background(), bob, 0, 10)
	require.NoError(t, err)

	captions := make([]string, len(feed.Posts))
	for i, p := range feed.Posts {
		captions[i] = p.Caption
	}
	assert.Equal(t, []string{"from bob", "from alice"}, captions, "newest first, pending and unfollowed owners excluded")
	assert.Equal(t, "alice", feed.Posts[1].User.Username)
}

func TestFeedPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	for i := 0; i < 5; i++ {
		seedPost(t, db, alice, fmt.Sprintf("post %d", i))
	}

	page0, err := svc.Feed(context.Background(), alice, 0, 2)
	require.NoError(t, err)
	require.Len(t, page0.Posts, 2)
	assert.Equal(t, "post 4", page0.Posts[0].Caption)
	assert.Equal(t, "post 3", page0.Posts[1].Caption)

	page1, err := svc.Feed(context.Background(), alice, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1.Posts, 2)
	assert.Equal(t, "post 2", page1.Posts[0].Caption)

	page2, err := svc.Feed(context.Background(), alice, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 1)

	// Pages are strictly descending by id across the whole sequence
	assert.Greater(t, page1.Posts[1].ID, page2.Posts[0].ID)
}

func TestFeedMaxPagesUsesUnfilteredTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	dave := seedUser(t, db, "dave", false)

	seedPost(t, db, alice, "visible")
	for i := 0; i < 7; i++ {
		seedPost(t, db, dave, fmt.Sprintf("invisible %d", i))
	}

	// alice sees only her single post, but maxPages is computed from all 8
	// rows: ceil(8/3) = 3. Kept bug-compatible with the upstream behavior.
	feed, err := svc.Feed(context.Background(), alice, 0, 3)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 1)
	assert.Equal(t, 3, feed.MaxPages)
}

func TestFeedExcludesSoftDeletedPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := newVisibilityService(db)
	alice := seedUser(t, db, "alice", false)
	keep := seedPost(t, db, alice, "keep")
	gone := seedPost(t, db, alice, "gone")

	require.NoError(t, db.Delete(&models.Post{}, gone.ID).Error)

	feed, err := svc.Feed(context.Background(), alice, 0, 10)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, keep.ID, feed.Posts[0].ID)
	assert.Equal(t, 1, feed.MaxPages)
}

func TestSuggestionsExcludeFollowedAndRequested(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	bob := seedUser(t, db, "bob", false)
	seedUser(t, db, "alice", false)
	seedUser(t, db, "priya", true)
	seedUser(t, db, "dave", false)

	_, err := relSvc.Follow(context.Background(), bob, "alice")
	require.NoError(t, err)
	_, err = relSvc.Follow(context.Background(), bob, "priya")
	require.NoError(t, err)

	users, err := svc.Suggestions(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "dave", users[0].Username)
}

func TestSuggestionsEmptyResultIsAnError(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	bob := seedUser(t, db, "bob", false)
	seedUser(t, db, "alice", false)

	_, err := relSvc.Follow(context.Background(), bob, "alice")
	require.NoError(t, err)

	_, err = svc.Suggestions(context.Background(), bob)
	assert.ErrorIs(t, err, ErrNoSuggestions)
}

// Exercises the full public/private lifecycle: bob follows public alice and
// sees her post immediately; alice then goes private and carol's request
// keeps alice's posts out of carol's feed until accepted.
func TestFollowFeedLifecycle(t *testing.T) {
	db := setupTestDB(t)
	relSvc := newRelationshipService(db)
	svc := newVisibilityService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)

	status, err := relSvc.Follow(ctx, bob, "alice")
	require.NoError(t, err)
	require.Equal(t, models.StatusFollowing, status)

	seedPost(t, db, alice, "alice's day", "http://store/post/alice-1.jpg")

	feed, err := svc.Feed(ctx, bob, 0, 10)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "alice's day", feed.Posts[0].Caption)
	require.Len(t, feed.Posts[0].Attachments, 1)

	// alice flips private; carol's follow becomes a pending request
	require.NoError(t, db.Model(alice).Update("is_private", true).Error)
	alice.IsPrivate = true
	carol := seedUser(t, db, "carol", false)

	status, err = relSvc.Follow(ctx, carol, "alice")
	require.NoError(t, err)
	require.Equal(t, models.StatusRequested, status)

	feed, err = svc.Feed(ctx, carol, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)

	require.NoError(t, relSvc.Accept(ctx, alice, "carol"))

	feed, err = svc.Feed(ctx, carol, 0, 10)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "alice's day", feed.Posts[0].Caption)
}
