package models

import "time"

// Follow represents an Instagram-style follow relationship. The edge is
// directed: FollowerID follows FollowingID, and nothing is implied about the
// reverse pair. IsAccepted stays false while a request to a private account
// awaits approval.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	IsAccepted  bool      `json:"is_accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Follow statuses reported to clients
const (
	StatusFollowing    = "following"
	StatusRequested    = "requested"
	StatusNotFollowing = "not-following"
)

// Status reports the edge state as seen from the follower side.
func (f *Follow) Status() string {
	if f.IsAccepted {
		return StatusFollowing
	}
	return StatusRequested
}
