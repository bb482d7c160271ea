package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCannotFollowSelf = errors.New("you are not allowed to follow yourself")
	ErrNotRequested     = errors.New("user is not following you")
	ErrAlreadyAccepted  = errors.New("follow request already accepted")
	ErrNotFollowing     = errors.New("you are not following the user")
	ErrNoSuggestions    = errors.New("no users to suggest")
)

// AlreadyFollowingError reports a duplicate follow attempt together with the
// state of the existing edge ("following" or "requested").
type AlreadyFollowingError struct {
	Status string
}

func (e *AlreadyFollowingError) Error() string {
	return fmt.Sprintf("you are already followed (%s)", e.Status)
}
