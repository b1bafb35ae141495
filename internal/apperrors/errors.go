// Package apperrors holds the sentinel errors shared by the domain services
// and the mapping from those errors to HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Not-found errors. Kept per-entity so handlers can name the missing resource.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrMemberNotFound      = errors.New("team member not found")
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrVenueNotFound       = errors.New("venue not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrResultNotFound      = errors.New("match result not found")
	ErrFriendshipNotFound  = errors.New("friend request not found")
)

// Conflict errors: a business rule rejected the write. Never retried.
var (
	ErrAlreadyMember        = errors.New("user is already a member of this team")
	ErrDuplicateJoinRequest = errors.New("a pending join request already exists for this team")
	ErrAlreadyJoined        = errors.New("user has already joined this match")
	ErrMatchFull            = errors.New("match has no available spots")
	ErrResultAlreadyExists  = errors.New("a result has already been recorded for this match")
	ErrReviewAlreadyExists  = errors.New("user has already reviewed this venue")
	ErrEmailTaken           = errors.New("email address is already in use")
	ErrUsernameTaken        = errors.New("username is already in use")
	ErrFriendRequestSent    = errors.New("a pending friend request to this user already exists")
	ErrFriendRequestPending = errors.New("this user has already sent you a pending friend request")
	ErrAlreadyFriends       = errors.New("users are already friends")
)

// State errors: the operation arrived in the wrong lifecycle state.
var (
	ErrMatchNotOpen          = errors.New("match is not open for registration")
	ErrMatchAlreadyPlayed    = errors.New("match has already been played")
	ErrMatchNotFinished      = errors.New("match has not finished yet")
	ErrRequestNotPending     = errors.New("join request is not pending")
	ErrFriendshipNotPending  = errors.New("friend request is not pending")
	ErrFriendshipNotAccepted = errors.New("friendship is not accepted")
)

// Authorization and validation errors.
var (
	ErrForbidden          = errors.New("operation not allowed for the current user")
	ErrOwnerCannotLeave   = errors.New("team owner cannot leave the team; delete the team instead")
	ErrOwnerNotRemovable  = errors.New("team owner cannot be removed from the team")
	ErrNotAMember         = errors.New("user is not a member of this team")
	ErrNotJoined          = errors.New("user has not joined this match")
	ErrNoPendingRequest   = errors.New("no pending join request to cancel")
	ErrSelfFriendRequest  = errors.New("cannot send a friend request to yourself")
	ErrInvalidCredentials = errors.New("invalid login credentials")

	ErrInvalidParticipantStatus = errors.New("participant status must be ATTENDED or NOSHOW")
)

var notFoundErrs = []error{
	ErrUserNotFound, ErrTeamNotFound, ErrMemberNotFound, ErrJoinRequestNotFound,
	ErrMatchNotFound, ErrVenueNotFound, ErrReviewNotFound, ErrResultNotFound,
	ErrFriendshipNotFound,
}

var conflictErrs = []error{
	ErrAlreadyMember, ErrDuplicateJoinRequest, ErrAlreadyJoined, ErrMatchFull,
	ErrResultAlreadyExists, ErrReviewAlreadyExists, ErrEmailTaken, ErrUsernameTaken,
	ErrFriendRequestSent, ErrFriendRequestPending, ErrAlreadyFriends,
}

var stateErrs = []error{
	ErrMatchNotOpen, ErrMatchAlreadyPlayed, ErrMatchNotFinished,
	ErrRequestNotPending, ErrFriendshipNotPending, ErrFriendshipNotAccepted,
	ErrNotAMember, ErrNotJoined, ErrNoPendingRequest,
}

var forbiddenErrs = []error{
	ErrForbidden, ErrOwnerCannotLeave, ErrOwnerNotRemovable,
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// Status maps a service error to an HTTP status code. Unknown errors are
// treated as internal failures so the handlers never leak raw storage errors
// as client faults.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case matchesAny(err, notFoundErrs):
		return http.StatusNotFound
	case matchesAny(err, conflictErrs):
		return http.StatusConflict
	case matchesAny(err, forbiddenErrs):
		return http.StatusForbidden
	case matchesAny(err, stateErrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSelfFriendRequest), errors.Is(err, ErrInvalidParticipantStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
