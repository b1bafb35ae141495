package friend

import (
	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/guard"
)

// FriendService enforces the friendship rules: no self requests, no pending
// request in either direction at once, recipient-only acceptance.
type FriendService struct {
	repo FriendRepository
}

func NewFriendService(repo FriendRepository) *FriendService {
	return &FriendService{repo: repo}
}

// SendRequest creates a PENDING friendship from one user to another. A
// rejected row for the same pair is reused so the unique pair constraint does
// not block a retry forever.
func (s *FriendService) SendRequest(fromUserID, toUserID uint) (*Friendship, error) {
	if guard.IsSelf(fromUserID, toUserID) {
		return nil, apperrors.ErrSelfFriendRequest
	}

	exists, err := s.repo.UserExists(toUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	accepted, err := s.repo.GetAcceptedBetween(fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if accepted != nil {
		return nil, apperrors.ErrAlreadyFriends
	}

	forward, err := s.repo.GetByPair(fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if forward != nil && forward.Status == FriendshipPending {
		return nil, apperrors.ErrFriendRequestSent
	}

	reverse, err := s.repo.GetByPair(toUserID, fromUserID)
	if err != nil {
		return nil, err
	}
	if reverse != nil && reverse.Status == FriendshipPending {
		return nil, apperrors.ErrFriendRequestPending
	}

	if forward != nil {
		forward.Status = FriendshipPending
		if err := s.repo.Update(forward); err != nil {
			return nil, err
		}
		return forward, nil
	}

	f := &Friendship{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     FriendshipPending,
	}
	if err := s.repo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AcceptRequest moves a pending request to ACCEPTED. Recipient only.
func (s *FriendService) AcceptRequest(requestID, actorID uint) (*Friendship, error) {
	f, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperrors.ErrFriendshipNotFound
	}
	if !guard.IsSelf(f.ToUserID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	if f.Status != FriendshipPending {
		return nil, apperrors.ErrFriendshipNotPending
	}

	f.Status = FriendshipAccepted
	if err := s.repo.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// RejectRequest moves a pending request to REJECTED. Recipient only.
func (s *FriendService) RejectRequest(requestID, actorID uint) (*Friendship, error) {
	f, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperrors.ErrFriendshipNotFound
	}
	if !guard.IsSelf(f.ToUserID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	if f.Status != FriendshipPending {
		return nil, apperrors.ErrFriendshipNotPending
	}

	f.Status = FriendshipRejected
	if err := s.repo.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CancelRequest deletes the caller's own pending outgoing request.
func (s *FriendService) CancelRequest(requestID, actorID uint) error {
	f, err := s.repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if f == nil {
		return apperrors.ErrFriendshipNotFound
	}
	if !guard.IsSelf(f.FromUserID, actorID) {
		return apperrors.ErrForbidden
	}
	if f.Status != FriendshipPending {
		return apperrors.ErrFriendshipNotPending
	}
	return s.repo.Delete(f.ID)
}

// DeleteFriendship removes an accepted friendship. Either party may do it.
func (s *FriendService) DeleteFriendship(friendshipID, actorID uint) error {
	f, err := s.repo.GetByID(friendshipID)
	if err != nil {
		return err
	}
	if f == nil {
		return apperrors.ErrFriendshipNotFound
	}
	if !f.Involves(actorID) {
		return apperrors.ErrForbidden
	}
	if f.Status != FriendshipAccepted {
		return apperrors.ErrFriendshipNotAccepted
	}
	return s.repo.Delete(f.ID)
}

// ListFriends returns the user's accepted friendships.
func (s *FriendService) ListFriends(userID uint) ([]Friendship, error) {
	return s.repo.ListFriends(userID)
}

// ListIncoming returns pending requests addressed to the user.
func (s *FriendService) ListIncoming(userID uint) ([]Friendship, error) {
	return s.repo.ListIncoming(userID)
}

// ListOutgoing returns pending requests sent by the user.
func (s *FriendService) ListOutgoing(userID uint) ([]Friendship, error) {
	return s.repo.ListOutgoing(userID)
}
