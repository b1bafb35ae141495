package team

import (
	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/guard"
)

// TeamService enforces the team membership rules: one membership per
// (team, user), one pending join request per pair, owner immutability, and
// owner/self gating on every mutation.
type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

// CreateTeam creates the team and the owner's CAPTAIN membership in one
// transaction; a team without its owner-member row must never be observable.
func (s *TeamService) CreateTeam(t *Team) error {
	return s.repo.WithTransaction(func(tx TeamRepository) error {
		if err := tx.CreateTeam(t); err != nil {
			return err
		}
		owner := &TeamMember{
			TeamID: t.ID,
			UserID: t.OwnerID,
			Role:   RoleCaptain,
		}
		return tx.AddMember(owner)
	})
}

// UpdateTeam applies the given mutation after an owner check.
func (s *TeamService) UpdateTeam(teamID, actorID uint, apply func(*Team)) (*Team, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	apply(t)
	if err := s.repo.UpdateTeam(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTeam removes the team with all memberships and requests. Owner only.
func (s *TeamService) DeleteTeam(teamID, actorID uint) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return apperrors.ErrForbidden
	}
	return s.repo.DeleteTeam(teamID)
}

// RequestJoin creates a PENDING join request for (team, user). Members cannot
// request; a second request while one is pending is a conflict. The partial
// unique index on pending requests settles concurrent duplicates.
func (s *TeamService) RequestJoin(teamID, userID uint, message string, position *Position) (*TeamJoinRequest, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTeamNotFound
	}

	var request *TeamJoinRequest
	err = s.repo.WithTransaction(func(tx TeamRepository) error {
		member, err := tx.GetMember(teamID, userID)
		if err != nil {
			return err
		}
		if member != nil {
			return apperrors.ErrAlreadyMember
		}

		pending, err := tx.GetPendingJoinRequest(teamID, userID)
		if err != nil {
			return err
		}
		if pending != nil {
			return apperrors.ErrDuplicateJoinRequest
		}

		request = &TeamJoinRequest{
			TeamID:   teamID,
			UserID:   userID,
			Message:  message,
			Position: position,
			Status:   RequestPending,
		}
		return tx.CreateJoinRequest(request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// AcceptJoinRequest turns a pending request into a PLAYER membership. Both
// writes happen in one transaction. If the user already became a member
// through another path the request is still marked ACCEPTED and no duplicate
// membership is created.
func (s *TeamService) AcceptJoinRequest(teamID, requestID, actorID uint) (*TeamMember, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return nil, apperrors.ErrForbidden
	}

	var member *TeamMember
	err = s.repo.WithTransaction(func(tx TeamRepository) error {
		request, err := tx.GetJoinRequestByID(requestID)
		if err != nil {
			return err
		}
		if request == nil || request.TeamID != teamID {
			return apperrors.ErrJoinRequestNotFound
		}
		if request.Status != RequestPending {
			return apperrors.ErrRequestNotPending
		}

		existing, err := tx.GetMember(teamID, request.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			member = existing
		} else {
			member = &TeamMember{
				TeamID:   teamID,
				UserID:   request.UserID,
				Role:     RolePlayer,
				Position: request.Position,
			}
			if err := tx.AddMember(member); err != nil {
				return err
			}
		}

		request.Status = RequestAccepted
		return tx.UpdateJoinRequest(request)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RejectJoinRequest marks a pending request REJECTED. Owner only.
func (s *TeamService) RejectJoinRequest(teamID, requestID, actorID uint) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return apperrors.ErrForbidden
	}

	request, err := s.repo.GetJoinRequestByID(requestID)
	if err != nil {
		return err
	}
	if request == nil || request.TeamID != teamID {
		return apperrors.ErrJoinRequestNotFound
	}
	if request.Status != RequestPending {
		return apperrors.ErrRequestNotPending
	}

	request.Status = RequestRejected
	return s.repo.UpdateJoinRequest(request)
}

// CancelJoinRequest deletes the caller's own pending request.
func (s *TeamService) CancelJoinRequest(teamID, userID uint) error {
	pending, err := s.repo.GetPendingJoinRequest(teamID, userID)
	if err != nil {
		return err
	}
	if pending == nil {
		return apperrors.ErrNoPendingRequest
	}
	return s.repo.DeleteJoinRequest(pending.ID)
}

// RemoveMember deletes a membership. Allowed for the team owner or for the
// member themselves; the owner's own membership is irremovable.
func (s *TeamService) RemoveMember(teamID, memberID, actorID uint) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.ErrTeamNotFound
	}

	member, err := s.repo.GetMemberByID(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.TeamID != teamID {
		return apperrors.ErrMemberNotFound
	}

	if !guard.IsOwner(t.OwnerID, actorID) && !guard.IsSelf(member.UserID, actorID) {
		return apperrors.ErrForbidden
	}
	if member.UserID == t.OwnerID {
		return apperrors.ErrOwnerNotRemovable
	}
	return s.repo.DeleteMember(member.ID)
}

// UpdateMemberRole reassigns a member's role. Owner only; no cardinality
// constraint on roles, so several captains are fine.
func (s *TeamService) UpdateMemberRole(teamID, memberID uint, role MemberRole, actorID uint) (*TeamMember, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return nil, apperrors.ErrForbidden
	}

	member, err := s.repo.GetMemberByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.TeamID != teamID {
		return nil, apperrors.ErrMemberNotFound
	}

	member.Role = role
	if err := s.repo.UpdateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// LeaveTeam removes the caller's own membership. The owner cannot leave;
// deleting the team is the only exit for an owner.
func (s *TeamService) LeaveTeam(teamID, userID uint) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.ErrTeamNotFound
	}
	if t.OwnerID == userID {
		return apperrors.ErrOwnerCannotLeave
	}

	member, err := s.repo.GetMember(teamID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperrors.ErrNotAMember
	}
	return s.repo.DeleteMember(member.ID)
}

// ListJoinRequests returns a team's join requests. Owner only.
func (s *TeamService) ListJoinRequests(teamID, actorID uint, status JoinRequestStatus) ([]TeamJoinRequest, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if !guard.IsOwner(t.OwnerID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.GetJoinRequestsByTeam(teamID, status)
}
