package match

import (
	"time"

	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/guard"
)

// MatchService enforces the match lifecycle: OPEN flips to CLOSED when the
// last slot is taken, any cancellation reopens a CLOSED match, and a recorded
// result moves the match to its terminal COMPLETED state.
type MatchService struct {
	repo MatchRepository
	now  func() time.Time
}

func NewMatchService(repo MatchRepository) *MatchService {
	return &MatchService{repo: repo, now: time.Now}
}

// CreateMatch stores a new match hosted by its creator. The venue must exist.
func (s *MatchService) CreateMatch(m *Match) error {
	exists, err := s.repo.VenueExists(m.VenueID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrVenueNotFound
	}
	if m.Status == "" {
		m.Status = StatusOpen
	}
	return s.repo.CreateMatch(m)
}

// UpdateMatch applies the given mutation after a host check. Completed and
// canceled matches are immutable.
func (s *MatchService) UpdateMatch(matchID, actorID uint, apply func(*Match)) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	if !guard.IsHost(m.HostID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	if m.Status == StatusCompleted || m.Status == StatusCanceled {
		return nil, apperrors.ErrMatchNotOpen
	}
	apply(m)
	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMatch removes a match and its participant rows. Host only; a match
// that has already been played cannot be deleted.
func (s *MatchService) DeleteMatch(matchID, actorID uint) error {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	if m == nil {
		return apperrors.ErrMatchNotFound
	}
	if !guard.IsHost(m.HostID, actorID) {
		return apperrors.ErrForbidden
	}
	if m.IsPast(s.now()) {
		return apperrors.ErrMatchAlreadyPlayed
	}
	return s.repo.DeleteMatch(matchID)
}

// CancelMatch moves the match to its terminal CANCELED state. Host only.
func (s *MatchService) CancelMatch(matchID, actorID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	if !guard.IsHost(m.HostID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	if m.Status != StatusOpen && m.Status != StatusClosed {
		return nil, apperrors.ErrMatchNotOpen
	}
	m.Status = StatusCanceled
	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// JoinMatch registers the user for an open match. The whole operation runs in
// one transaction: the capacity check is repeated after the insert so two
// concurrent joins racing for the last slot cannot both get in, and hitting
// capacity exactly flips the match to CLOSED. A CANCELED row for the same
// pair is reused instead of inserting a duplicate.
func (s *MatchService) JoinMatch(matchID, userID uint) (*MatchParticipant, error) {
	var participant *MatchParticipant
	err := s.repo.WithTransaction(func(tx MatchRepository) error {
		m, err := tx.GetMatchByID(matchID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperrors.ErrMatchNotFound
		}
		// CLOSED means capacity was reached, so the caller sees Full rather
		// than a generic wrong-state error.
		if m.Status == StatusClosed {
			return apperrors.ErrMatchFull
		}
		if m.Status != StatusOpen {
			return apperrors.ErrMatchNotOpen
		}
		if m.IsPast(s.now()) {
			return apperrors.ErrMatchAlreadyPlayed
		}

		existing, err := tx.GetParticipant(matchID, userID)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsActive() {
			return apperrors.ErrAlreadyJoined
		}

		count, err := tx.CountActiveParticipants(matchID)
		if err != nil {
			return err
		}
		if m.IsFull(count) {
			return apperrors.ErrMatchFull
		}

		if existing != nil {
			existing.Status = ParticipantRegistered
			if err := tx.UpdateParticipant(existing); err != nil {
				return err
			}
			participant = existing
		} else {
			participant = &MatchParticipant{
				MatchID: matchID,
				UserID:  userID,
				Status:  ParticipantRegistered,
			}
			if err := tx.CreateParticipant(participant); err != nil {
				return err
			}
		}

		// Recount after the write. Overflow aborts the transaction; landing
		// exactly on capacity closes the match.
		count, err = tx.CountActiveParticipants(matchID)
		if err != nil {
			return err
		}
		if count > int64(m.MaxPlayers) {
			return apperrors.ErrMatchFull
		}
		if count == int64(m.MaxPlayers) {
			m.Status = StatusClosed
			return tx.UpdateMatch(m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// LeaveMatch cancels the user's registration. A CLOSED match reopens on any
// cancellation; past matches are immutable.
func (s *MatchService) LeaveMatch(matchID, userID uint) error {
	return s.repo.WithTransaction(func(tx MatchRepository) error {
		m, err := tx.GetMatchByID(matchID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperrors.ErrMatchNotFound
		}
		if m.IsPast(s.now()) {
			return apperrors.ErrMatchAlreadyPlayed
		}

		participant, err := tx.GetParticipant(matchID, userID)
		if err != nil {
			return err
		}
		if participant == nil || !participant.IsActive() {
			return apperrors.ErrNotJoined
		}

		participant.Status = ParticipantCanceled
		if err := tx.UpdateParticipant(participant); err != nil {
			return err
		}

		if m.Status == StatusClosed {
			m.Status = StatusOpen
			return tx.UpdateMatch(m)
		}
		return nil
	})
}

// RecordResult stores the final score. Host only, only once, and only after
// the match has been played. The result row, the score columns and the
// COMPLETED status are written in one transaction.
func (s *MatchService) RecordResult(matchID, actorID uint, homeScore, awayScore int, mvpID *uint, summary string) (*MatchResult, error) {
	var result *MatchResult
	err := s.repo.WithTransaction(func(tx MatchRepository) error {
		m, err := tx.GetMatchByID(matchID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperrors.ErrMatchNotFound
		}
		if !guard.IsHost(m.HostID, actorID) {
			return apperrors.ErrForbidden
		}

		existing, err := tx.GetResultByMatchID(matchID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.ErrResultAlreadyExists
		}
		if !m.IsPast(s.now()) {
			return apperrors.ErrMatchNotFinished
		}

		result = &MatchResult{
			MatchID:   matchID,
			HomeScore: homeScore,
			AwayScore: awayScore,
			MVPID:     mvpID,
			Summary:   summary,
		}
		if err := tx.CreateResult(result); err != nil {
			return err
		}

		m.Status = StatusCompleted
		m.HomeScore = &result.HomeScore
		m.AwayScore = &result.AwayScore
		return tx.UpdateMatch(m)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetResult returns the recorded result for a match.
func (s *MatchService) GetResult(matchID uint) (*MatchResult, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	result, err := s.repo.GetResultByMatchID(matchID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperrors.ErrResultNotFound
	}
	return result, nil
}

// MarkAttendance lets the host flag a participant ATTENDED or NOSHOW after
// the match has been played.
func (s *MatchService) MarkAttendance(matchID, participantUserID, actorID uint, status ParticipantStatus) (*MatchParticipant, error) {
	if status != ParticipantAttended && status != ParticipantNoShow {
		return nil, apperrors.ErrInvalidParticipantStatus
	}

	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	if !guard.IsHost(m.HostID, actorID) {
		return nil, apperrors.ErrForbidden
	}
	if !m.IsPast(s.now()) {
		return nil, apperrors.ErrMatchNotFinished
	}

	participant, err := s.repo.GetParticipant(matchID, participantUserID)
	if err != nil {
		return nil, err
	}
	if participant == nil || !participant.IsActive() {
		return nil, apperrors.ErrNotJoined
	}

	participant.Status = status
	if err := s.repo.UpdateParticipant(participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// ListParticipants returns every participant row for a match, canceled rows
// included.
func (s *MatchService) ListParticipants(matchID uint) ([]MatchParticipant, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	return s.repo.GetParticipants(matchID)
}
