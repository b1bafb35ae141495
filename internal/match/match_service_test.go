package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woorifc/kickmate/internal/apperrors"
)

// fakeMatchRepo is an in-memory MatchRepository for service tests.
type fakeMatchRepo struct {
	matches      map[uint]*Match
	participants map[uint]*MatchParticipant
	results      map[uint]*MatchResult
	nextID       uint
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches:      make(map[uint]*Match),
		participants: make(map[uint]*MatchParticipant),
		results:      make(map[uint]*MatchResult),
		nextID:       1,
	}
}

func (f *fakeMatchRepo) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeMatchRepo) CreateMatch(m *Match) error {
	m.ID = f.id()
	copied := *m
	f.matches[m.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) GetMatchByID(id uint) (*Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) GetAllMatches(page, limit int, filters map[string]interface{}) ([]Match, int64, error) {
	var out []Match
	for _, m := range f.matches {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMatchRepo) UpdateMatch(m *Match) error {
	copied := *m
	f.matches[m.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) DeleteMatch(id uint) error {
	delete(f.matches, id)
	for pid, p := range f.participants {
		if p.MatchID == id {
			delete(f.participants, pid)
		}
	}
	return nil
}

func (f *fakeMatchRepo) GetMatchesByHostID(hostID uint, page, limit int) ([]Match, int64, error) {
	var out []Match
	for _, m := range f.matches {
		if m.HostID == hostID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMatchRepo) GetMatchesByParticipant(userID uint, page, limit int) ([]Match, int64, error) {
	var out []Match
	for _, p := range f.participants {
		if p.UserID == userID && p.Status != ParticipantCanceled {
			if m, ok := f.matches[p.MatchID]; ok {
				out = append(out, *m)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMatchRepo) VenueExists(venueID uint) (bool, error) {
	return venueID != 0, nil
}

func (f *fakeMatchRepo) CreateParticipant(p *MatchParticipant) error {
	p.ID = f.id()
	copied := *p
	f.participants[p.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) GetParticipant(matchID, userID uint) (*MatchParticipant, error) {
	for _, p := range f.participants {
		if p.MatchID == matchID && p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchRepo) GetParticipants(matchID uint) ([]MatchParticipant, error) {
	var out []MatchParticipant
	for _, p := range f.participants {
		if p.MatchID == matchID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateParticipant(p *MatchParticipant) error {
	copied := *p
	f.participants[p.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) CountActiveParticipants(matchID uint) (int64, error) {
	var count int64
	for _, p := range f.participants {
		if p.MatchID == matchID && p.Status != ParticipantCanceled {
			count++
		}
	}
	return count, nil
}

func (f *fakeMatchRepo) CreateResult(r *MatchResult) error {
	r.ID = f.id()
	copied := *r
	f.results[r.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) GetResultByMatchID(matchID uint) (*MatchResult, error) {
	for _, r := range f.results {
		if r.MatchID == matchID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchRepo) WithTransaction(txFunc func(MatchRepository) error) error {
	return txFunc(f)
}

// --- helpers ---

const (
	hostID = uint(10)
	userA  = uint(20)
	userB  = uint(21)
	userC  = uint(22)
)

var testClock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMatchFixture(t *testing.T, maxPlayers int) (*MatchService, *fakeMatchRepo, *Match) {
	t.Helper()
	repo := newFakeMatchRepo()
	service := NewMatchService(repo)
	service.now = func() time.Time { return testClock }

	m := &Match{
		Title:      "Saturday pickup",
		VenueID:    1,
		Date:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:  "19:00",
		EndTime:    "21:00",
		MaxPlayers: maxPlayers,
		HostID:     hostID,
	}
	require.NoError(t, service.CreateMatch(m))
	return service, repo, m
}

func pastClock(service *MatchService, m *Match) {
	after := m.EndsAt().Add(time.Minute)
	service.now = func() time.Time { return after }
}

// --- tests ---

func TestCreateMatchDefaultsToOpen(t *testing.T) {
	_, _, m := newMatchFixture(t, 10)
	assert.Equal(t, StatusOpen, m.Status)
}

func TestCreateMatchRequiresVenue(t *testing.T) {
	service := NewMatchService(newFakeMatchRepo())

	m := &Match{Title: "no ground", VenueID: 0, MaxPlayers: 10, HostID: hostID}
	assert.ErrorIs(t, service.CreateMatch(m), apperrors.ErrVenueNotFound)
}

func TestJoinMatch(t *testing.T) {
	t.Run("registers a participant", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		p, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		assert.Equal(t, ParticipantRegistered, p.Status)
	})

	t.Run("rejects unknown match", func(t *testing.T) {
		service, _, _ := newMatchFixture(t, 10)

		_, err := service.JoinMatch(9999, userA)
		assert.ErrorIs(t, err, apperrors.ErrMatchNotFound)
	})

	t.Run("rejects double join", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)

		_, err = service.JoinMatch(m.ID, userA)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
	})

	t.Run("rejects past match", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		pastClock(service, m)

		_, err := service.JoinMatch(m.ID, userA)
		assert.ErrorIs(t, err, apperrors.ErrMatchAlreadyPlayed)
	})

	t.Run("rejects canceled match", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		_, err := service.CancelMatch(m.ID, hostID)
		require.NoError(t, err)

		_, err = service.JoinMatch(m.ID, userA)
		assert.ErrorIs(t, err, apperrors.ErrMatchNotOpen)
	})

	t.Run("filling the last slot closes the match", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 2)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		stored, _ := repo.GetMatchByID(m.ID)
		assert.Equal(t, StatusOpen, stored.Status)

		_, err = service.JoinMatch(m.ID, userB)
		require.NoError(t, err)
		stored, _ = repo.GetMatchByID(m.ID)
		assert.Equal(t, StatusClosed, stored.Status)
	})

	t.Run("full match rejects further joins", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 1)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)

		_, err = service.JoinMatch(m.ID, userB)
		assert.ErrorIs(t, err, apperrors.ErrMatchFull)
	})

	t.Run("rejoining after cancellation reuses the row", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 10)

		first, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		require.NoError(t, service.LeaveMatch(m.ID, userA))

		second, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, ParticipantRegistered, second.Status)

		rows, err := repo.GetParticipants(m.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestLeaveMatch(t *testing.T) {
	t.Run("cancels the registration", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 10)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		require.NoError(t, service.LeaveMatch(m.ID, userA))

		p, err := repo.GetParticipant(m.ID, userA)
		require.NoError(t, err)
		assert.Equal(t, ParticipantCanceled, p.Status)
	})

	t.Run("fails when not joined", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		assert.ErrorIs(t, service.LeaveMatch(m.ID, userA), apperrors.ErrNotJoined)
	})

	t.Run("fails after cancellation already applied", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		require.NoError(t, service.LeaveMatch(m.ID, userA))

		assert.ErrorIs(t, service.LeaveMatch(m.ID, userA), apperrors.ErrNotJoined)
	})

	t.Run("fails on past match", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		pastClock(service, m)

		assert.ErrorIs(t, service.LeaveMatch(m.ID, userA), apperrors.ErrMatchAlreadyPlayed)
	})

	t.Run("reopens a closed match", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 1)

		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		stored, _ := repo.GetMatchByID(m.ID)
		require.Equal(t, StatusClosed, stored.Status)

		require.NoError(t, service.LeaveMatch(m.ID, userA))
		stored, _ = repo.GetMatchByID(m.ID)
		assert.Equal(t, StatusOpen, stored.Status)
	})
}

// Single-slot churn: join closes, leave reopens, the next user gets the slot.
func TestSingleSlotLifecycle(t *testing.T) {
	service, repo, m := newMatchFixture(t, 1)

	_, err := service.JoinMatch(m.ID, userA)
	require.NoError(t, err)
	stored, _ := repo.GetMatchByID(m.ID)
	require.Equal(t, StatusClosed, stored.Status)

	_, err = service.JoinMatch(m.ID, userB)
	require.Error(t, err)

	require.NoError(t, service.LeaveMatch(m.ID, userA))
	stored, _ = repo.GetMatchByID(m.ID)
	require.Equal(t, StatusOpen, stored.Status)

	_, err = service.JoinMatch(m.ID, userB)
	require.NoError(t, err)
	stored, _ = repo.GetMatchByID(m.ID)
	assert.Equal(t, StatusClosed, stored.Status)
}

func TestRecordResult(t *testing.T) {
	t.Run("host records once after the match", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 10)
		pastClock(service, m)

		result, err := service.RecordResult(m.ID, hostID, 3, 2, nil, "tight one")
		require.NoError(t, err)
		assert.Equal(t, 3, result.HomeScore)
		assert.Equal(t, 2, result.AwayScore)

		stored, _ := repo.GetMatchByID(m.ID)
		assert.Equal(t, StatusCompleted, stored.Status)
		require.NotNil(t, stored.HomeScore)
		assert.Equal(t, 3, *stored.HomeScore)
		require.NotNil(t, stored.AwayScore)
		assert.Equal(t, 2, *stored.AwayScore)
	})

	t.Run("only the host may record", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		pastClock(service, m)

		_, err := service.RecordResult(m.ID, userA, 1, 0, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("fails before the match has finished", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		_, err := service.RecordResult(m.ID, hostID, 1, 0, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrMatchNotFinished)
	})

	t.Run("fails on second record", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		pastClock(service, m)

		_, err := service.RecordResult(m.ID, hostID, 1, 0, nil, "")
		require.NoError(t, err)

		_, err = service.RecordResult(m.ID, hostID, 2, 2, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrResultAlreadyExists)
	})
}

func TestUpdateMatch(t *testing.T) {
	t.Run("host updates", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		updated, err := service.UpdateMatch(m.ID, hostID, func(m *Match) { m.MaxPlayers = 12 })
		require.NoError(t, err)
		assert.Equal(t, 12, updated.MaxPlayers)
	})

	t.Run("non-host is forbidden", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		_, err := service.UpdateMatch(m.ID, userA, func(m *Match) {})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("completed match is immutable", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		pastClock(service, m)
		_, err := service.RecordResult(m.ID, hostID, 1, 1, nil, "")
		require.NoError(t, err)

		_, err = service.UpdateMatch(m.ID, hostID, func(m *Match) {})
		assert.ErrorIs(t, err, apperrors.ErrMatchNotOpen)
	})
}

func TestDeleteMatch(t *testing.T) {
	t.Run("host deletes an upcoming match", func(t *testing.T) {
		service, repo, m := newMatchFixture(t, 10)

		require.NoError(t, service.DeleteMatch(m.ID, hostID))
		stored, err := repo.GetMatchByID(m.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("non-host is forbidden", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		assert.ErrorIs(t, service.DeleteMatch(m.ID, userA), apperrors.ErrForbidden)
	})

	t.Run("past match cannot be deleted", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		pastClock(service, m)

		assert.ErrorIs(t, service.DeleteMatch(m.ID, hostID), apperrors.ErrMatchAlreadyPlayed)
	})
}

func TestCancelMatch(t *testing.T) {
	service, _, m := newMatchFixture(t, 10)

	_, err := service.CancelMatch(m.ID, userA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	canceled, err := service.CancelMatch(m.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)

	_, err = service.CancelMatch(m.ID, hostID)
	assert.ErrorIs(t, err, apperrors.ErrMatchNotOpen)
}

func TestMarkAttendance(t *testing.T) {
	t.Run("host flags attendance after the match", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		pastClock(service, m)

		p, err := service.MarkAttendance(m.ID, userA, hostID, ParticipantNoShow)
		require.NoError(t, err)
		assert.Equal(t, ParticipantNoShow, p.Status)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)

		_, err := service.MarkAttendance(m.ID, userA, hostID, ParticipantRegistered)
		assert.ErrorIs(t, err, apperrors.ErrInvalidParticipantStatus)
	})

	t.Run("rejects before the match has finished", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)

		_, err = service.MarkAttendance(m.ID, userA, hostID, ParticipantAttended)
		assert.ErrorIs(t, err, apperrors.ErrMatchNotFinished)
	})

	t.Run("only the host may flag", func(t *testing.T) {
		service, _, m := newMatchFixture(t, 10)
		_, err := service.JoinMatch(m.ID, userA)
		require.NoError(t, err)
		pastClock(service, m)

		_, err = service.MarkAttendance(m.ID, userA, userB, ParticipantAttended)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
