package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woorifc/kickmate/internal/apperrors"
)

// fakeTeamRepo is an in-memory TeamRepository for service tests.
type fakeTeamRepo struct {
	teams    map[uint]*Team
	members  map[uint]*TeamMember
	requests map[uint]*TeamJoinRequest
	nextID   uint
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:    make(map[uint]*Team),
		members:  make(map[uint]*TeamMember),
		requests: make(map[uint]*TeamJoinRequest),
		nextID:   1,
	}
}

func (f *fakeTeamRepo) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeTeamRepo) CreateTeam(t *Team) error {
	t.ID = f.id()
	copied := *t
	f.teams[t.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetTeamByID(id uint) (*Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error) {
	var out []Team
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTeamRepo) UpdateTeam(t *Team) error {
	copied := *t
	f.teams[t.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) DeleteTeam(id uint) error {
	delete(f.teams, id)
	for mid, m := range f.members {
		if m.TeamID == id {
			delete(f.members, mid)
		}
	}
	for rid, r := range f.requests {
		if r.TeamID == id {
			delete(f.requests, rid)
		}
	}
	return nil
}

func (f *fakeTeamRepo) GetTeamsByUserID(userID uint, page, limit int) ([]Team, int64, error) {
	var out []Team
	for _, m := range f.members {
		if m.UserID == userID {
			if t, ok := f.teams[m.TeamID]; ok {
				out = append(out, *t)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTeamRepo) AddMember(m *TeamMember) error {
	m.ID = f.id()
	copied := *m
	f.members[m.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetMember(teamID, userID uint) (*TeamMember, error) {
	for _, m := range f.members {
		if m.TeamID == teamID && m.UserID == userID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) GetMemberByID(id uint) (*TeamMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakeTeamRepo) GetMembers(teamID uint) ([]TeamMember, error) {
	var out []TeamMember
	for _, m := range f.members {
		if m.TeamID == teamID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) UpdateMember(m *TeamMember) error {
	copied := *m
	f.members[m.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) DeleteMember(id uint) error {
	delete(f.members, id)
	return nil
}

func (f *fakeTeamRepo) CreateJoinRequest(r *TeamJoinRequest) error {
	r.ID = f.id()
	copied := *r
	f.requests[r.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetJoinRequestByID(id uint) (*TeamJoinRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeTeamRepo) GetPendingJoinRequest(teamID, userID uint) (*TeamJoinRequest, error) {
	for _, r := range f.requests {
		if r.TeamID == teamID && r.UserID == userID && r.Status == RequestPending {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) GetJoinRequestsByTeam(teamID uint, status JoinRequestStatus) ([]TeamJoinRequest, error) {
	var out []TeamJoinRequest
	for _, r := range f.requests {
		if r.TeamID == teamID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetJoinRequestsByUser(userID uint, status JoinRequestStatus) ([]TeamJoinRequest, error) {
	var out []TeamJoinRequest
	for _, r := range f.requests {
		if r.UserID == userID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) UpdateJoinRequest(r *TeamJoinRequest) error {
	copied := *r
	f.requests[r.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) DeleteJoinRequest(id uint) error {
	delete(f.requests, id)
	return nil
}

func (f *fakeTeamRepo) WithTransaction(txFunc func(TeamRepository) error) error {
	return txFunc(f)
}

// --- helpers ---

const (
	ownerID    = uint(100)
	joinerID   = uint(200)
	outsiderID = uint(300)
)

func newTeamFixture(t *testing.T) (*TeamService, *fakeTeamRepo, *Team) {
	t.Helper()
	repo := newFakeTeamRepo()
	service := NewTeamService(repo)

	tm := &Team{Name: "FC Mapo", OwnerID: ownerID}
	require.NoError(t, service.CreateTeam(tm))
	return service, repo, tm
}

// --- tests ---

func TestCreateTeamAddsOwnerAsCaptain(t *testing.T) {
	_, repo, tm := newTeamFixture(t)

	member, err := repo.GetMember(tm.ID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, RoleCaptain, member.Role)
}

func TestRequestJoin(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "put me in", nil)
		require.NoError(t, err)
		assert.Equal(t, RequestPending, req.Status)
		assert.Equal(t, joinerID, req.UserID)
	})

	t.Run("rejects unknown team", func(t *testing.T) {
		service, _, _ := newTeamFixture(t)

		_, err := service.RequestJoin(9999, joinerID, "", nil)
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})

	t.Run("rejects existing member", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		_, err := service.RequestJoin(tm.ID, ownerID, "", nil)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		_, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)

		_, err = service.RequestJoin(tm.ID, joinerID, "again", nil)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateJoinRequest)
	})

	t.Run("allows re-request after rejection", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)
		require.NoError(t, service.RejectJoinRequest(tm.ID, req.ID, ownerID))

		_, err = service.RequestJoin(tm.ID, joinerID, "second try", nil)
		assert.NoError(t, err)
	})

	t.Run("allows re-request after leaving", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)
		_, err = service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)
		require.NoError(t, service.LeaveTeam(tm.ID, joinerID))

		_, err = service.RequestJoin(tm.ID, joinerID, "back again", nil)
		assert.NoError(t, err)
	})
}

func TestAcceptJoinRequest(t *testing.T) {
	t.Run("creates player membership and marks accepted", func(t *testing.T) {
		service, repo, tm := newTeamFixture(t)

		pos := PositionMF
		req, err := service.RequestJoin(tm.ID, joinerID, "", &pos)
		require.NoError(t, err)

		member, err := service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, RolePlayer, member.Role)
		require.NotNil(t, member.Position)
		assert.Equal(t, PositionMF, *member.Position)

		stored, err := repo.GetJoinRequestByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, RequestAccepted, stored.Status)
	})

	t.Run("only owner may accept", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)

		_, err = service.AcceptJoinRequest(tm.ID, req.ID, outsiderID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("request must belong to the team", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		other := &Team{Name: "FC Nowon", OwnerID: ownerID}
		require.NoError(t, service.CreateTeam(other))
		req, err := service.RequestJoin(other.ID, joinerID, "", nil)
		require.NoError(t, err)

		_, err = service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		assert.ErrorIs(t, err, apperrors.ErrJoinRequestNotFound)
	})

	t.Run("second accept is not pending", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)
		_, err = service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)

		_, err = service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)
	})

	t.Run("existing member is reconciled without duplicate row", func(t *testing.T) {
		service, repo, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.AddMember(&TeamMember{TeamID: tm.ID, UserID: joinerID, Role: RolePlayer}))

		member, err := service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)
		require.NotNil(t, member)

		members, err := repo.GetMembers(tm.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2) // owner + joiner

		stored, err := repo.GetJoinRequestByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, RequestAccepted, stored.Status)
	})
}

func TestRejectJoinRequest(t *testing.T) {
	service, repo, tm := newTeamFixture(t)

	req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, service.RejectJoinRequest(tm.ID, req.ID, outsiderID), apperrors.ErrForbidden)

	require.NoError(t, service.RejectJoinRequest(tm.ID, req.ID, ownerID))
	stored, err := repo.GetJoinRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRejected, stored.Status)

	assert.ErrorIs(t, service.RejectJoinRequest(tm.ID, req.ID, ownerID), apperrors.ErrRequestNotPending)

	member, err := repo.GetMember(tm.ID, joinerID)
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestCancelJoinRequest(t *testing.T) {
	service, repo, tm := newTeamFixture(t)

	assert.ErrorIs(t, service.CancelJoinRequest(tm.ID, joinerID), apperrors.ErrNoPendingRequest)

	req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
	require.NoError(t, err)
	require.NoError(t, service.CancelJoinRequest(tm.ID, joinerID))

	stored, err := repo.GetJoinRequestByID(req.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRemoveMember(t *testing.T) {
	join := func(t *testing.T, service *TeamService, tm *Team, userID uint) *TeamMember {
		t.Helper()
		req, err := service.RequestJoin(tm.ID, userID, "", nil)
		require.NoError(t, err)
		member, err := service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)
		return member
	}

	t.Run("owner removes a member", func(t *testing.T) {
		service, repo, tm := newTeamFixture(t)
		member := join(t, service, tm, joinerID)

		require.NoError(t, service.RemoveMember(tm.ID, member.ID, ownerID))
		got, err := repo.GetMember(tm.ID, joinerID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("member removes themselves", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)
		member := join(t, service, tm, joinerID)

		assert.NoError(t, service.RemoveMember(tm.ID, member.ID, joinerID))
	})

	t.Run("other members cannot remove", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)
		member := join(t, service, tm, joinerID)
		join(t, service, tm, outsiderID)

		assert.ErrorIs(t, service.RemoveMember(tm.ID, member.ID, outsiderID), apperrors.ErrForbidden)
	})

	t.Run("owner membership is irremovable", func(t *testing.T) {
		service, repo, tm := newTeamFixture(t)

		ownerMember, err := repo.GetMember(tm.ID, ownerID)
		require.NoError(t, err)

		assert.ErrorIs(t, service.RemoveMember(tm.ID, ownerMember.ID, ownerID), apperrors.ErrOwnerNotRemovable)
	})
}

func TestUpdateMemberRole(t *testing.T) {
	service, _, tm := newTeamFixture(t)

	req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
	require.NoError(t, err)
	member, err := service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
	require.NoError(t, err)

	_, err = service.UpdateMemberRole(tm.ID, member.ID, RoleManager, joinerID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := service.UpdateMemberRole(tm.ID, member.ID, RoleManager, ownerID)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, updated.Role)
}

func TestLeaveTeam(t *testing.T) {
	t.Run("member leaves", func(t *testing.T) {
		service, repo, tm := newTeamFixture(t)

		req, err := service.RequestJoin(tm.ID, joinerID, "", nil)
		require.NoError(t, err)
		_, err = service.AcceptJoinRequest(tm.ID, req.ID, ownerID)
		require.NoError(t, err)

		require.NoError(t, service.LeaveTeam(tm.ID, joinerID))
		got, err := repo.GetMember(tm.ID, joinerID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("owner cannot leave", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)
		assert.ErrorIs(t, service.LeaveTeam(tm.ID, ownerID), apperrors.ErrOwnerCannotLeave)
	})

	t.Run("non-member cannot leave", func(t *testing.T) {
		service, _, tm := newTeamFixture(t)
		assert.ErrorIs(t, service.LeaveTeam(tm.ID, joinerID), apperrors.ErrNotAMember)
	})
}

func TestUpdateTeamOwnerOnly(t *testing.T) {
	service, _, tm := newTeamFixture(t)

	_, err := service.UpdateTeam(tm.ID, joinerID, func(t *Team) { t.Name = "hijacked" })
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := service.UpdateTeam(tm.ID, ownerID, func(t *Team) { t.Name = "FC Mapo United" })
	require.NoError(t, err)
	assert.Equal(t, "FC Mapo United", updated.Name)
}

func TestDeleteTeamOwnerOnly(t *testing.T) {
	service, repo, tm := newTeamFixture(t)

	assert.ErrorIs(t, service.DeleteTeam(tm.ID, joinerID), apperrors.ErrForbidden)

	require.NoError(t, service.DeleteTeam(tm.ID, ownerID))
	got, err := repo.GetTeamByID(tm.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListJoinRequestsOwnerOnly(t *testing.T) {
	service, _, tm := newTeamFixture(t)

	_, err := service.RequestJoin(tm.ID, joinerID, "", nil)
	require.NoError(t, err)

	_, err = service.ListJoinRequests(tm.ID, joinerID, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	requests, err := service.ListJoinRequests(tm.ID, ownerID, RequestPending)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}
