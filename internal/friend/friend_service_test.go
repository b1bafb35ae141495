package friend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woorifc/kickmate/internal/apperrors"
)

// fakeFriendRepo is an in-memory FriendRepository for service tests.
type fakeFriendRepo struct {
	friendships map[uint]*Friendship
	users       map[uint]bool
	nextID      uint
}

func newFakeFriendRepo(userIDs ...uint) *fakeFriendRepo {
	users := make(map[uint]bool)
	for _, id := range userIDs {
		users[id] = true
	}
	return &fakeFriendRepo{
		friendships: make(map[uint]*Friendship),
		users:       users,
		nextID:      1,
	}
}

func (f *fakeFriendRepo) Create(fs *Friendship) error {
	fs.ID = f.nextID
	f.nextID++
	copied := *fs
	f.friendships[fs.ID] = &copied
	return nil
}

func (f *fakeFriendRepo) GetByID(id uint) (*Friendship, error) {
	fs, ok := f.friendships[id]
	if !ok {
		return nil, nil
	}
	copied := *fs
	return &copied, nil
}

func (f *fakeFriendRepo) GetByPair(fromUserID, toUserID uint) (*Friendship, error) {
	for _, fs := range f.friendships {
		if fs.FromUserID == fromUserID && fs.ToUserID == toUserID {
			copied := *fs
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendRepo) GetAcceptedBetween(userA, userB uint) (*Friendship, error) {
	for _, fs := range f.friendships {
		if fs.Status != FriendshipAccepted {
			continue
		}
		if (fs.FromUserID == userA && fs.ToUserID == userB) ||
			(fs.FromUserID == userB && fs.ToUserID == userA) {
			copied := *fs
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendRepo) ListFriends(userID uint) ([]Friendship, error) {
	var out []Friendship
	for _, fs := range f.friendships {
		if fs.Status == FriendshipAccepted && fs.Involves(userID) {
			out = append(out, *fs)
		}
	}
	return out, nil
}

func (f *fakeFriendRepo) ListIncoming(userID uint) ([]Friendship, error) {
	var out []Friendship
	for _, fs := range f.friendships {
		if fs.Status == FriendshipPending && fs.ToUserID == userID {
			out = append(out, *fs)
		}
	}
	return out, nil
}

func (f *fakeFriendRepo) ListOutgoing(userID uint) ([]Friendship, error) {
	var out []Friendship
	for _, fs := range f.friendships {
		if fs.Status == FriendshipPending && fs.FromUserID == userID {
			out = append(out, *fs)
		}
	}
	return out, nil
}

func (f *fakeFriendRepo) Update(fs *Friendship) error {
	copied := *fs
	f.friendships[fs.ID] = &copied
	return nil
}

func (f *fakeFriendRepo) Delete(id uint) error {
	delete(f.friendships, id)
	return nil
}

func (f *fakeFriendRepo) UserExists(userID uint) (bool, error) {
	return f.users[userID], nil
}

// --- tests ---

const (
	alice = uint(1)
	bob   = uint(2)
	carol = uint(3)
)

func newFriendFixture() (*FriendService, *fakeFriendRepo) {
	repo := newFakeFriendRepo(alice, bob, carol)
	return NewFriendService(repo), repo
}

func TestSendRequest(t *testing.T) {
	t.Run("creates a pending friendship", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		assert.Equal(t, FriendshipPending, f.Status)
		assert.Equal(t, alice, f.FromUserID)
		assert.Equal(t, bob, f.ToUserID)
	})

	t.Run("rejects self request", func(t *testing.T) {
		service, _ := newFriendFixture()

		_, err := service.SendRequest(alice, alice)
		assert.ErrorIs(t, err, apperrors.ErrSelfFriendRequest)
	})

	t.Run("rejects unknown recipient", func(t *testing.T) {
		service, _ := newFriendFixture()

		_, err := service.SendRequest(alice, 9999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("rejects duplicate in same direction", func(t *testing.T) {
		service, _ := newFriendFixture()

		_, err := service.SendRequest(alice, bob)
		require.NoError(t, err)

		_, err = service.SendRequest(alice, bob)
		assert.ErrorIs(t, err, apperrors.ErrFriendRequestSent)
	})

	t.Run("rejects duplicate in reverse direction", func(t *testing.T) {
		service, _ := newFriendFixture()

		_, err := service.SendRequest(alice, bob)
		require.NoError(t, err)

		_, err = service.SendRequest(bob, alice)
		assert.ErrorIs(t, err, apperrors.ErrFriendRequestPending)
	})

	t.Run("rejects when already friends", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		_, err = service.AcceptRequest(f.ID, bob)
		require.NoError(t, err)

		_, err = service.SendRequest(alice, bob)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)
		_, err = service.SendRequest(bob, alice)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)
	})

	t.Run("reuses a rejected row on retry", func(t *testing.T) {
		service, repo := newFriendFixture()

		first, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		_, err = service.RejectRequest(first.ID, bob)
		require.NoError(t, err)

		second, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, FriendshipPending, second.Status)
		assert.Len(t, repo.friendships, 1)
	})
}

func TestAcceptRequest(t *testing.T) {
	t.Run("recipient accepts", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)

		accepted, err := service.AcceptRequest(f.ID, bob)
		require.NoError(t, err)
		assert.Equal(t, FriendshipAccepted, accepted.Status)
	})

	t.Run("sender cannot accept own request", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)

		_, err = service.AcceptRequest(f.ID, alice)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("only pending requests can be accepted", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		_, err = service.RejectRequest(f.ID, bob)
		require.NoError(t, err)

		_, err = service.AcceptRequest(f.ID, bob)
		assert.ErrorIs(t, err, apperrors.ErrFriendshipNotPending)
	})

	t.Run("unknown request", func(t *testing.T) {
		service, _ := newFriendFixture()

		_, err := service.AcceptRequest(9999, bob)
		assert.ErrorIs(t, err, apperrors.ErrFriendshipNotFound)
	})
}

func TestCancelRequest(t *testing.T) {
	service, repo := newFriendFixture()

	f, err := service.SendRequest(alice, bob)
	require.NoError(t, err)

	assert.ErrorIs(t, service.CancelRequest(f.ID, bob), apperrors.ErrForbidden)

	require.NoError(t, service.CancelRequest(f.ID, alice))
	assert.Empty(t, repo.friendships)
}

func TestDeleteFriendship(t *testing.T) {
	t.Run("either party removes an accepted friendship", func(t *testing.T) {
		service, repo := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		_, err = service.AcceptRequest(f.ID, bob)
		require.NoError(t, err)

		require.NoError(t, service.DeleteFriendship(f.ID, alice))
		assert.Empty(t, repo.friendships)
	})

	t.Run("outsiders are forbidden", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)
		_, err = service.AcceptRequest(f.ID, bob)
		require.NoError(t, err)

		assert.ErrorIs(t, service.DeleteFriendship(f.ID, carol), apperrors.ErrForbidden)
	})

	t.Run("pending requests cannot be deleted this way", func(t *testing.T) {
		service, _ := newFriendFixture()

		f, err := service.SendRequest(alice, bob)
		require.NoError(t, err)

		assert.ErrorIs(t, service.DeleteFriendship(f.ID, bob), apperrors.ErrFriendshipNotAccepted)
	})
}

func TestFriendLists(t *testing.T) {
	service, _ := newFriendFixture()

	f1, err := service.SendRequest(alice, bob)
	require.NoError(t, err)
	_, err = service.AcceptRequest(f1.ID, bob)
	require.NoError(t, err)

	_, err = service.SendRequest(carol, alice)
	require.NoError(t, err)
	_, err = service.SendRequest(bob, carol)
	require.NoError(t, err)

	friends, err := service.ListFriends(alice)
	require.NoError(t, err)
	assert.Len(t, friends, 1)

	incoming, err := service.ListIncoming(alice)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)
	assert.Equal(t, carol, incoming[0].FromUserID)

	outgoing, err := service.ListOutgoing(bob)
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)
	assert.Equal(t, carol, outgoing[0].ToUserID)
}
