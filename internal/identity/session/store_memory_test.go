package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func makeSession(userID id.UserID) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Device:    "Chrome on Mac OS X",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	sess := makeSession(id.NewUserID())

	s.Require().NoError(s.store.Create(ctx, sess))

	found, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.UserID, found.UserID)
	s.Equal(sess.Device, found.Device)
}

func (s *InMemoryStoreSuite) TestCreateDuplicateConflicts() {
	ctx := context.Background()
	sess := makeSession(id.NewUserID())

	s.Require().NoError(s.store.Create(ctx, sess))
	s.ErrorIs(s.store.Create(ctx, sess), sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestFindMissingReturnsNotFound() {
	_, err := s.store.FindByID(context.Background(), uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDelete() {
	ctx := context.Background()
	sess := makeSession(id.NewUserID())
	s.Require().NoError(s.store.Create(ctx, sess))

	s.Require().NoError(s.store.Delete(ctx, sess.ID))

	_, err := s.store.FindByID(ctx, sess.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, sess.ID), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteByUserLeavesOtherUsers() {
	ctx := context.Background()
	alice := id.NewUserID()
	bob := id.NewUserID()

	first := makeSession(alice)
	second := makeSession(alice)
	other := makeSession(bob)
	for _, sess := range []*Session{first, second, other} {
		s.Require().NoError(s.store.Create(ctx, sess))
	}

	s.Require().NoError(s.store.DeleteByUser(ctx, alice))

	_, err := s.store.FindByID(ctx, first.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByID(ctx, second.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	kept, err := s.store.FindByID(ctx, other.ID)
	s.Require().NoError(err)
	s.Equal(bob, kept.UserID)
}

func (s *InMemoryStoreSuite) TestPurgeExpired() {
	ctx := context.Background()
	now := time.Now()

	live := makeSession(id.NewUserID())
	stale := makeSession(id.NewUserID())
	stale.ExpiresAt = now.Add(-time.Minute)
	s.Require().NoError(s.store.Create(ctx, live))
	s.Require().NoError(s.store.Create(ctx, stale))

	s.Require().NoError(s.store.PurgeExpired(ctx, now))

	_, err := s.store.FindByID(ctx, stale.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByID(ctx, live.ID)
	s.NoError(err)
}
