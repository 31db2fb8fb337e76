package allowedemail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
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

func (s *InMemoryStoreSuite) entry(webinarID id.WebinarID, email string) *models.AllowedEmail {
	e, err := models.NewAllowedEmail(webinarID, email, time.Now())
	s.Require().NoError(err)
	return e
}

func (s *InMemoryStoreSuite) TestAddRemoveList() {
	ctx := context.Background()
	webinarID := id.NewWebinarID()

	s.Require().NoError(s.store.Add(ctx, s.entry(webinarID, "a@example.com")))
	s.Require().NoError(s.store.Add(ctx, s.entry(webinarID, "b@example.com")))

	s.Run("duplicate per webinar is rejected", func() {
		s.ErrorIs(s.store.Add(ctx, s.entry(webinarID, "a@example.com")), sentinel.ErrAlreadyUsed)
	})

	s.Run("same address on another webinar is allowed", func() {
		s.NoError(s.store.Add(ctx, s.entry(id.NewWebinarID(), "a@example.com")))
	})

	s.Run("list returns only this webinar's entries", func() {
		entries, err := s.store.List(ctx, webinarID)
		s.Require().NoError(err)
		s.Len(entries, 2)
	})

	s.Run("contains checks membership", func() {
		ok, err := s.store.Contains(ctx, webinarID, "a@example.com")
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("remove then remove again", func() {
		s.Require().NoError(s.store.Remove(ctx, webinarID, "a@example.com"))
		s.ErrorIs(s.store.Remove(ctx, webinarID, "a@example.com"), sentinel.ErrNotFound)
	})
}
