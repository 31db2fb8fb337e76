package agency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

type AgencyMembershipStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *AgencyMembershipStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestAgencyMembershipStoreSuite(t *testing.T) {
	suite.Run(t, new(AgencyMembershipStoreSuite))
}

func (s *AgencyMembershipStoreSuite) TestFindRole() {
	agencyID := id.NewAgencyID()
	userID := id.NewUserID()

	s.Run("returns ErrNotFound when no row exists", func() {
		_, err := s.store.FindRole(s.ctx, agencyID, userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns the stored role", func() {
		s.Require().NoError(s.store.Put(s.ctx, membership.AgencyMembership{
			AgencyID:  agencyID,
			UserID:    userID,
			Role:      roles.RoleAdmin,
			CreatedAt: time.Now(),
		}))

		role, err := s.store.FindRole(s.ctx, agencyID, userID)
		s.Require().NoError(err)
		s.Equal(roles.RoleAdmin, role)
	})

	s.Run("does not leak across agencies", func() {
		_, err := s.store.FindRole(s.ctx, id.NewAgencyID(), userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("one row per (agency, user) pair", func() {
		s.Require().NoError(s.store.Put(s.ctx, membership.AgencyMembership{
			AgencyID:  agencyID,
			UserID:    userID,
			Role:      roles.RoleOwner,
			CreatedAt: time.Now(),
		}))

		role, err := s.store.FindRole(s.ctx, agencyID, userID)
		s.Require().NoError(err)
		s.Equal(roles.RoleOwner, role)
	})
}

func (s *AgencyMembershipStoreSuite) TestListByUser() {
	userID := id.NewUserID()
	base := time.Now()

	first := membership.AgencyMembership{
		AgencyID: id.NewAgencyID(), UserID: userID, Role: roles.RoleAdmin, CreatedAt: base,
	}
	second := membership.AgencyMembership{
		AgencyID: id.NewAgencyID(), UserID: userID, Role: roles.RoleOwner, CreatedAt: base.Add(time.Minute),
	}
	other := membership.AgencyMembership{
		AgencyID: id.NewAgencyID(), UserID: id.NewUserID(), Role: roles.RoleOwner, CreatedAt: base,
	}

	// Insert out of order to exercise the sort.
	s.Require().NoError(s.store.Put(s.ctx, second))
	s.Require().NoError(s.store.Put(s.ctx, first))
	s.Require().NoError(s.store.Put(s.ctx, other))

	rows, err := s.store.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(first.AgencyID, rows[0].AgencyID, "earliest membership first")
	s.Equal(second.AgencyID, rows[1].AgencyID)
}
