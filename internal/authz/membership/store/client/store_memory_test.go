package client

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

type ClientMembershipStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ClientMembershipStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestClientMembershipStoreSuite(t *testing.T) {
	suite.Run(t, new(ClientMembershipStoreSuite))
}

func (s *ClientMembershipStoreSuite) TestFindRole() {
	clientID := id.NewClientID()
	userID := id.NewUserID()

	s.Run("returns ErrNotFound when no row exists", func() {
		_, err := s.store.FindRole(s.ctx, clientID, userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns the stored role", func() {
		s.Require().NoError(s.store.Put(s.ctx, membership.ClientMembership{
			ClientID:  clientID,
			UserID:    userID,
			Role:      roles.RoleViewer,
			CreatedAt: time.Now(),
		}))

		role, err := s.store.FindRole(s.ctx, clientID, userID)
		s.Require().NoError(err)
		s.Equal(roles.RoleViewer, role)
	})

	s.Run("independent of agency memberships for the same user", func() {
		// Same user, different client: still no row.
		_, err := s.store.FindRole(s.ctx, id.NewClientID(), userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ClientMembershipStoreSuite) TestListByUser() {
	userID := id.NewUserID()
	base := time.Now()

	first := membership.ClientMembership{
		ClientID: id.NewClientID(), UserID: userID, Role: roles.RoleOperator, CreatedAt: base,
	}
	second := membership.ClientMembership{
		ClientID: id.NewClientID(), UserID: userID, Role: roles.RoleViewer, CreatedAt: base.Add(time.Second),
	}

	s.Require().NoError(s.store.Put(s.ctx, second))
	s.Require().NoError(s.store.Put(s.ctx, first))

	rows, err := s.store.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(first.ClientID, rows[0].ClientID, "earliest membership first")
}
