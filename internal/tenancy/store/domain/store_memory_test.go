package domain

import (
	"context"
	"sync"
	"sync/atomic"
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

func (s *InMemoryStoreSuite) newDomain(agencyID id.AgencyID, value string) *models.Domain {
	d, err := models.NewDomain(id.NewDomainID(), agencyID, value, time.Now())
	s.Require().NoError(err)
	return d
}

func (s *InMemoryStoreSuite) TestCreateAndExists() {
	ctx := context.Background()
	agencyID := id.NewAgencyID()

	s.Require().NoError(s.store.CreateIfAvailable(ctx, s.newDomain(agencyID, "events.example.com")))

	taken, err := s.store.Exists(ctx, "events.example.com")
	s.Require().NoError(err)
	s.True(taken)

	free, err := s.store.Exists(ctx, "other.example.com")
	s.Require().NoError(err)
	s.False(free)
}

func (s *InMemoryStoreSuite) TestUniquenessIsGlobal() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateIfAvailable(ctx, s.newDomain(id.NewAgencyID(), "shared.example.com")))

	err := s.store.CreateIfAvailable(ctx, s.newDomain(id.NewAgencyID(), "shared.example.com"))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryStoreSuite) TestConcurrentCreateExactlyOneWins() {
	ctx := context.Background()

	const goroutines = 30
	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.CreateIfAvailable(ctx, s.newDomain(id.NewAgencyID(), "raced.example.com"))
			if err == nil {
				successCount.Add(1)
			} else if err == sentinel.ErrAlreadyUsed {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *InMemoryStoreSuite) TestDeleteOwned() {
	ctx := context.Background()
	mine := id.NewAgencyID()
	theirs := id.NewAgencyID()

	d := s.newDomain(mine, "mine.example.com")
	s.Require().NoError(s.store.CreateIfAvailable(ctx, d))

	s.Run("wrong agency gets not-found", func() {
		s.ErrorIs(s.store.DeleteOwned(ctx, theirs, d.ID), sentinel.ErrNotFound)
	})

	s.Run("owner deletes and frees the value", func() {
		s.Require().NoError(s.store.DeleteOwned(ctx, mine, d.ID))

		taken, err := s.store.Exists(ctx, "mine.example.com")
		s.Require().NoError(err)
		s.False(taken, "deleted domain can be registered again")
	})

	s.Run("second delete is not-found", func() {
		s.ErrorIs(s.store.DeleteOwned(ctx, mine, d.ID), sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestListByAgencyOrdersByCreation() {
	ctx := context.Background()
	agencyID := id.NewAgencyID()
	base := time.Now()

	second := s.newDomain(agencyID, "b.example.com")
	second.CreatedAt = base.Add(time.Minute)
	first := s.newDomain(agencyID, "a.example.com")
	first.CreatedAt = base

	s.Require().NoError(s.store.CreateIfAvailable(ctx, second))
	s.Require().NoError(s.store.CreateIfAvailable(ctx, first))
	s.Require().NoError(s.store.CreateIfAvailable(ctx, s.newDomain(id.NewAgencyID(), "c.example.com")))

	domains, err := s.store.ListByAgency(ctx, agencyID)
	s.Require().NoError(err)
	s.Require().Len(domains, 2)
	s.Equal("a.example.com", domains[0].Domain)
	s.Equal("b.example.com", domains[1].Domain)
}
