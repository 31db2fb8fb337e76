//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	"github.com/ustudiopd/EventLive-sub001/internal/audit/publisher"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/testutil/containers"
)

const testTopic = "eventlive.audit.test"

type KafkaPublisherSuite struct {
	suite.Suite
	broker string
	sink   *publisher.Kafka
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker

	sink, err := publisher.NewKafka([]string{s.broker}, testTopic)
	s.Require().NoError(err)
	s.sink = sink
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.sink != nil {
		s.sink.Close()
	}
}

func (s *KafkaPublisherSuite) TestPublishedEntryIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	actorID := id.NewUserID()
	entry := audit.Entry{
		ID:          uuid.New(),
		ActorUserID: actorID,
		Action:      audit.ActionDomainCreate,
		Payload:     map[string]any{"domain": "events.example.com"},
		CreatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.sink.Publish(ctx, entry))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got audit.Entry
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(entry.ID, got.ID)
	s.Equal(audit.ActionDomainCreate, got.Action)
	s.Equal(actorID.String(), string(records[0].Key), "partition key is the actor id")
}
