//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"leavehub/internal/audit"
	id "leavehub/pkg/domain"
	"leavehub/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	brokers   []string
	publisher *audit.KafkaPublisher
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	ctx := context.Background()
	broker := containers.NewRedpandaContainer(s.T())
	s.brokers = broker.Brokers

	publisher, err := audit.NewKafkaPublisher(ctx, s.brokers, audit.DefaultTopic)
	s.Require().NoError(err)
	s.publisher = publisher
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.publisher != nil {
		s.publisher.Close()
	}
}

func (s *KafkaPublisherSuite) TestEventsLandOnTopicKeyedByUser() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID := id.NewUserID().String()
	sent := audit.Event{
		Action:   audit.ActionUserLogin,
		UserID:   userID,
		Username: "ada",
		Device:   "Firefox on Linux",
	}
	s.Require().NoError(s.publisher.Emit(ctx, sent))
	s.Require().NoError(s.publisher.Flush(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(audit.DefaultTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)

	record := records[len(records)-1]
	s.Equal(userID, string(record.Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(record.Value, &got))
	s.Equal(sent.Action, got.Action)
	s.Equal(sent.Username, got.Username)
	s.Equal(sent.Device, got.Device)
	s.False(got.Timestamp.IsZero(), "publisher should stamp the event")
}
