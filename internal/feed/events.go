// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bankfeed-io/bankfeed/internal/config"
	"github.com/bankfeed-io/bankfeed/internal/model"
	"github.com/bankfeed-io/bankfeed/pkg/stream"

	"gocloud.dev/pubsub"
)

const (
	// EventRequisitionCreated is emitted after a consent flow is started.
	EventRequisitionCreated = "requisition.created"

	// EventRequisitionDeleted is emitted after a requisition (and its
	// consent) is removed.
	EventRequisitionDeleted = "requisition.deleted"
)

// EventPublisher notifies downstream consumers of requisition lifecycle
// changes. Implementations push onto streams (e.g. kafka) or inmem.
type EventPublisher interface {
	RequisitionCreated(req *model.Requisition) error
	RequisitionDeleted(req *model.Requisition) error
	Shutdown(ctx context.Context)
}

// NewPublisher returns an EventPublisher for the configured pipeline. A
// config without a stream section gets a publisher that discards events.
func NewPublisher(cfg config.Pipeline) (EventPublisher, error) {
	if cfg.Stream == nil {
		return &nopPublisher{}, nil
	}
	if cfg.Stream.InMem != nil {
		topic, err := stream.Topic(context.Background(), cfg.Stream.InMem.URL)
		if err != nil {
			return nil, err
		}
		return &streamPublisher{topic: topic}, nil
	}
	if k := cfg.Stream.Kafka; k != nil {
		topic, err := stream.KafkaTopic(k.Brokers, stream.KafkaConfig(), k.Topic, nil)
		if err != nil {
			return nil, err
		}
		return &streamPublisher{topic: topic}, nil
	}
	return nil, errors.New("unknown stream config")
}

type requisitionEvent struct {
	RequisitionID string    `json:"requisitionId"`
	InstitutionID string    `json:"institutionId"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type streamPublisher struct {
	topic *pubsub.Topic
}

func (pub *streamPublisher) RequisitionCreated(req *model.Requisition) error {
	return pub.send(EventRequisitionCreated, req)
}

func (pub *streamPublisher) RequisitionDeleted(req *model.Requisition) error {
	return pub.send(EventRequisitionDeleted, req)
}

func (pub *streamPublisher) send(event string, req *model.Requisition) error {
	body, err := json.Marshal(requisitionEvent{
		RequisitionID: req.ID,
		InstitutionID: req.InstitutionID,
		Status:        string(req.Status),
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return pub.topic.Send(context.TODO(), &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			"event": event,
		},
	})
}

func (pub *streamPublisher) Shutdown(ctx context.Context) {
	if pub.topic != nil {
		pub.topic.Shutdown(ctx)
	}
}

type nopPublisher struct{}

func (*nopPublisher) RequisitionCreated(req *model.Requisition) error { return nil }
func (*nopPublisher) RequisitionDeleted(req *model.Requisition) error { return nil }
func (*nopPublisher) Shutdown(ctx context.Context)                    {}

// MockPublisher records published events for tests.
type MockPublisher struct {
	Err error

	Created []string
	Deleted []string
}

func (pub *MockPublisher) RequisitionCreated(req *model.Requisition) error {
	if pub.Err != nil {
		return pub.Err
	}
	pub.Created = append(pub.Created, req.ID)
	return nil
}

func (pub *MockPublisher) RequisitionDeleted(req *model.Requisition) error {
	if pub.Err != nil {
		return pub.Err
	}
	pub.Deleted = append(pub.Deleted, req.ID)
	return nil
}

func (pub *MockPublisher) Shutdown(ctx context.Context) {}
