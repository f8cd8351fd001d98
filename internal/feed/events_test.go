// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bankfeed-io/bankfeed/internal/config"
	"github.com/bankfeed-io/bankfeed/internal/model"

	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub"
)

func TestPublisher__inmem(t *testing.T) {
	ctx := context.Background()
	topicURL := "mem://bankfeed-events"

	pub, err := NewPublisher(config.Pipeline{
		Stream: &config.StreamPipeline{
			InMem: &config.InMemPipeline{URL: topicURL},
		},
	})
	require.NoError(t, err)
	defer pub.Shutdown(ctx)

	sub, err := pubsub.OpenSubscription(ctx, topicURL)
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	req := &model.Requisition{
		ID:            "req-1",
		Status:        model.RequisitionCreated,
		InstitutionID: "ING_INGBNL2A",
	}
	require.NoError(t, pub.RequisitionCreated(req))

	ctx, cancelFn := context.WithTimeout(ctx, 5*time.Second)
	defer cancelFn()

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	if v := msg.Metadata["event"]; v != EventRequisitionCreated {
		t.Errorf("event: %q", v)
	}

	var event requisitionEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	if event.RequisitionID != "req-1" || event.InstitutionID != "ING_INGBNL2A" {
		t.Errorf("event: %#v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Error("missing occurredAt")
	}
}

// no stream config means events are quietly dropped
func TestPublisher__none(t *testing.T) {
	pub, err := NewPublisher(config.Pipeline{})
	if err != nil {
		t.Fatal(err)
	}
	defer pub.Shutdown(context.Background())

	if err := pub.RequisitionCreated(&model.Requisition{ID: "req-1"}); err != nil {
		t.Error(err)
	}
	if err := pub.RequisitionDeleted(&model.Requisition{ID: "req-1"}); err != nil {
		t.Error(err)
	}
}
