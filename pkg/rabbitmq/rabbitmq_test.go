package rabbitmq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDelivery struct {
	acked, nacked, requeued bool
}

func (d *fakeDelivery) Ack(bool) error {
	d.acked = true
	return nil
}

func (d *fakeDelivery) Nack(_, requeue bool) error {
	d.nacked = true
	d.requeued = requeue
	return nil
}

func TestSettle_AcksHandledMessages(t *testing.T) {
	d := &fakeDelivery{}
	settle(d, nil)

	assert.True(t, d.acked)
	assert.False(t, d.nacked)
}

func TestSettle_DropsFailedMessages(t *testing.T) {
	d := &fakeDelivery{}
	settle(d, errors.New("smtp down"))

	assert.False(t, d.acked)
	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
}

func TestPublishJSON_WithoutChannel(t *testing.T) {
	c := &Client{queue: "receipt_queue"}
	assert.ErrorContains(t, c.PublishJSON(map[string]string{"a": "b"}), "not available")
}
