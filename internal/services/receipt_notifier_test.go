package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakePublisher struct {
	published []interface{}
}

func (f *fakePublisher) PublishJSON(v interface{}) error {
	f.published = append(f.published, v)
	return nil
}

func TestMailNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := services.NewMailNotifier(sender)

	require.NoError(t, n.Notify(context.Background(), models.Receipt{To: "a@example.com", Subject: "s", Body: "b"}))
	assert.Equal(t, []mailer.Message{{To: "a@example.com", Subject: "s", Body: "b"}}, sender.sent)
}

func TestQueueNotifierRoundTripThroughConsumer(t *testing.T) {
	publisher := &fakePublisher{}
	receipt := models.Receipt{To: "a@example.com", Subject: services.ReceiptSubject, Body: "Kettle: 2 x 100 = 200"}

	require.NoError(t, services.NewQueueNotifier(publisher).Notify(context.Background(), receipt))
	require.Len(t, publisher.published, 1)

	body, err := json.Marshal(publisher.published[0])
	require.NoError(t, err)

	sender := &fakeSender{}
	require.NoError(t, services.ReceiptConsumer(sender)(body))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, receipt.Body, sender.sent[0].Body)
}

func TestReceiptConsumer_Errors(t *testing.T) {
	assert.Error(t, services.ReceiptConsumer(&fakeSender{})([]byte("{not json")))

	failing := &fakeSender{err: errors.New("smtp down")}
	assert.Error(t, services.ReceiptConsumer(failing)([]byte(`{"to":"a@example.com"}`)))
}
