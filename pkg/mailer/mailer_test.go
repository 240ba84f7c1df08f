package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestBuild(t *testing.T) {
	m := NewWithDialer("shop@example.com", &recordingDialer{})

	gm := m.Build(Message{To: "buyer@example.com", Subject: "Your order receipt", Body: "Thanks"})

	assert.Equal(t, []string{"shop@example.com"}, gm.GetHeader("From"))
	assert.Equal(t, []string{"buyer@example.com"}, gm.GetHeader("To"))
	assert.Equal(t, []string{"Your order receipt"}, gm.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Thanks")
	assert.Contains(t, buf.String(), "text/plain")
}

func TestSend(t *testing.T) {
	dialer := &recordingDialer{}
	m := NewWithDialer("shop@example.com", dialer)

	require.NoError(t, m.Send(context.Background(), Message{To: "buyer@example.com", Subject: "s", Body: "b"}))
	assert.Len(t, dialer.sent, 1)

	assert.Error(t, m.Send(context.Background(), Message{Subject: "s"}))
	assert.Len(t, dialer.sent, 1)
}

func TestSend_WrapsDialerError(t *testing.T) {
	m := NewWithDialer("shop@example.com", &recordingDialer{err: errors.New("connection refused")})

	err := m.Send(context.Background(), Message{To: "buyer@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}
