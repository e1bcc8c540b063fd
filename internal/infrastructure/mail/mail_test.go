package mail

import (
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

func TestNotifyOffer(t *testing.T) {
	d := &recordingDialer{}
	n := &SMTPNotifier{dialer: d, sender: "noreply@offer.com"}

	require.NoError(t, n.NotifyOffer(context.Background(), "seller@offer.com", "Desk", 15000))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"seller@offer.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{`New offer on "Desk"`}, d.sent[0].GetHeader("Subject"))
}

func TestNotifyOffer_DialError(t *testing.T) {
	d := &recordingDialer{err: errors.New("smtp down")}
	n := &SMTPNotifier{dialer: d, sender: "noreply@offer.com"}

	assert.Error(t, n.NotifyOffer(context.Background(), "seller@offer.com", "Desk", 15000))
}
