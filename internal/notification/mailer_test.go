package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSMTPMailer_Send(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.edu", Port: 587, Username: "mailer", Password: "secret", From: "reslife@example.edu"}

	t.Run("renders headers and body", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		m := newSMTPMailer(cfg, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			assert.NotNil(t, a)
			return nil
		}, zap.NewNop())
		m.now = func() time.Time { return time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC) }

		err := m.Send(context.Background(), Message{
			To:      []string{"team@example.edu", "director@example.edu"},
			Subject: "Staff Recognition\r\nBcc: evil@example.com",
			Body:    "line one\nline two",
		})

		assert.NoError(t, err)
		assert.Equal(t, "smtp.example.edu:587", gotAddr)
		assert.Equal(t, "reslife@example.edu", gotFrom)
		assert.Len(t, gotTo, 2)
		raw := string(gotMsg)
		assert.Contains(t, raw, "To: team@example.edu, director@example.edu\r\n")
		assert.Contains(t, raw, "Subject: Staff Recognition  Bcc: evil@example.com\r\n")
		assert.Contains(t, raw, "Date: Mon, 08 Jan 2024 09:00:00 +0000\r\n")
		assert.True(t, strings.HasSuffix(raw, "\r\n\r\nline one\r\nline two"))
	})

	t.Run("no recipients", func(t *testing.T) {
		m := newSMTPMailer(cfg, func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send should not be called")
			return nil
		}, zap.NewNop())

		assert.ErrorIs(t, m.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipients)
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		m := newSMTPMailer(SMTPConfig{Host: "localhost", Port: 25, From: "a@b"}, func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
			assert.Nil(t, a)
			return boom
		}, zap.NewNop())

		err := m.Send(context.Background(), Message{To: []string{"x@y"}})
		assert.ErrorIs(t, err, boom)
	})
}

func TestRecognitionEmail(t *testing.T) {
	msg := RecognitionEmail([]string{"team@example.edu"}, events.RecognitionWinnerSelectedEvent{
		PeriodKind: "weekly",
		PeriodKey:  "2024-01-06",
		Winners: []events.RecognitionWinner{{
			Framework:     "NORTH",
			StaffName:     "Dana Diaz",
			PositionID:    "rd",
			Score:         "8.40",
			MaxScore:      10,
			Justification: "Holistic Well-being & Safety (10/10): ran the fire drill",
		}},
	})

	assert.Equal(t, "Staff Recognition: Week ending January 6, 2024", msg.Subject)
	assert.Contains(t, msg.Body, "No ASCEND recognition awarded this period.")
	assert.Contains(t, msg.Body, "Recipient: Dana Diaz (Residence Director)")
	assert.Contains(t, msg.Body, "Score: 8.40/10")
	assert.Less(t, strings.Index(msg.Body, "ASCEND"), strings.Index(msg.Body, "NORTH"))
}
