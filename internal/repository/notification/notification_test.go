package notification

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"kledje/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailjetRepository_SendEmail(t *testing.T) {
	var got payloadSendEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/send", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{
		MailjetBaseURL:           srv.URL,
		MailjetBasicAuthUsername: "key",
		MailjetBasicAuthPassword: "secret",
		MailjetSenderEmail:       "orders@kledje.com",
		MailjetSenderName:        "Kledje Store",
	})

	err := repo.SendEmail(context.Background(), domain.EmailMessage{
		ToName:  "Mona Adel",
		ToEmail: "mona@example.com",
		Subject: "تأكيد الطلب #KLD-1",
		HTML:    "<p>شكراً</p>",
	})
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	assert.Equal(t, "orders@kledje.com", got.Messages[0].From.Email)
	assert.Equal(t, []To{{Email: "mona@example.com", Name: "Mona Adel"}}, got.Messages[0].To)
	assert.Equal(t, "<p>شكراً</p>", got.Messages[0].HTMLPart)
}

func TestMailjetRepository_NegativeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorMessage":"bad key"}`))
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{MailjetBaseURL: srv.URL})
	err := repo.SendEmail(context.Background(), domain.EmailMessage{ToEmail: "mona@example.com"})
	assert.EqualError(t, err, "mailer service return negative response 401")
}

func TestSMTPRepository_BuildMessage(t *testing.T) {
	repo := NewSMTPRepository(SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		SenderEmail: "orders@kledje.com",
		SenderName:  "Kledje Store",
	})

	m := repo.buildMessage(domain.EmailMessage{
		ToEmail: "mona@example.com",
		Subject: "تحديث حالة الطلب #KLD-1",
		HTML:    "<p>تم الشحن</p>",
	})

	assert.Equal(t, []string{"mona@example.com"}, m.GetHeader("To"))
	require.Len(t, m.GetHeader("Subject"), 1)
	subject, err := new(mime.WordDecoder).DecodeHeader(m.GetHeader("Subject")[0])
	require.NoError(t, err)
	assert.Equal(t, "تحديث حالة الطلب #KLD-1", subject)
	assert.Len(t, m.GetHeader("From"), 1)
	assert.Contains(t, m.GetHeader("From")[0], "orders@kledje.com")
}

func TestSMTPRepository_CancelledContext(t *testing.T) {
	repo := NewSMTPRepository(SMTPConfig{Host: "smtp.example.com", Port: 587})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.SendEmail(ctx, domain.EmailMessage{ToEmail: "mona@example.com"}), context.Canceled)
}
