package imap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multipartMessage = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com, Carol <carol@example.com>\r\n" +
	"Subject: Quarterly numbers\r\n" +
	"Date: Mon, 02 Jan 2006 15:04:05 -0700\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=sep\r\n" +
	"\r\n" +
	"--sep\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"plain numbers\r\n" +
	"--sep\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>numbers</p>\r\n" +
	"--sep--\r\n"

const plainMessage = "From: alice@example.com\r\n" +
	"To: bob@example.com\r\n" +
	"Date: Tue, 03 Jan 2006 10:00:00 +0000\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"just text\r\n"

func TestParse_PrefersHTML(t *testing.T) {
	email, err := Parse("42", strings.NewReader(multipartMessage))
	require.NoError(t, err)

	assert.Equal(t, "42", email.UID)
	assert.Equal(t, "Quarterly numbers", email.Subject)
	assert.Equal(t, "alice@example.com", email.From)
	assert.Equal(t, []string{"bob@example.com", "carol@example.com"}, email.To)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0700", email.Date)
	assert.Equal(t, "html", email.Extension)
	assert.Contains(t, email.Body, "<p>numbers</p>")

	md := email.Metadata()
	assert.Equal(t, []string{"subject", "from", "to", "date", "uid"}, md.Keys())
	to, _ := md.Get("to")
	assert.Equal(t, "bob@example.com, carol@example.com", to)
}

func TestParse_FallsBackToText(t *testing.T) {
	email, err := Parse("7", strings.NewReader(plainMessage))
	require.NoError(t, err)

	assert.Equal(t, "txt", email.Extension)
	assert.Contains(t, email.Body, "just text")

	subject, _ := email.Metadata().Get("subject")
	assert.Equal(t, NoSubject, subject)
}
