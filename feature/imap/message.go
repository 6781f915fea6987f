package imap

import (
	"fmt"
	"io"
	"strings"

	"github.com/doughepi/grain/core/ingest"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// NoSubject replaces an empty subject.
const NoSubject = "No Subject"

// Email is a parsed message.
type Email struct {
	UID     string
	Subject string
	From    string
	To      []string
	// Date is the raw Date header.
	Date string
	// Body is the HTML body, or the plain text body when there is no HTML part.
	Body string
	// Extension is "html" or "txt" depending on which body was found.
	Extension string
}

// Metadata returns the metadata an email is synced with.
func (e *Email) Metadata() ingest.Metadata {
	subject := e.Subject
	if subject == "" {
		subject = NoSubject
	}
	return ingest.Metadata{
		{Key: "subject", Value: subject},
		{Key: "from", Value: e.From},
		{Key: "to", Value: strings.Join(e.To, ", ")},
		{Key: "date", Value: e.Date},
		{Key: "uid", Value: e.UID},
	}
}

// Parse reads a full RFC 5322 message.
func Parse(uid string, r io.Reader) (*Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message %s: %w", uid, err)
	}
	defer mr.Close()

	email := &Email{UID: uid, Date: mr.Header.Get("Date")}
	if email.Subject, err = mr.Header.Subject(); err != nil {
		email.Subject = mr.Header.Get("Subject")
	}
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		email.From = from[0].Address
	}
	if to, err := mr.Header.AddressList("To"); err == nil {
		for _, a := range to {
			email.To = append(email.To, a.Address)
		}
	}

	var html, text string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message %s: %w", uid, err)
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		if contentType != "text/html" && contentType != "text/plain" && contentType != "" {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body of message %s: %w", uid, err)
		}
		switch {
		case contentType == "text/html" && html == "":
			html = string(data)
		case contentType != "text/html" && text == "":
			text = string(data)
		}
	}

	switch {
	case html != "":
		email.Body, email.Extension = html, "html"
	case text != "":
		email.Body, email.Extension = text, "txt"
	}
	return email, nil
}
