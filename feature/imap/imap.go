package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/doughepi/grain/core/ingest"

	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"
)

// SourceName is the source tag stamped on email items.
const SourceName = "Email"

// Options configures the mailbox to read.
type Options struct {
	// Server is host or host:port. The port defaults to 993, or 143 when Plaintext is set.
	Server   string
	Email    string
	Password string
	// Mailbox defaults to INBOX.
	Mailbox string
	// Plaintext disables TLS. Only meant for local test servers.
	Plaintext bool
}

// Source syncs every message of one IMAP mailbox.
type Source struct {
	opts   Options
	logger *zap.Logger
}

// New creates an IMAP source.
func New(opts Options, logger *zap.Logger) *Source {
	if opts.Mailbox == "" {
		opts.Mailbox = "INBOX"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{opts: opts, logger: logger}
}

// Name implements ingest.Source.
func (s *Source) Name() string {
	return SourceName
}

// Fetch implements ingest.Source.
func (s *Source) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	emails, err := s.Emails(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]ingest.Candidate, 0, len(emails))
	for _, e := range emails {
		if e.Body == "" {
			s.logger.Debug("Skipping email without a readable body", zap.String("uid", e.UID))
			continue
		}
		s.logger.Debug("Processing email", zap.String("uid", e.UID), zap.String("subject", e.Subject))
		candidates = append(candidates, ingest.Candidate{
			Key:       e.UID,
			Data:      []byte(e.Body),
			Extension: e.Extension,
			Label:     e.UID + " - " + e.Subject,
			Metadata:  e.Metadata(),
		})
	}
	return candidates, nil
}

// Emails logs in, selects the mailbox read-only and fetches every message in it.
func (s *Source) Emails(ctx context.Context) ([]*Email, error) {
	c, err := s.dial()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	// Unblock a fetch in progress when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { c.Terminate() })
	defer stop()

	if err := c.Login(s.opts.Email, s.opts.Password); err != nil {
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	mbox, err := c.Select(s.opts.Mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", s.opts.Mailbox, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	seqset := new(goimap.SeqSet)
	seqset.AddRange(1, mbox.Messages)
	section := &goimap.BodySectionName{Peek: true}
	items := []goimap.FetchItem{goimap.FetchUid, section.FetchItem()}

	messages := make(chan *goimap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var emails []*Email
	var parseErr error
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		email, err := Parse(strconv.FormatUint(uint64(msg.Uid), 10), body)
		if err != nil {
			if parseErr == nil {
				parseErr = err
			}
			continue
		}
		emails = append(emails, email)
	}

	if err := <-done; err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return emails, nil
}

func (s *Source) dial() (*client.Client, error) {
	addr := s.address()
	var (
		c   *client.Client
		err error
	)
	if s.opts.Plaintext {
		c, err = client.Dial(addr)
	} else {
		host, _, _ := net.SplitHostPort(addr)
		c, err = client.DialTLS(addr, &tls.Config{ServerName: host})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return c, nil
}

func (s *Source) address() string {
	if _, _, err := net.SplitHostPort(s.opts.Server); err == nil {
		return s.opts.Server
	}
	port := "993"
	if s.opts.Plaintext {
		port = "143"
	}
	return net.JoinHostPort(s.opts.Server, port)
}
