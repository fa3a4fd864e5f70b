// Package audit publishes one record per service command to a NATS subject.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pinctl/pkg/errors"
	"pinctl/pkg/logging"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is used when no subject is configured
const DefaultSubject = "pinctl.audit"

// Outcome values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Record describes one command invocation. Parameter values are never recorded.
type Record struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Service    string    `json:"service"`
	Operation  string    `json:"operation"`
	Region     string    `json:"region,omitempty"`
	Profile    string    `json:"profile,omitempty"`
	Parameters []string  `json:"parameters"`
	Selector   string    `json:"selector"`
	Started    time.Time `json:"started"`
	DurationMs int64     `json:"duration_ms"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
}

// NewRecord starts a record with a fresh invocation ID
func NewRecord(command, service, operation string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Command:   command,
		Service:   service,
		Operation: operation,
		Started:   time.Now().UTC(),
	}
}

// Finish stamps the duration and outcome
func (r *Record) Finish(err error) {
	r.DurationMs = time.Since(r.Started).Milliseconds()
	r.Outcome = OutcomeSuccess
	if err != nil {
		r.Outcome = OutcomeFailure
		r.Error = err.Error()
	}
}

// Publisher delivers audit records
type Publisher interface {
	Publish(ctx context.Context, rec *Record) error
	Close()
}

// NoopPublisher drops every record
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, rec *Record) error { return nil }
func (NoopPublisher) Close()                                         {}

// conn is the part of *nats.Conn the publisher needs
type conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// NATSPublisher publishes records as JSON messages
type NATSPublisher struct {
	nc      conn
	subject string
	timeout time.Duration
	logger  *logging.Logger
}

// Connect opens a NATS connection. An empty url returns a NoopPublisher.
func Connect(url, subject string, logger *logging.Logger) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	if subject == "" {
		subject = DefaultSubject
	}

	nc, err := nats.Connect(url,
		nats.Name("pinctl"),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(0),
	)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to connect to audit server %s", url), err)
	}

	logger.Debug("Connected to audit server", "url", url, "subject", subject)
	return newNATSPublisher(nc, subject, logger), nil
}

func newNATSPublisher(nc conn, subject string, logger *logging.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, subject: subject, timeout: 2 * time.Second, logger: logger}
}

// Publish sends rec and waits for the server to acknowledge the flush
func (p *NATSPublisher) Publish(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return errors.NewNetworkError("failed to publish audit record", err).WithContext("id", rec.ID)
	}

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := p.nc.FlushTimeout(timeout); err != nil {
		return errors.NewNetworkError("failed to flush audit record", err).WithContext("id", rec.ID)
	}

	p.logger.Debug("Published audit record", "id", rec.ID, "subject", p.subject)
	return nil
}

// Close closes the connection
func (p *NATSPublisher) Close() {
	p.nc.Close()
}
