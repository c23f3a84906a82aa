// Package worker contains the audit worker: it consumes operation
// events from AMQP and appends them to a JSONL audit trail.
package worker

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"fintrack/internal/events"
	"fintrack/internal/log"

	"golang.org/x/sync/errgroup"
)

// auditRecord is one line of the audit trail. The event carries the
// full operation row so the worker needs no access to the ledger.
type auditRecord struct {
	ReceivedAt string                `json:"received_at"`
	Event      events.OperationEvent `json:"event"`
}

// AuditWorker appends every consumed operation event to an append-only
// JSONL file. Handler failures are reported back to the broker so the
// message is redelivered.
type AuditWorker struct {
	client *events.Client
	logger *log.Logger

	mu        sync.Mutex
	file      *os.File
	processed int
}

func NewAuditWorker(client *events.Client, path string, logger *log.Logger) (*AuditWorker, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &AuditWorker{
		client: client,
		file:   file,
		logger: logger.WithComponent(log.ComponentWorker),
	}, nil
}

// Run consumes events until the context is cancelled. The consumer and
// a progress reporter run under one errgroup; either failing stops both.
func (w *AuditWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.client.ConsumeOperationEvents(ctx, w.handle)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				w.mu.Lock()
				processed := w.processed
				w.mu.Unlock()
				w.logger.Info("audit worker alive",
					log.FieldCount, processed)
			}
		}
	})

	return g.Wait()
}

// handle appends one event as a JSONL line and syncs the file so the
// trail survives a crash right after the ack.
func (w *AuditWorker) handle(ev events.OperationEvent) error {
	record := auditRecord{
		ReceivedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Event:      ev,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(line); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	w.processed++

	w.logger.Debug("audit record written",
		log.FieldAction, ev.Action,
		log.FieldOperationID, ev.ID.String())
	return nil
}

// Processed reports how many events have been written.
func (w *AuditWorker) Processed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed
}

func (w *AuditWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
