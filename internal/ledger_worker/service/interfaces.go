package service

import (
	"context"
	"errors"

	"github.com/pettycash-ledger/internal/domain/ledger"
)

// ErrUnprocessableEvent marks an event that will never succeed, however often it is retried
var ErrUnprocessableEvent = errors.New("unprocessable ledger event")

// ArchiveService keeps the report archive in step with snapshot lifecycle events
type ArchiveService interface {
	HandleEvent(ctx context.Context, event *ledger.Event) error
}
