// Package numbering allocates gap-free, per-scope document reference numbers.
package numbering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

type sequenceRepo interface {
	Bootstrap(ctx context.Context, ref domain.SequenceRef) error
	Resync(ctx context.Context, ref domain.SequenceRef) error
	Increment(ctx context.Context, sequence string) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	InTx(ctx context.Context) bool
}

// ErrNoTransaction is returned by Next when ctx carries no transaction. A
// number committed without the entity it numbers would leave a gap.
var ErrNoTransaction = errors.New("numbering: allocation requires a transaction in context")

// ErrNestedTransaction is returned by Create when ctx already carries a
// transaction.
var ErrNestedTransaction = errors.New("numbering: create must start its own transaction")

// Allocator issues reference numbers of the form "2025/000123".
type Allocator struct {
	seq         sequenceRepo
	tx          txManager
	maxAttempts int
	log         *slog.Logger
}

// NewAllocator creates a new Allocator.
func NewAllocator(
	log *slog.Logger,
	seq sequenceRepo,
	tx txManager,
	cfg config.NumberingConfig,
) *Allocator {
	return &Allocator{
		seq:         seq,
		tx:          tx,
		maxAttempts: max(cfg.MaxAttempts, 1),
		log:         log.With("service", "numbering"),
	}
}

// Next allocates the next number of scope in year inside the transaction
// carried by ctx, so the number is released if that transaction rolls back.
// It fails with ErrNoTransaction outside a transaction.
func (a *Allocator) Next(ctx context.Context, scope string, year int) (string, error) {
	ref, err := newRef(scope, year)
	if err != nil {
		return "", err
	}
	if !a.tx.InTx(ctx) {
		return "", ErrNoTransaction
	}
	return a.next(ctx, ref, false)
}

// Create allocates a number and passes it to fn inside one transaction.
// If fn fails with *domain.NumberTakenError the whole transaction is
// discarded and retried with a freshly derived number, up to the configured
// number of attempts; exhaustion yields an error wrapping domain.ErrConflict.
// Any other error is returned as is.
//
// A unique violation aborts the Postgres transaction, so a retry needs a new
// one: Create fails with ErrNestedTransaction when ctx already carries one.
func (a *Allocator) Create(
	ctx context.Context,
	scope string,
	year int,
	fn func(ctx context.Context, number string) error,
) (string, error) {
	ref, err := newRef(scope, year)
	if err != nil {
		return "", err
	}
	if a.tx.InTx(ctx) {
		return "", ErrNestedTransaction
	}

	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		var number string
		err := a.tx.RunInTx(ctx, func(txCtx context.Context) error {
			n, err := a.next(txCtx, ref, attempt > 1)
			if err != nil {
				return err
			}
			number = n
			return fn(txCtx, n)
		})
		if err == nil {
			return number, nil
		}

		var taken *domain.NumberTakenError
		if !errors.As(err, &taken) {
			return "", err
		}
		lastErr = err

		a.log.WarnContext(ctx, "reference number collision, retrying",
			slog.String("scope", ref.Scope),
			slog.String("number", taken.Number),
			slog.Int("attempt", attempt),
		)
	}

	return "", fmt.Errorf("allocate %s number after %d attempts: %w (last error: %v)",
		ref.Sequence, a.maxAttempts, domain.ErrConflict, lastErr)
}

func (a *Allocator) next(ctx context.Context, ref domain.SequenceRef, resync bool) (string, error) {
	if err := a.seq.Bootstrap(ctx, ref); err != nil {
		return "", fmt.Errorf("bootstrap sequence %s: %w", ref.Sequence, err)
	}
	if resync {
		if err := a.seq.Resync(ctx, ref); err != nil {
			return "", fmt.Errorf("resync sequence %s: %w", ref.Sequence, err)
		}
	}
	n, err := a.seq.Increment(ctx, ref.Sequence)
	if err != nil {
		return "", fmt.Errorf("increment sequence %s: %w", ref.Sequence, err)
	}
	return ref.Format(n), nil
}

func newRef(scope string, year int) (domain.SequenceRef, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(scope) == "" {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "required"})
	}
	if year < 1000 || year > 9999 {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be a four-digit year"})
	}
	if len(errs) > 0 {
		return domain.SequenceRef{}, domain.NewValidationErrors(errs)
	}
	return domain.NewSequenceRef(scope, year), nil
}
