// Package document registers correspondence under a sequential reference number.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
	"github.com/heartmarshall/correspondence-backend/pkg/ctxutil"
)

const (
	maxSubjectLength  = 1000
	defaultTrailLimit = 50
	maxTrailLimit     = 500
)

type documentRepo interface {
	Create(ctx context.Context, doc domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	GetByNumber(ctx context.Context, scope, number string) (*domain.Document, error)
}

type numberAllocator interface {
	Create(ctx context.Context, scope string, year int, fn func(ctx context.Context, number string) error) (string, error)
}

type auditStore interface {
	Log(ctx context.Context, e domain.AuditEvent) error
	ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.AuditEvent, error)
}

// Service registers documents.
type Service struct {
	docs         documentRepo
	numbers      numberAllocator
	audit        auditStore
	defaultScope string
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a new document Service.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	numbers numberAllocator,
	audit auditStore,
	cfg config.NumberingConfig,
) *Service {
	return &Service{
		docs:         docs,
		numbers:      numbers,
		audit:        audit,
		defaultScope: cfg.DefaultScope,
		now:          time.Now,
		log:          log.With("service", "document"),
	}
}

// RegisterInput holds the parameters for registering a document.
type RegisterInput struct {
	// Scope partitions the numbering; the configured default applies when empty.
	Scope     string
	Subject   string
	CreatedBy uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	subject := strings.TrimSpace(i.Subject)
	if subject == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}
	if len(subject) > maxSubjectLength {
		errs = append(errs, domain.FieldError{Field: "subject", Message: fmt.Sprintf("max %d characters", maxSubjectLength)})
	}
	if i.CreatedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "created_by", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Register numbers and stores a document, writing a DOCUMENT_REGISTERED
// audit event in the same transaction.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Document, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope := strings.ToUpper(strings.TrimSpace(input.Scope))
	if scope == "" {
		scope = strings.ToUpper(s.defaultScope)
	}
	now := s.now().UTC()

	var doc *domain.Document
	_, err := s.numbers.Create(ctx, scope, now.Year(), func(ctx context.Context, number string) error {
		created, err := s.docs.Create(ctx, domain.Document{
			ID:        uuid.New(),
			Scope:     scope,
			RegNumber: number,
			Subject:   strings.TrimSpace(input.Subject),
			CreatedBy: input.CreatedBy,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}

		if err := s.audit.Log(ctx, domain.AuditEvent{
			UserID:      &input.CreatedBy,
			DocumentID:  &created.ID,
			ActionType:  domain.AuditDocumentRegistered,
			Description: "Document registered as " + created.RegNumber,
			SourceIP:    ctxutil.SourceIPFromCtx(ctx),
		}); err != nil {
			return fmt.Errorf("audit document registration: %w", err)
		}

		doc = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}

	s.log.InfoContext(ctx, "document registered",
		slog.String("document_id", doc.ID.String()),
		slog.String("reg_number", doc.RegNumber),
		slog.String("scope", scope),
	)

	return doc, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// GetByNumber looks a document up by its reference number. The number is
// canonicalised first, so "2025/123" finds "2025/000123"; an empty scope
// means the configured default.
func (s *Service) GetByNumber(ctx context.Context, scope, number string) (*domain.Document, error) {
	year, n, ok := domain.ParseNumber(strings.TrimSpace(number))
	if !ok {
		return nil, domain.NewValidationError("number", "must look like 2025/000123")
	}

	scope = strings.ToUpper(strings.TrimSpace(scope))
	if scope == "" {
		scope = strings.ToUpper(s.defaultScope)
	}

	doc, err := s.docs.GetByNumber(ctx, scope, domain.FormatNumber(year, n))
	if err != nil {
		return nil, fmt.Errorf("get document by number: %w", err)
	}
	return doc, nil
}

// AuditTrail returns the newest audit events of a document. limit <= 0
// selects the default page size.
func (s *Service) AuditTrail(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditEvent, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if limit <= 0 {
		limit = defaultTrailLimit
	}
	limit = min(limit, maxTrailLimit)

	if _, err := s.docs.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	events, err := s.audit.ListByDocument(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
