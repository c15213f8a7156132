package document

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ auditStore = &auditStoreMock{}

type auditStoreMock struct {
	ListByDocumentFunc func(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.AuditEvent, error)
	LogFunc            func(ctx context.Context, e domain.AuditEvent) error

	calls struct {
		ListByDocument []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
			Limit      int
		}
		Log []struct {
			Ctx context.Context
			E   domain.AuditEvent
		}
	}
	lockListByDocument sync.RWMutex
	lockLog            sync.RWMutex
}

func (mock *auditStoreMock) ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.AuditEvent, error) {
	if mock.ListByDocumentFunc == nil {
		panic("auditStoreMock.ListByDocumentFunc: method is nil but auditStore.ListByDocument was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID uuid.UUID
		Limit      int
	}{Ctx: ctx, DocumentID: documentID, Limit: limit}
	mock.lockListByDocument.Lock()
	mock.calls.ListByDocument = append(mock.calls.ListByDocument, callInfo)
	mock.lockListByDocument.Unlock()
	return mock.ListByDocumentFunc(ctx, documentID, limit)
}

func (mock *auditStoreMock) ListByDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
	Limit      int
} {
	mock.lockListByDocument.RLock()
	calls := mock.calls.ListByDocument
	mock.lockListByDocument.RUnlock()
	return calls
}

func (mock *auditStoreMock) Log(ctx context.Context, e domain.AuditEvent) error {
	if mock.LogFunc == nil {
		panic("auditStoreMock.LogFunc: method is nil but auditStore.Log was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEvent
	}{Ctx: ctx, E: e}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, e)
}

func (mock *auditStoreMock) LogCalls() []struct {
	Ctx context.Context
	E   domain.AuditEvent
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}
