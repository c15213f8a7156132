package document

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc      func(ctx context.Context, doc domain.Document) (*domain.Document, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	GetByNumberFunc func(ctx context.Context, scope string, number string) (*domain.Document, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Doc domain.Document
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByNumber []struct {
			Ctx    context.Context
			Scope  string
			Number string
		}
	}
	lockCreate      sync.RWMutex
	lockGetByID     sync.RWMutex
	lockGetByNumber sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Doc domain.Document
	}{Ctx: ctx, Doc: doc}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, doc)
}

func (mock *documentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Doc domain.Document
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *documentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *documentRepoMock) GetByNumber(ctx context.Context, scope string, number string) (*domain.Document, error) {
	if mock.GetByNumberFunc == nil {
		panic("documentRepoMock.GetByNumberFunc: method is nil but documentRepo.GetByNumber was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Scope  string
		Number string
	}{Ctx: ctx, Scope: scope, Number: number}
	mock.lockGetByNumber.Lock()
	mock.calls.GetByNumber = append(mock.calls.GetByNumber, callInfo)
	mock.lockGetByNumber.Unlock()
	return mock.GetByNumberFunc(ctx, scope, number)
}

func (mock *documentRepoMock) GetByNumberCalls() []struct {
	Ctx    context.Context
	Scope  string
	Number string
} {
	mock.lockGetByNumber.RLock()
	calls := mock.calls.GetByNumber
	mock.lockGetByNumber.RUnlock()
	return calls
}
