package routing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ distributionRepo = &distributionRepoMock{}

type distributionRepoMock struct {
	CreateFunc         func(ctx context.Context, d domain.Distribution) (*domain.Distribution, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	GetForUpdateFunc   func(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	ListByDocumentFunc func(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			D   domain.Distribution
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByDocument []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.DistributionUpdate
		}
	}
	lockCreate         sync.RWMutex
	lockGetByID        sync.RWMutex
	lockGetForUpdate   sync.RWMutex
	lockListByDocument sync.RWMutex
	lockUpdate         sync.RWMutex
}

func (mock *distributionRepoMock) Create(ctx context.Context, d domain.Distribution) (*domain.Distribution, error) {
	if mock.CreateFunc == nil {
		panic("distributionRepoMock.CreateFunc: method is nil but distributionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Distribution
	}{Ctx: ctx, D: d}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *distributionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	D   domain.Distribution
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *distributionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Distribution, error) {
	if mock.GetByIDFunc == nil {
		panic("distributionRepoMock.GetByIDFunc: method is nil but distributionRepo.GetByID was just called")
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

func (mock *distributionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *distributionRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Distribution, error) {
	if mock.GetForUpdateFunc == nil {
		panic("distributionRepoMock.GetForUpdateFunc: method is nil but distributionRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *distributionRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *distributionRepoMock) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error) {
	if mock.ListByDocumentFunc == nil {
		panic("distributionRepoMock.ListByDocumentFunc: method is nil but distributionRepo.ListByDocument was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID uuid.UUID
	}{Ctx: ctx, DocumentID: documentID}
	mock.lockListByDocument.Lock()
	mock.calls.ListByDocument = append(mock.calls.ListByDocument, callInfo)
	mock.lockListByDocument.Unlock()
	return mock.ListByDocumentFunc(ctx, documentID)
}

func (mock *distributionRepoMock) ListByDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
} {
	mock.lockListByDocument.RLock()
	calls := mock.calls.ListByDocument
	mock.lockListByDocument.RUnlock()
	return calls
}

func (mock *distributionRepoMock) Update(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error) {
	if mock.UpdateFunc == nil {
		panic("distributionRepoMock.UpdateFunc: method is nil but distributionRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Upd domain.DistributionUpdate
	}{Ctx: ctx, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, upd)
}

func (mock *distributionRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Upd domain.DistributionUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
