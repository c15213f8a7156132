package escalation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ distributionRepo = &distributionRepoMock{}

type distributionRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	ListOverdueFunc  func(ctx context.Context, now time.Time, policy domain.EscalationPolicy, limit int) ([]domain.Distribution, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error)

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListOverdue []struct {
			Ctx    context.Context
			Now    time.Time
			Policy domain.EscalationPolicy
			Limit  int
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.DistributionUpdate
		}
	}
	lockGetForUpdate sync.RWMutex
	lockListOverdue  sync.RWMutex
	lockUpdate       sync.RWMutex
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

func (mock *distributionRepoMock) ListOverdue(ctx context.Context, now time.Time, policy domain.EscalationPolicy, limit int) ([]domain.Distribution, error) {
	if mock.ListOverdueFunc == nil {
		panic("distributionRepoMock.ListOverdueFunc: method is nil but distributionRepo.ListOverdue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Now    time.Time
		Policy domain.EscalationPolicy
		Limit  int
	}{Ctx: ctx, Now: now, Policy: policy, Limit: limit}
	mock.lockListOverdue.Lock()
	mock.calls.ListOverdue = append(mock.calls.ListOverdue, callInfo)
	mock.lockListOverdue.Unlock()
	return mock.ListOverdueFunc(ctx, now, policy, limit)
}

func (mock *distributionRepoMock) ListOverdueCalls() []struct {
	Ctx    context.Context
	Now    time.Time
	Policy domain.EscalationPolicy
	Limit  int
} {
	mock.lockListOverdue.RLock()
	calls := mock.calls.ListOverdue
	mock.lockListOverdue.RUnlock()
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
