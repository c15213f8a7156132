package routing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ logRepo = &logRepoMock{}

type logRepoMock struct {
	AppendFunc  func(ctx context.Context, e domain.DistributionLogEntry) (domain.DistributionLogEntry, error)
	HistoryFunc func(ctx context.Context, distributionID uuid.UUID) ([]domain.DistributionLogEntry, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.DistributionLogEntry
		}
		History []struct {
			Ctx            context.Context
			DistributionID uuid.UUID
		}
	}
	lockAppend  sync.RWMutex
	lockHistory sync.RWMutex
}

func (mock *logRepoMock) Append(ctx context.Context, e domain.DistributionLogEntry) (domain.DistributionLogEntry, error) {
	if mock.AppendFunc == nil {
		panic("logRepoMock.AppendFunc: method is nil but logRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.DistributionLogEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *logRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.DistributionLogEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *logRepoMock) History(ctx context.Context, distributionID uuid.UUID) ([]domain.DistributionLogEntry, error) {
	if mock.HistoryFunc == nil {
		panic("logRepoMock.HistoryFunc: method is nil but logRepo.History was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		DistributionID uuid.UUID
	}{Ctx: ctx, DistributionID: distributionID}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, distributionID)
}

func (mock *logRepoMock) HistoryCalls() []struct {
	Ctx            context.Context
	DistributionID uuid.UUID
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
