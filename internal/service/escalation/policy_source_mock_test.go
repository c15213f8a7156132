package escalation

import (
	"context"
	"sync"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ policySource = &policySourceMock{}

type policySourceMock struct {
	GetFunc func(ctx context.Context) (domain.EscalationPolicy, error)

	calls struct {
		Get []struct {
			Ctx context.Context
		}
	}
	lockGet sync.RWMutex
}

func (mock *policySourceMock) Get(ctx context.Context) (domain.EscalationPolicy, error) {
	if mock.GetFunc == nil {
		panic("policySourceMock.GetFunc: method is nil but policySource.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx)
}

func (mock *policySourceMock) GetCalls() []struct {
	Ctx context.Context
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
