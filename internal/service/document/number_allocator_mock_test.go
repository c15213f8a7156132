package document

import (
	"context"
	"sync"
)

var _ numberAllocator = &numberAllocatorMock{}

type numberAllocatorMock struct {
	CreateFunc func(ctx context.Context, scope string, year int, fn func(ctx context.Context, number string) error) (string, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Scope string
			Year  int
			Fn    func(ctx context.Context, number string) error
		}
	}
	lockCreate sync.RWMutex
}

func (mock *numberAllocatorMock) Create(ctx context.Context, scope string, year int, fn func(ctx context.Context, number string) error) (string, error) {
	if mock.CreateFunc == nil {
		panic("numberAllocatorMock.CreateFunc: method is nil but numberAllocator.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope string
		Year  int
		Fn    func(ctx context.Context, number string) error
	}{Ctx: ctx, Scope: scope, Year: year, Fn: fn}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, scope, year, fn)
}

func (mock *numberAllocatorMock) CreateCalls() []struct {
	Ctx   context.Context
	Scope string
	Year  int
	Fn    func(ctx context.Context, number string) error
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
