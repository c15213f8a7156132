package numbering

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	InTxFunc    func(ctx context.Context) bool
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		InTx []struct {
			Ctx context.Context
		}
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockInTx    sync.RWMutex
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) InTx(ctx context.Context) bool {
	if mock.InTxFunc == nil {
		panic("txManagerMock.InTxFunc: method is nil but txManager.InTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockInTx.Lock()
	mock.calls.InTx = append(mock.calls.InTx, callInfo)
	mock.lockInTx.Unlock()
	return mock.InTxFunc(ctx)
}

func (mock *txManagerMock) InTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockInTx.RLock()
	calls := mock.calls.InTx
	mock.lockInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
