package numbering

import (
	"context"
	"sync"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ sequenceRepo = &sequenceRepoMock{}

type sequenceRepoMock struct {
	BootstrapFunc func(ctx context.Context, ref domain.SequenceRef) error
	IncrementFunc func(ctx context.Context, sequence string) (int64, error)
	ResyncFunc    func(ctx context.Context, ref domain.SequenceRef) error

	calls struct {
		Bootstrap []struct {
			Ctx context.Context
			Ref domain.SequenceRef
		}
		Increment []struct {
			Ctx      context.Context
			Sequence string
		}
		Resync []struct {
			Ctx context.Context
			Ref domain.SequenceRef
		}
	}
	lockBootstrap sync.RWMutex
	lockIncrement sync.RWMutex
	lockResync    sync.RWMutex
}

func (mock *sequenceRepoMock) Bootstrap(ctx context.Context, ref domain.SequenceRef) error {
	if mock.BootstrapFunc == nil {
		panic("sequenceRepoMock.BootstrapFunc: method is nil but sequenceRepo.Bootstrap was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.SequenceRef
	}{Ctx: ctx, Ref: ref}
	mock.lockBootstrap.Lock()
	mock.calls.Bootstrap = append(mock.calls.Bootstrap, callInfo)
	mock.lockBootstrap.Unlock()
	return mock.BootstrapFunc(ctx, ref)
}

func (mock *sequenceRepoMock) BootstrapCalls() []struct {
	Ctx context.Context
	Ref domain.SequenceRef
} {
	mock.lockBootstrap.RLock()
	calls := mock.calls.Bootstrap
	mock.lockBootstrap.RUnlock()
	return calls
}

func (mock *sequenceRepoMock) Increment(ctx context.Context, sequence string) (int64, error) {
	if mock.IncrementFunc == nil {
		panic("sequenceRepoMock.IncrementFunc: method is nil but sequenceRepo.Increment was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Sequence string
	}{Ctx: ctx, Sequence: sequence}
	mock.lockIncrement.Lock()
	mock.calls.Increment = append(mock.calls.Increment, callInfo)
	mock.lockIncrement.Unlock()
	return mock.IncrementFunc(ctx, sequence)
}

func (mock *sequenceRepoMock) IncrementCalls() []struct {
	Ctx      context.Context
	Sequence string
} {
	mock.lockIncrement.RLock()
	calls := mock.calls.Increment
	mock.lockIncrement.RUnlock()
	return calls
}

func (mock *sequenceRepoMock) Resync(ctx context.Context, ref domain.SequenceRef) error {
	if mock.ResyncFunc == nil {
		panic("sequenceRepoMock.ResyncFunc: method is nil but sequenceRepo.Resync was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.SequenceRef
	}{Ctx: ctx, Ref: ref}
	mock.lockResync.Lock()
	mock.calls.Resync = append(mock.calls.Resync, callInfo)
	mock.lockResync.Unlock()
	return mock.ResyncFunc(ctx, ref)
}

func (mock *sequenceRepoMock) ResyncCalls() []struct {
	Ctx context.Context
	Ref domain.SequenceRef
} {
	mock.lockResync.RLock()
	calls := mock.calls.Resync
	mock.lockResync.RUnlock()
	return calls
}
