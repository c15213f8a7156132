package escalation

import (
	"context"
	"sync"
	"time"
)

var _ scanner = &scannerMock{}

type scannerMock struct {
	RunScanFunc func(ctx context.Context, now time.Time) (ScanResult, error)

	calls struct {
		RunScan []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockRunScan sync.RWMutex
}

func (mock *scannerMock) RunScan(ctx context.Context, now time.Time) (ScanResult, error) {
	if mock.RunScanFunc == nil {
		panic("scannerMock.RunScanFunc: method is nil but scanner.RunScan was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockRunScan.Lock()
	mock.calls.RunScan = append(mock.calls.RunScan, callInfo)
	mock.lockRunScan.Unlock()
	return mock.RunScanFunc(ctx, now)
}

func (mock *scannerMock) RunScanCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockRunScan.RLock()
	calls := mock.calls.RunScan
	mock.lockRunScan.RUnlock()
	return calls
}
