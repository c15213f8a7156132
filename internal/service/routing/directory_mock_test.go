package routing

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ directory = &directoryMock{}

type directoryMock struct {
	IsActiveMemberFunc func(ctx context.Context, userID uuid.UUID, departmentID uuid.UUID) (bool, error)

	calls struct {
		IsActiveMember []struct {
			Ctx          context.Context
			UserID       uuid.UUID
			DepartmentID uuid.UUID
		}
	}
	lockIsActiveMember sync.RWMutex
}

func (mock *directoryMock) IsActiveMember(ctx context.Context, userID uuid.UUID, departmentID uuid.UUID) (bool, error) {
	if mock.IsActiveMemberFunc == nil {
		panic("directoryMock.IsActiveMemberFunc: method is nil but directory.IsActiveMember was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		UserID       uuid.UUID
		DepartmentID uuid.UUID
	}{Ctx: ctx, UserID: userID, DepartmentID: departmentID}
	mock.lockIsActiveMember.Lock()
	mock.calls.IsActiveMember = append(mock.calls.IsActiveMember, callInfo)
	mock.lockIsActiveMember.Unlock()
	return mock.IsActiveMemberFunc(ctx, userID, departmentID)
}

func (mock *directoryMock) IsActiveMemberCalls() []struct {
	Ctx          context.Context
	UserID       uuid.UUID
	DepartmentID uuid.UUID
} {
	mock.lockIsActiveMember.RLock()
	calls := mock.calls.IsActiveMember
	mock.lockIsActiveMember.RUnlock()
	return calls
}
