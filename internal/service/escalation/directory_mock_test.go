package escalation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ directory = &directoryMock{}

type directoryMock struct {
	FindActiveAdminInDepartmentFunc   func(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error)
	FindAnyActiveUserInDepartmentFunc func(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error)
	ListActiveAdminsFunc              func(ctx context.Context) ([]uuid.UUID, error)
	ListActiveManagersFunc            func(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		FindActiveAdminInDepartment []struct {
			Ctx          context.Context
			DepartmentID uuid.UUID
		}
		FindAnyActiveUserInDepartment []struct {
			Ctx          context.Context
			DepartmentID uuid.UUID
		}
		ListActiveAdmins []struct {
			Ctx context.Context
		}
		ListActiveManagers []struct {
			Ctx          context.Context
			DepartmentID uuid.UUID
		}
	}
	lockFindActiveAdminInDepartment   sync.RWMutex
	lockFindAnyActiveUserInDepartment sync.RWMutex
	lockListActiveAdmins              sync.RWMutex
	lockListActiveManagers            sync.RWMutex
}

func (mock *directoryMock) FindActiveAdminInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	if mock.FindActiveAdminInDepartmentFunc == nil {
		panic("directoryMock.FindActiveAdminInDepartmentFunc: method is nil but directory.FindActiveAdminInDepartment was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		DepartmentID uuid.UUID
	}{Ctx: ctx, DepartmentID: departmentID}
	mock.lockFindActiveAdminInDepartment.Lock()
	mock.calls.FindActiveAdminInDepartment = append(mock.calls.FindActiveAdminInDepartment, callInfo)
	mock.lockFindActiveAdminInDepartment.Unlock()
	return mock.FindActiveAdminInDepartmentFunc(ctx, departmentID)
}

func (mock *directoryMock) FindActiveAdminInDepartmentCalls() []struct {
	Ctx          context.Context
	DepartmentID uuid.UUID
} {
	mock.lockFindActiveAdminInDepartment.RLock()
	calls := mock.calls.FindActiveAdminInDepartment
	mock.lockFindActiveAdminInDepartment.RUnlock()
	return calls
}

func (mock *directoryMock) FindAnyActiveUserInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	if mock.FindAnyActiveUserInDepartmentFunc == nil {
		panic("directoryMock.FindAnyActiveUserInDepartmentFunc: method is nil but directory.FindAnyActiveUserInDepartment was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		DepartmentID uuid.UUID
	}{Ctx: ctx, DepartmentID: departmentID}
	mock.lockFindAnyActiveUserInDepartment.Lock()
	mock.calls.FindAnyActiveUserInDepartment = append(mock.calls.FindAnyActiveUserInDepartment, callInfo)
	mock.lockFindAnyActiveUserInDepartment.Unlock()
	return mock.FindAnyActiveUserInDepartmentFunc(ctx, departmentID)
}

func (mock *directoryMock) FindAnyActiveUserInDepartmentCalls() []struct {
	Ctx          context.Context
	DepartmentID uuid.UUID
} {
	mock.lockFindAnyActiveUserInDepartment.RLock()
	calls := mock.calls.FindAnyActiveUserInDepartment
	mock.lockFindAnyActiveUserInDepartment.RUnlock()
	return calls
}

func (mock *directoryMock) ListActiveAdmins(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListActiveAdminsFunc == nil {
		panic("directoryMock.ListActiveAdminsFunc: method is nil but directory.ListActiveAdmins was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListActiveAdmins.Lock()
	mock.calls.ListActiveAdmins = append(mock.calls.ListActiveAdmins, callInfo)
	mock.lockListActiveAdmins.Unlock()
	return mock.ListActiveAdminsFunc(ctx)
}

func (mock *directoryMock) ListActiveAdminsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListActiveAdmins.RLock()
	calls := mock.calls.ListActiveAdmins
	mock.lockListActiveAdmins.RUnlock()
	return calls
}

func (mock *directoryMock) ListActiveManagers(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListActiveManagersFunc == nil {
		panic("directoryMock.ListActiveManagersFunc: method is nil but directory.ListActiveManagers was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		DepartmentID uuid.UUID
	}{Ctx: ctx, DepartmentID: departmentID}
	mock.lockListActiveManagers.Lock()
	mock.calls.ListActiveManagers = append(mock.calls.ListActiveManagers, callInfo)
	mock.lockListActiveManagers.Unlock()
	return mock.ListActiveManagersFunc(ctx, departmentID)
}

func (mock *directoryMock) ListActiveManagersCalls() []struct {
	Ctx          context.Context
	DepartmentID uuid.UUID
} {
	mock.lockListActiveManagers.RLock()
	calls := mock.calls.ListActiveManagers
	mock.lockListActiveManagers.RUnlock()
	return calls
}
