package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CountUnreadFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	CreateFunc      func(ctx context.Context, n domain.Notification) (*domain.Notification, bool, error)
	ListUnreadFunc  func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkReadFunc    func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, now time.Time) (int, error)

	calls struct {
		CountUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			N   domain.Notification
		}
		ListUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
		MarkRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Ids    []uuid.UUID
			Now    time.Time
		}
	}
	lockCountUnread sync.RWMutex
	lockCreate      sync.RWMutex
	lockListUnread  sync.RWMutex
	lockMarkRead    sync.RWMutex
}

func (mock *notificationRepoMock) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc: method is nil but notificationRepo.CountUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountUnread.Lock()
	mock.calls.CountUnread = append(mock.calls.CountUnread, callInfo)
	mock.lockCountUnread.Unlock()
	return mock.CountUnreadFunc(ctx, userID)
}

func (mock *notificationRepoMock) CountUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountUnread.RLock()
	calls := mock.calls.CountUnread
	mock.lockCountUnread.RUnlock()
	return calls
}

func (mock *notificationRepoMock) Create(ctx context.Context, n domain.Notification) (*domain.Notification, bool, error) {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *notificationRepoMock) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if mock.ListUnreadFunc == nil {
		panic("notificationRepoMock.ListUnreadFunc: method is nil but notificationRepo.ListUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
	}{Ctx: ctx, UserID: userID, Limit: limit}
	mock.lockListUnread.Lock()
	mock.calls.ListUnread = append(mock.calls.ListUnread, callInfo)
	mock.lockListUnread.Unlock()
	return mock.ListUnreadFunc(ctx, userID, limit)
}

func (mock *notificationRepoMock) ListUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListUnread.RLock()
	calls := mock.calls.ListUnread
	mock.lockListUnread.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, now time.Time) (int, error) {
	if mock.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc: method is nil but notificationRepo.MarkRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Ids    []uuid.UUID
		Now    time.Time
	}{Ctx: ctx, UserID: userID, Ids: ids, Now: now}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, userID, ids, now)
}

func (mock *notificationRepoMock) MarkReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Ids    []uuid.UUID
	Now    time.Time
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}
