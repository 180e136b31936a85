package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"startask/internal/domain"
	"startask/internal/service/deadline"
	"startask/internal/service/report"
)

type DeadlineService struct {
	mock.Mock
}

func (m *DeadlineService) RunSweep(ctx context.Context) (*domain.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

func (m *DeadlineService) LastResult() *domain.SweepResult {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.SweepResult)
}

func (m *DeadlineService) SetLocker(locker deadline.Locker) {
	m.Called(locker)
}

func (m *DeadlineService) SetArchiver(archiver report.Service) {
	m.Called(archiver)
}
