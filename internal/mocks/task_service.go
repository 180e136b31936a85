package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"startask/internal/domain"
)

type TaskService struct {
	mock.Mock
}

func (m *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *TaskService) Create(ctx context.Context, actor domain.Principal, projectID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, actor, projectID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskService) Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *TaskService) Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskService) UpdateStatus(ctx context.Context, actor domain.Principal, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
