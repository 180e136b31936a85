package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"startask/internal/domain"
)

type ProjectService struct {
	mock.Mock
}

func (m *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectService) Create(ctx context.Context, actor domain.Principal, input domain.CreateProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectService) Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectService) Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
