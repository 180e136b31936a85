package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"startask/internal/domain"
)

type ReportService struct {
	mock.Mock
}

func (m *ReportService) ArchiveSweep(ctx context.Context, result *domain.SweepResult) (string, error) {
	args := m.Called(ctx, result)
	return args.String(0), args.Error(1)
}
