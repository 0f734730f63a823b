package economy

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// MockAccruer implements Accruer for testing
type MockAccruer struct {
	mock.Mock
}

func (m *MockAccruer) Accrue(ctx context.Context) (*domain.RewardReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardReport), args.Error(1)
}
