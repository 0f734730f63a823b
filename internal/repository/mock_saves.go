package repository

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSaves is a testify mock of Saves
type MockSaves struct {
	mock.Mock
}

// Load mocks Saves.Load
func (m *MockSaves) Load(ctx context.Context, profileID string) ([]byte, error) {
	args := m.Called(ctx, profileID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// Save mocks Saves.Save
func (m *MockSaves) Save(ctx context.Context, profileID string, data []byte) error {
	return m.Called(ctx, profileID, data).Error(0)
}

// Delete mocks Saves.Delete
func (m *MockSaves) Delete(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

// Ping mocks Saves.Ping
func (m *MockSaves) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
