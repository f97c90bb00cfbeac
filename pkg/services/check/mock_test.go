package check

import (
	"context"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/stretchr/testify/mock"
)

type mockAPIClient struct {
	mock.Mock
}

func (m *mockAPIClient) FirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.FirmwareStatus), args.Error(1)
}

func (m *mockAPIClient) RefreshFirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.FirmwareStatus), args.Error(1)
}

func (m *mockAPIClient) SystemStatus(ctx context.Context) (*api.SystemStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SystemStatus), args.Error(1)
}

func (m *mockAPIClient) SearchServices(ctx context.Context) (*api.ServiceSearch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ServiceSearch), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
