package reports

import (
	"context"

	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetReport(ctx context.Context, id string) (domain.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockClient) UploadReport(ctx context.Context, req client.UploadRequest) (domain.Report, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockClient) GetDashboardUser(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}
