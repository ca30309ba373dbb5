package webhook

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockDisabler struct {
	mock.Mock
}

func (m *MockDisabler) Disable(ctx context.Context, seconds int) (string, error) {
	ret := m.Called(ctx, seconds)
	return ret.String(0), ret.Error(1)
}
