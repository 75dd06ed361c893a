// Package service holds testify mocks for the domain service interfaces.
package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextGenerator is a mock type for the TextGenerator type
type MockTextGenerator struct {
	mock.Mock
}

type MockTextGenerator_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTextGenerator) EXPECT() *MockTextGenerator_Expecter {
	return &MockTextGenerator_Expecter{mock: &_m.Mock}
}

// GenerateText provides a mock function with given fields: ctx, prompt
func (_m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	ret := _m.Called(ctx, prompt)

	if rf, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return rf(ctx, prompt)
	}

	return ret.String(0), ret.Error(1)
}

// MockTextGenerator_GenerateText_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GenerateText'
type MockTextGenerator_GenerateText_Call struct {
	*mock.Call
}

// GenerateText is a helper method to define mock.On call
func (_e *MockTextGenerator_Expecter) GenerateText(ctx interface{}, prompt interface{}) *MockTextGenerator_GenerateText_Call {
	return &MockTextGenerator_GenerateText_Call{Call: _e.mock.On("GenerateText", ctx, prompt)}
}

func (_c *MockTextGenerator_GenerateText_Call) Run(run func(ctx context.Context, prompt string)) *MockTextGenerator_GenerateText_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})

	return _c
}

func (_c *MockTextGenerator_GenerateText_Call) Return(reply string, err error) *MockTextGenerator_GenerateText_Call {
	_c.Call.Return(reply, err)

	return _c
}

// NewMockTextGenerator creates a new instance of MockTextGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTextGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTextGenerator {
	m := &MockTextGenerator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
