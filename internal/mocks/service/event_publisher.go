package service

import (
	"context"

	"plaza/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// PublishEconomyEvent provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishEconomyEvent(ctx context.Context, event *entity.EconomyEvent) error {
	ret := _m.Called(ctx, event)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.EconomyEvent) error); ok {
		return rf(ctx, event)
	}

	return ret.Error(0)
}

// MockEventPublisher_PublishEconomyEvent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishEconomyEvent'
type MockEventPublisher_PublishEconomyEvent_Call struct {
	*mock.Call
}

// PublishEconomyEvent is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) PublishEconomyEvent(ctx interface{}, event interface{}) *MockEventPublisher_PublishEconomyEvent_Call {
	return &MockEventPublisher_PublishEconomyEvent_Call{Call: _e.mock.On("PublishEconomyEvent", ctx, event)}
}

func (_c *MockEventPublisher_PublishEconomyEvent_Call) Run(run func(ctx context.Context, event *entity.EconomyEvent)) *MockEventPublisher_PublishEconomyEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.EconomyEvent))
	})

	return _c
}

func (_c *MockEventPublisher_PublishEconomyEvent_Call) Return(err error) *MockEventPublisher_PublishEconomyEvent_Call {
	_c.Call.Return(err)

	return _c
}

// Close provides a mock function with no fields
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

// MockEventPublisher_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockEventPublisher_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) Close() *MockEventPublisher_Close_Call {
	return &MockEventPublisher_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockEventPublisher_Close_Call) Return(err error) *MockEventPublisher_Close_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
