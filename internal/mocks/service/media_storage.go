package service

import (
	"context"
	"io"

	domainservice "plaza/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockMediaStorage is a mock type for the MediaStorage type
type MockMediaStorage struct {
	mock.Mock
}

type MockMediaStorage_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMediaStorage) EXPECT() *MockMediaStorage_Expecter {
	return &MockMediaStorage_Expecter{mock: &_m.Mock}
}

// Save provides a mock function with given fields: ctx, key, contentType, body
func (_m *MockMediaStorage) Save(ctx context.Context, key string, contentType string, body io.Reader) error {
	ret := _m.Called(ctx, key, contentType, body)

	if rf, ok := ret.Get(0).(func(context.Context, string, string, io.Reader) error); ok {
		return rf(ctx, key, contentType, body)
	}

	return ret.Error(0)
}

// MockMediaStorage_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type MockMediaStorage_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
func (_e *MockMediaStorage_Expecter) Save(ctx interface{}, key interface{}, contentType interface{}, body interface{}) *MockMediaStorage_Save_Call {
	return &MockMediaStorage_Save_Call{Call: _e.mock.On("Save", ctx, key, contentType, body)}
}

func (_c *MockMediaStorage_Save_Call) Run(run func(ctx context.Context, key string, contentType string, body io.Reader)) *MockMediaStorage_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string), args[3].(io.Reader))
	})

	return _c
}

func (_c *MockMediaStorage_Save_Call) Return(err error) *MockMediaStorage_Save_Call {
	_c.Call.Return(err)

	return _c
}

// Open provides a mock function with given fields: ctx, key
func (_m *MockMediaStorage) Open(ctx context.Context, key string) (*domainservice.MediaObject, error) {
	ret := _m.Called(ctx, key)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*domainservice.MediaObject, error)); ok {
		return rf(ctx, key)
	}

	var obj *domainservice.MediaObject
	if ret.Get(0) != nil {
		obj = ret.Get(0).(*domainservice.MediaObject)
	}

	return obj, ret.Error(1)
}

// MockMediaStorage_Open_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Open'
type MockMediaStorage_Open_Call struct {
	*mock.Call
}

// Open is a helper method to define mock.On call
func (_e *MockMediaStorage_Expecter) Open(ctx interface{}, key interface{}) *MockMediaStorage_Open_Call {
	return &MockMediaStorage_Open_Call{Call: _e.mock.On("Open", ctx, key)}
}

func (_c *MockMediaStorage_Open_Call) Return(obj *domainservice.MediaObject, err error) *MockMediaStorage_Open_Call {
	_c.Call.Return(obj, err)

	return _c
}

// Delete provides a mock function with given fields: ctx, key
func (_m *MockMediaStorage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

// MockMediaStorage_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockMediaStorage_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
func (_e *MockMediaStorage_Expecter) Delete(ctx interface{}, key interface{}) *MockMediaStorage_Delete_Call {
	return &MockMediaStorage_Delete_Call{Call: _e.mock.On("Delete", ctx, key)}
}

func (_c *MockMediaStorage_Delete_Call) Return(err error) *MockMediaStorage_Delete_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockMediaStorage creates a new instance of MockMediaStorage. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMediaStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMediaStorage {
	m := &MockMediaStorage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
