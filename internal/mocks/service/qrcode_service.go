package service

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockQRCodeService is a mock type for the QRCodeService type
type MockQRCodeService struct {
	mock.Mock
}

type MockQRCodeService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockQRCodeService) EXPECT() *MockQRCodeService_Expecter {
	return &MockQRCodeService_Expecter{mock: &_m.Mock}
}

// GenerateTipQR provides a mock function with given fields: recipientID
func (_m *MockQRCodeService) GenerateTipQR(recipientID uuid.UUID) ([]byte, error) {
	ret := _m.Called(recipientID)

	var png []byte
	if ret.Get(0) != nil {
		png = ret.Get(0).([]byte)
	}

	return png, ret.Error(1)
}

// MockQRCodeService_GenerateTipQR_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GenerateTipQR'
type MockQRCodeService_GenerateTipQR_Call struct {
	*mock.Call
}

// GenerateTipQR is a helper method to define mock.On call
func (_e *MockQRCodeService_Expecter) GenerateTipQR(recipientID interface{}) *MockQRCodeService_GenerateTipQR_Call {
	return &MockQRCodeService_GenerateTipQR_Call{Call: _e.mock.On("GenerateTipQR", recipientID)}
}

func (_c *MockQRCodeService_GenerateTipQR_Call) Return(png []byte, err error) *MockQRCodeService_GenerateTipQR_Call {
	_c.Call.Return(png, err)

	return _c
}

// ParseTipQR provides a mock function with given fields: payload
func (_m *MockQRCodeService) ParseTipQR(payload string) (uuid.UUID, error) {
	ret := _m.Called(payload)

	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

// MockQRCodeService_ParseTipQR_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ParseTipQR'
type MockQRCodeService_ParseTipQR_Call struct {
	*mock.Call
}

// ParseTipQR is a helper method to define mock.On call
func (_e *MockQRCodeService_Expecter) ParseTipQR(payload interface{}) *MockQRCodeService_ParseTipQR_Call {
	return &MockQRCodeService_ParseTipQR_Call{Call: _e.mock.On("ParseTipQR", payload)}
}

func (_c *MockQRCodeService_ParseTipQR_Call) Return(recipientID uuid.UUID, err error) *MockQRCodeService_ParseTipQR_Call {
	_c.Call.Return(recipientID, err)

	return _c
}

// NewMockQRCodeService creates a new instance of MockQRCodeService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockQRCodeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
