package mocks

import (
	controller "github.com/mouse-blink/hendrix/internal/controller"
	model "github.com/mouse-blink/hendrix/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockUI is a mock type for the UI type
type MockUI struct {
	mock.Mock
}

// Close provides a mock function with no fields
func (_m *MockUI) Close() {
	_m.Called()
}

// DisplayFileCompleted provides a mock function with given fields: result
func (_m *MockUI) DisplayFileCompleted(result model.FileResult) {
	_m.Called(result)
}

// DisplayFileStarted provides a mock function with given fields: origin, worker
func (_m *MockUI) DisplayFileStarted(origin model.Origin, worker int) {
	_m.Called(origin, worker)
}

// DisplayInputs provides a mock function with given fields: suppliers
func (_m *MockUI) DisplayInputs(suppliers []model.BytecodeSupplier) {
	_m.Called(suppliers)
}

// DisplayMappings provides a mock function with given fields: mappings
func (_m *MockUI) DisplayMappings(mappings []model.GenericMapping) {
	_m.Called(mappings)
}

// DisplayProviderError provides a mock function with given fields: provider, err
func (_m *MockUI) DisplayProviderError(provider string, err error) {
	_m.Called(provider, err)
}

// DisplayRunInfo provides a mock function with given fields: info
func (_m *MockUI) DisplayRunInfo(info controller.RunInfo) {
	_m.Called(info)
}

// DisplaySummary provides a mock function with given fields: summary
func (_m *MockUI) DisplaySummary(summary model.Summary) {
	_m.Called(summary)
}

// Start provides a mock function with given fields: options
func (_m *MockUI) Start(options ...controller.StartOption) error {
	_va := make([]interface{}, len(options))
	for _i := range options {
		_va[_i] = options[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	if len(ret) == 0 {
		panic("no return value specified for Start")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(...controller.StartOption) error); ok {
		r0 = rf(options...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Wait provides a mock function with no fields
func (_m *MockUI) Wait() {
	_m.Called()
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
