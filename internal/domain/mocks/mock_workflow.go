package mocks

import (
	context "context"

	domain "github.com/mouse-blink/hendrix/internal/domain"
	model "github.com/mouse-blink/hendrix/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockWorkflow is a mock type for the Workflow type
type MockWorkflow struct {
	mock.Mock
}

// Dump provides a mock function with given fields: path
func (_m *MockWorkflow) Dump(path model.Path) ([]domain.ClassDump, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for Dump")
	}

	var r0 []domain.ClassDump
	var r1 error
	if rf, ok := ret.Get(0).(func(model.Path) ([]domain.ClassDump, error)); ok {
		return rf(path)
	}
	if rf, ok := ret.Get(0).(func(model.Path) []domain.ClassDump); ok {
		r0 = rf(path)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ClassDump)
	}

	if rf, ok := ret.Get(1).(func(model.Path) error); ok {
		r1 = rf(path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: args
func (_m *MockWorkflow) List(args domain.ListArgs) error {
	ret := _m.Called(args)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(domain.ListArgs) error); ok {
		r0 = rf(args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Mappings provides a mock function with given fields: args
func (_m *MockWorkflow) Mappings(args domain.MappingArgs) error {
	ret := _m.Called(args)

	if len(ret) == 0 {
		panic("no return value specified for Mappings")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(domain.MappingArgs) error); ok {
		r0 = rf(args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Run provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
