// Package mocks provides test doubles for the google client.
package mocks

import (
	"context"
	"encoding/json"

	google "github.com/sells-group/zittyzoom/pkg/google"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

func (_m *MockClient) raw(ret mock.Arguments) (json.RawMessage, error) {
	var r0 json.RawMessage
	if ret.Get(0) != nil {
		switch v := ret.Get(0).(type) {
		case json.RawMessage:
			r0 = v
		case string:
			r0 = json.RawMessage(v)
		case []byte:
			r0 = json.RawMessage(v)
		}
	}
	return r0, ret.Error(1)
}

// Autocomplete provides a mock function with given fields: ctx, req
func (_m *MockClient) Autocomplete(ctx context.Context, req google.AutocompleteRequest) (json.RawMessage, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Autocomplete")
	}
	return _m.raw(ret)
}

// TextSearch provides a mock function with given fields: ctx, req
func (_m *MockClient) TextSearch(ctx context.Context, req google.TextSearchRequest) (json.RawMessage, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for TextSearch")
	}
	return _m.raw(ret)
}

// NearbySearch provides a mock function with given fields: ctx, req
func (_m *MockClient) NearbySearch(ctx context.Context, req google.NearbySearchRequest) (json.RawMessage, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for NearbySearch")
	}
	return _m.raw(ret)
}

// Details provides a mock function with given fields: ctx, placeID, fields
func (_m *MockClient) Details(ctx context.Context, placeID string, fields []string) (*google.Details, error) {
	ret := _m.Called(ctx, placeID, fields)

	if len(ret) == 0 {
		panic("no return value specified for Details")
	}

	var r0 *google.Details
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) (*google.Details, error)); ok {
		return rf(ctx, placeID, fields)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*google.Details)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// PhotoURL provides a mock function with given fields: reference, maxWidth
func (_m *MockClient) PhotoURL(reference string, maxWidth int) string {
	ret := _m.Called(reference, maxWidth)

	if len(ret) == 0 {
		panic("no return value specified for PhotoURL")
	}
	return ret.String(0)
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
