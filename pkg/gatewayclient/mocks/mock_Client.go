// Package mocks provides test doubles for the gateway client.
package mocks

import (
	"context"
	"encoding/json"

	model "github.com/sells-group/zittyzoom/internal/model"
	gatewayclient "github.com/sells-group/zittyzoom/pkg/gatewayclient"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, req
func (_m *MockClient) Search(ctx context.Context, req gatewayclient.SearchRequest) (json.RawMessage, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	if rf, ok := ret.Get(0).(func(context.Context, gatewayclient.SearchRequest) (json.RawMessage, error)); ok {
		return rf(ctx, req)
	}

	var r0 json.RawMessage
	switch v := ret.Get(0).(type) {
	case json.RawMessage:
		r0 = v
	case string:
		r0 = json.RawMessage(v)
	case []byte:
		r0 = json.RawMessage(v)
	}
	return r0, ret.Error(1)
}

// ReverseGeocode provides a mock function with given fields: ctx, lat, lng
func (_m *MockClient) ReverseGeocode(ctx context.Context, lat float64, lng float64) (*gatewayclient.Place, error) {
	ret := _m.Called(ctx, lat, lng)

	if len(ret) == 0 {
		panic("no return value specified for ReverseGeocode")
	}

	var r0 *gatewayclient.Place
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*gatewayclient.Place)
	}
	return r0, ret.Error(1)
}

// CityHistory provides a mock function with given fields: ctx, city, country
func (_m *MockClient) CityHistory(ctx context.Context, city string, country string) (string, error) {
	ret := _m.Called(ctx, city, country)

	if len(ret) == 0 {
		panic("no return value specified for CityHistory")
	}
	return ret.String(0), ret.Error(1)
}

// CityImage provides a mock function with given fields: ctx, city, country
func (_m *MockClient) CityImage(ctx context.Context, city string, country string) (string, error) {
	ret := _m.Called(ctx, city, country)

	if len(ret) == 0 {
		panic("no return value specified for CityImage")
	}
	return ret.String(0), ret.Error(1)
}

// CityActivities provides a mock function with given fields: ctx, city, country
func (_m *MockClient) CityActivities(ctx context.Context, city string, country string) ([]model.Activity, error) {
	ret := _m.Called(ctx, city, country)

	if len(ret) == 0 {
		panic("no return value specified for CityActivities")
	}

	var r0 []model.Activity
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Activity)
	}
	return r0, ret.Error(1)
}

// Weather provides a mock function with given fields: ctx, lat, lng
func (_m *MockClient) Weather(ctx context.Context, lat float64, lng float64) (*model.Weather, error) {
	ret := _m.Called(ctx, lat, lng)

	if len(ret) == 0 {
		panic("no return value specified for Weather")
	}

	var r0 *model.Weather
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Weather)
	}
	return r0, ret.Error(1)
}

// MapID provides a mock function with given fields: ctx
func (_m *MockClient) MapID(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for MapID")
	}
	return ret.String(0), ret.Error(1)
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
