// Package mocks provides test doubles for the mapscrape client.
package mocks

import (
	"context"

	mapscrape "github.com/brewatlas/curator-cli/pkg/mapscrape"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// ExtractPlace provides a mock function with given fields: ctx, url
func (_m *MockClient) ExtractPlace(ctx context.Context, url string) (*mapscrape.PlaceData, error) {
	ret := _m.Called(ctx, url)

	if len(ret) == 0 {
		panic("no return value specified for ExtractPlace")
	}

	var r0 *mapscrape.PlaceData
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*mapscrape.PlaceData, error)); ok {
		return rf(ctx, url)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *mapscrape.PlaceData); ok {
		r0 = rf(ctx, url)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*mapscrape.PlaceData)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, url)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient with expectations
// cleaned up after the test run.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
