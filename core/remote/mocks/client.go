package mocks

import (
	"context"

	"github.com/doughepi/grain/core/remote"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of remote.Client
type Client struct {
	mock.Mock
}

func (m *Client) IngestFiles(ctx context.Context, files []remote.File) (*remote.Response, error) {
	args := m.Called(ctx, files)
	if resp, ok := args.Get(0).(*remote.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateFiles(ctx context.Context, files []remote.File) (*remote.Response, error) {
	args := m.Called(ctx, files)
	if resp, ok := args.Get(0).(*remote.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DocumentsOverview(ctx context.Context, ids []string, offset, limit int) (*remote.OverviewPage, error) {
	args := m.Called(ctx, ids, offset, limit)
	if page, ok := args.Get(0).(*remote.OverviewPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Login(ctx context.Context, email, password string) (*remote.Token, error) {
	args := m.Called(ctx, email, password)
	if token, ok := args.Get(0).(*remote.Token); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}
