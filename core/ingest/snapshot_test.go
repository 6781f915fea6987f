package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/doughepi/grain/core/remote"
	"github.com/doughepi/grain/core/remote/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func docs(pairs ...string) []remote.Document {
	out := make([]remote.Document, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, remote.Document{ID: pairs[i], IngestionStatus: pairs[i+1]})
	}
	return out
}

func TestRemoteSnapshotter_PagesFullListing(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, []string(nil), 0, 2).
		Return(&remote.OverviewPage{Results: docs("a", "success", "b", "processing")}, nil)
	client.On("DocumentsOverview", mock.Anything, []string(nil), 2, 2).
		Return(&remote.OverviewPage{Results: []remote.Document{{DocumentID: "c", Status: "failed"}}}, nil)

	known, err := NewRemoteSnapshotter(client, 2).Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{
		"a": StatusSuccess,
		"b": StatusProcessing,
		"c": StatusFailed,
	}, known)
	client.AssertExpectations(t)
}

func TestRemoteSnapshotter_StopsAtTotalEntries(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, []string(nil), 0, 2).
		Return(&remote.OverviewPage{Results: docs("a", "success", "b", "success"), TotalEntries: 2}, nil).Once()

	known, err := NewRemoteSnapshotter(client, 2).Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, known, 2)
	client.AssertNumberOfCalls(t, "DocumentsOverview", 1)
}

func TestRemoteSnapshotter_FollowsTotalEntriesPastShortPages(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, []string(nil), 0, 3).
		Return(&remote.OverviewPage{Results: docs("a", "success", "b", "success"), TotalEntries: 4}, nil).Once()
	client.On("DocumentsOverview", mock.Anything, []string(nil), 2, 3).
		Return(&remote.OverviewPage{Results: docs("c", "processing", "d", "failed"), TotalEntries: 4}, nil).Once()

	known, err := NewRemoteSnapshotter(client, 3).Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{
		"a": StatusSuccess,
		"b": StatusSuccess,
		"c": StatusProcessing,
		"d": StatusFailed,
	}, known)
	client.AssertNumberOfCalls(t, "DocumentsOverview", 2)
}

func TestRemoteSnapshotter_StopsOnEmptyPage(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, []string(nil), 0, 2).
		Return(&remote.OverviewPage{Results: docs("a", "success", "b", "success"), TotalEntries: 10}, nil).Once()
	client.On("DocumentsOverview", mock.Anything, []string(nil), 2, 2).
		Return(&remote.OverviewPage{TotalEntries: 10}, nil).Once()

	known, err := NewRemoteSnapshotter(client, 2).Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, known, 2)
	client.AssertNumberOfCalls(t, "DocumentsOverview", 2)
}

func TestRemoteSnapshotter_StopsWhenPagingIsIgnored(t *testing.T) {
	client := new(mocks.Client)
	// The service returns the same full page whatever the offset.
	client.On("DocumentsOverview", mock.Anything, []string(nil), mock.Anything, 2).
		Return(&remote.OverviewPage{Results: docs("a", "success", "b", "success")}, nil)

	known, err := NewRemoteSnapshotter(client, 2).Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, known, 2)
	client.AssertNumberOfCalls(t, "DocumentsOverview", 2)
}

func TestRemoteSnapshotter_TargetedChunks(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, []string{"a", "b"}, 0, 2).
		Return(&remote.OverviewPage{Results: docs("a", "processing")}, nil)
	client.On("DocumentsOverview", mock.Anything, []string{"c"}, 0, 1).
		Return(&remote.OverviewPage{Results: []remote.Document{{ID: "c"}}}, nil)

	known, err := NewRemoteSnapshotter(client, 2).Snapshot(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{"a": StatusProcessing, "c": StatusUnknown}, known)
	_, present := known["b"]
	assert.False(t, present)
}

func TestRemoteSnapshotter_EmptyIDsMakesNoCall(t *testing.T) {
	client := new(mocks.Client)
	known, err := NewRemoteSnapshotter(client, 10).Snapshot(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, known)
	client.AssertNotCalled(t, "DocumentsOverview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoteSnapshotter_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("DocumentsOverview", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := NewRemoteSnapshotter(client, 10).Snapshot(context.Background(), nil)
	assert.ErrorContains(t, err, "connection refused")
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusAbsent.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, Status("enriched").Terminal())
}
