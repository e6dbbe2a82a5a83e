package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	batches []int
	failOn  map[int]int // batch index -> attempts that should fail
	calls   map[int]int
}

func (f *fakeWriter) InsertContentBatch(
	_ context.Context,
	_ md.ContentKind,
	items []md.ContentItem,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := items[0].Seq
	f.calls[key]++
	if remaining, ok := f.failOn[key]; ok && f.calls[key] <= remaining {
		return errors.New("store refused batch")
	}

	f.batches = append(f.batches, len(items))
	return nil
}

func items(n int) []md.ContentItem {
	res := make([]md.ContentItem, n)
	for i := range res {
		res[i] = md.ContentItem{Seq: i + 1, Name: "item", URL: "http://o/u/p/1"}
	}
	return res
}

func quickRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2}
}

func TestBulkInserter_SplitsIntoBatches(t *testing.T) {
	w := &fakeWriter{failOn: map[int]int{}, calls: map[int]int{}}
	ins := NewBulkInserter(w, 5000, 2, quickRetry(), nil)

	inserted, failed, err := ins.Insert(context.Background(), md.KindLive, items(12345))
	require.NoError(t, err)
	assert.Equal(t, 12345, inserted)
	assert.Zero(t, failed)
	assert.Len(t, w.batches, 3)

	total := 0
	for _, b := range w.batches {
		total += b
	}
	assert.Equal(t, 12345, total)
}

func TestBulkInserter_FailedBatchDoesNotAbortRun(t *testing.T) {
	// Second batch (first item Seq 5001) fails on every attempt.
	w := &fakeWriter{failOn: map[int]int{5001: 3}, calls: map[int]int{}}
	ins := NewBulkInserter(w, 5000, 1, quickRetry(), nil)

	inserted, failed, err := ins.Insert(context.Background(), md.KindLive, items(12345))
	require.NoError(t, err)
	assert.Equal(t, 7345, inserted)
	assert.Equal(t, 5000, failed)
	assert.Equal(t, 3, w.calls[5001])
}

func TestBulkInserter_RetriesTransientFailure(t *testing.T) {
	// First batch fails twice, then succeeds on the third attempt.
	w := &fakeWriter{failOn: map[int]int{1: 2}, calls: map[int]int{}}
	ins := NewBulkInserter(w, 100, 1, quickRetry(), nil)

	inserted, failed, err := ins.Insert(context.Background(), md.KindLive, items(100))
	require.NoError(t, err)
	assert.Equal(t, 100, inserted)
	assert.Zero(t, failed)
	assert.Equal(t, 3, w.calls[1])
}

func TestBulkInserter_ProgressCallback(t *testing.T) {
	var mu sync.Mutex
	var snaps []Snapshot

	w := &fakeWriter{failOn: map[int]int{}, calls: map[int]int{}}
	ins := NewBulkInserter(
		w, 50, 1, quickRetry(), func(s Snapshot) {
			mu.Lock()
			snaps = append(snaps, s)
			mu.Unlock()
		},
	)

	_, _, err := ins.Insert(context.Background(), md.KindLive, items(150))
	require.NoError(t, err)

	require.Len(t, snaps, 3)
	last := snaps[len(snaps)-1]
	assert.Equal(t, 150, last.Inserted)
	assert.InDelta(t, 100, last.Percent, 0.01)
}

func TestBulkInserter_Empty(t *testing.T) {
	w := &fakeWriter{failOn: map[int]int{}, calls: map[int]int{}}
	ins := NewBulkInserter(w, 5000, 2, quickRetry(), nil)

	inserted, failed, err := ins.Insert(context.Background(), md.KindLive, nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, failed)
}
