// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/imagesearch/pkg/types"
)

func stateAt(seq uint64, status types.Status) types.SearchState {
	return types.SearchState{Result: types.Result[[]types.ImageItem]{Status: status}, Seq: seq}
}

func TestStream_DeliversInOrder(t *testing.T) {
	s := newStream()
	var mu sync.Mutex
	var got []uint64
	sub := s.subscribe(func(v types.SearchState) {
		mu.Lock()
		got = append(got, v.Seq)
		mu.Unlock()
	})

	for i := uint64(1); i <= 100; i++ {
		s.publish(stateAt(i, types.StatusLoading))
	}
	s.close()
	<-sub.done

	require.Len(t, got, 100)
	for i, seq := range got {
		assert.Equal(t, uint64(i+1), seq)
	}
}

func TestStream_ReplayOnlyAfterPublish(t *testing.T) {
	s := newStream()
	assert.Equal(t, types.StatusIdle, s.current().Status)

	var got []types.SearchState
	sub := s.subscribe(func(v types.SearchState) { got = append(got, v) })
	s.unsubscribe(sub)
	<-sub.done
	assert.Empty(t, got)

	s.publish(stateAt(1, types.StatusLoading))
	s.publish(stateAt(1, types.StatusSuccess))

	sub = s.subscribe(func(v types.SearchState) { got = append(got, v) })
	s.close()
	<-sub.done
	require.Len(t, got, 1)
	assert.Equal(t, types.StatusSuccess, got[0].Status)
}

func TestStream_PublishAfterCloseIgnored(t *testing.T) {
	s := newStream()
	s.publish(stateAt(1, types.StatusLoading))
	s.close()
	s.close()
	s.publish(stateAt(2, types.StatusSuccess))
	assert.Equal(t, uint64(1), s.current().Seq)

	sub := s.subscribe(func(types.SearchState) { t.Error("listener called after close") })
	select {
	case <-sub.done:
	case <-time.After(waitTimeout):
		t.Fatal("subscription on closed stream should be done")
	}
}

func TestStream_UnsubscribeDropsQueued(t *testing.T) {
	s := newStream()
	gate := make(chan struct{})
	var mu sync.Mutex
	var got []uint64
	sub := s.subscribe(func(v types.SearchState) {
		<-gate
		mu.Lock()
		got = append(got, v.Seq)
		mu.Unlock()
	})

	for i := uint64(1); i <= 5; i++ {
		s.publish(stateAt(i, types.StatusLoading))
	}
	s.unsubscribe(sub)
	close(gate)
	<-sub.done

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, len(got), 1, "at most the state already in delivery")
}
