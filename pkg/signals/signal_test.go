package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalDispatchOrder(t *testing.T) {
	s := NewSignal[int]("numbers")
	var got []string
	s.Add(func(v int) { got = append(got, "a") })
	s.Add(func(v int) { got = append(got, "b") })
	s.Add(func(v int) { got = append(got, "c") })

	s.Dispatch(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, "numbers", s.Name())
}

func TestSignalDisposeIsIdempotent(t *testing.T) {
	s := NewSignal[int]("numbers")
	calls := 0
	sub := s.Add(func(int) { calls++ })
	other := s.Add(func(int) {})

	sub.Dispose()
	sub.Dispose()
	s.Dispatch(1)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Len())
	other.Dispose()
	assert.Equal(t, 0, s.Len())
}

func TestSignalRemoveDuringDispatch(t *testing.T) {
	s := NewSignal[int]("numbers")
	var second Subscription
	secondCalls := 0
	s.Add(func(int) { second.Dispose() })
	second = s.Add(func(int) { secondCalls++ })

	s.Dispatch(1)
	assert.Equal(t, 0, secondCalls, "handler removed earlier in the same dispatch must not run")
}

func TestSignalAddDuringDispatch(t *testing.T) {
	s := NewSignal[int]("numbers")
	lateCalls := 0
	s.Add(func(int) {
		s.Add(func(int) { lateCalls++ })
	})

	s.Dispatch(1)
	assert.Equal(t, 0, lateCalls)
	s.Dispatch(2)
	assert.Equal(t, 1, lateCalls)
}

func TestBridge(t *testing.T) {
	upstream := NewSignal[string]("objectRemoved")
	session := NewSignal[string]("objectRemoved")
	var got []string
	session.Add(func(v string) { got = append(got, v) })

	bridge := Bridge(upstream, session)
	upstream.Dispatch("a")
	bridge.Dispose()
	upstream.Dispatch("b")

	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 0, upstream.Len())
	assert.Equal(t, 1, session.Len())
}
