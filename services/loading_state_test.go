package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadingStateRotatesAndStops(t *testing.T) {
	facts := []string{"a", "b", "c"}
	l := NewLoadingState(facts, 5*time.Millisecond)
	assert.Equal(t, "a", l.Current())

	l.Start()
	l.Start()
	assert.True(t, l.Running())

	require.Eventually(t, func() bool { return l.Index() != 0 }, time.Second, time.Millisecond)

	l.Stop()
	assert.False(t, l.Running())
	stopped := l.Index()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, l.Index())

	l.Stop()
}

func TestLoadingStateWrapsAround(t *testing.T) {
	l := NewLoadingState([]string{"a", "b"}, time.Hour)
	l.advance()
	assert.Equal(t, "b", l.Current())
	l.advance()
	assert.Equal(t, "a", l.Current())
}

func TestLoadingStateDefaults(t *testing.T) {
	l := NewLoadingState(nil, 0)
	assert.Equal(t, DefaultFactInterval, l.period)
	assert.Equal(t, "", l.Current())
	l.advance()
	assert.Equal(t, 0, l.Index())
}

func TestFactAt(t *testing.T) {
	assert.Len(t, LoadingFacts, 8)

	assert.Equal(t, LoadingFacts[0], FactAt(LoadingFacts, DefaultFactInterval, 0))
	assert.Equal(t, LoadingFacts[0], FactAt(LoadingFacts, DefaultFactInterval, 2999*time.Millisecond))
	assert.Equal(t, LoadingFacts[1], FactAt(LoadingFacts, DefaultFactInterval, 3*time.Second))
	assert.Equal(t, LoadingFacts[0], FactAt(LoadingFacts, DefaultFactInterval, 24*time.Second))
	assert.Equal(t, LoadingFacts[0], FactAt(LoadingFacts, DefaultFactInterval, -time.Second))
	assert.Equal(t, "", FactAt(nil, DefaultFactInterval, time.Minute))
}
