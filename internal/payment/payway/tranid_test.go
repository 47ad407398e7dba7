package payway

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranIDShape(t *testing.T) {
	id := NewTranID()

	// "TX" + MMDDHHMMSS + 4 hex chars
	require.Len(t, id, 16)
	assert.Regexp(t, `^TX\d{10}[0-9a-f]{4}$`, id)
}

func TestNewTranIDConcurrentDistinct(t *testing.T) {
	const n = 500

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- NewTranID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}
