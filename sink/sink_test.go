package sink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWritesBothDestinations(t *testing.T) {
	var console, file bytes.Buffer
	s := New(&console, &file)

	s.Emit("Productor 1 creado.")

	assert.Equal(t, "Productor 1 creado.\n", console.String())
	assert.Equal(t, "Productor 1 creado.\n", file.String())

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.LinesWritten)
	assert.Equal(t, int64(len("Productor 1 creado.\n")), stats.BytesWritten)
	assert.Equal(t, int64(0), stats.WriteErrors)
}

func TestEmitPreservesTrailingNewline(t *testing.T) {
	var console, file bytes.Buffer
	s := New(&console, &file)

	s.Emit("linea con salto\n")

	assert.Equal(t, "linea con salto\n", console.String())
}

func TestEmitConcurrentLinesNeverInterleave(t *testing.T) {
	var console, file bytes.Buffer
	s := New(&console, &file)

	const workers = 8
	const linesPerWorker = 50

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < linesPerWorker; i++ {
				s.Emit(fmt.Sprintf("worker-%d-line-%d", id, i))
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(console.String(), "\n"), "\n")
	require.Len(t, lines, workers*linesPerWorker)
	for _, line := range lines {
		assert.Regexp(t, `^worker-\d+-line-\d+$`, line)
	}

	// Both destinations received identical text
	assert.Equal(t, console.String(), file.String())
}

func TestOpenAppendsToLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "producer-consumer.txt")

	var console bytes.Buffer
	s, err := Open(&console, path)
	require.NoError(t, err)
	s.Emit("primera corrida")
	require.NoError(t, s.Close())

	// A second sink on the same path must append, not truncate
	s2, err := Open(&console, path)
	require.NoError(t, err)
	s2.Emit("segunda corrida")
	require.NoError(t, s2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "primera corrida\nsegunda corrida\n", string(data))
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	var console, file bytes.Buffer
	s := New(&console, &file)
	require.NoError(t, s.Close())

	s.Emit("perdida")

	assert.Empty(t, console.String())
	assert.Equal(t, int64(1), s.Stats().WriteErrors)
}

func TestCloseTwiceReturnsError(t *testing.T) {
	s := New(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, s.Close())
	assert.Error(t, s.Close())
}
