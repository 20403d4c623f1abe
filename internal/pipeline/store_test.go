package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSnapshots(t *testing.T) {
	store := NewMemoryStore()
	store.Create(&Run{ID: "r1", Status: StatusProcessing, Stage: StageTranscription})

	snap, ok := store.Get("r1")
	require.True(t, ok)

	// Mutating the snapshot must not touch the stored record.
	snap.Status = StatusError
	current, _ := store.Get("r1")
	assert.Equal(t, StatusProcessing, current.Status)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore()
	store.Create(&Run{ID: "r1", Status: StatusProcessing, Stage: StageTranscription})

	store.Update("r1", func(r *Run) {
		r.Stage = StageGeneratingMinutes
		r.Transcript = "text"
	})

	run, _ := store.Get("r1")
	assert.Equal(t, StageGeneratingMinutes, run.Stage)
	assert.Equal(t, "text", run.Transcript)

	// Unknown ids are ignored, not created.
	store.Update("missing", func(r *Run) { r.Status = StatusError })
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	store.Create(&Run{ID: "r1"})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Update("r1", func(r *Run) { r.Transcript += "x" })
		}()
		go func() {
			defer wg.Done()
			store.Get("r1")
		}()
	}
	wg.Wait()

	run, _ := store.Get("r1")
	assert.Len(t, run.Transcript, 50)
}

func TestWorkerPoolCeiling(t *testing.T) {
	pool := newWorkerPool(2)

	var mu sync.Mutex
	active, peak := 0, 0

	for range 8 {
		pool.submit(func() {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		})
	}
	pool.wait()

	assert.LessOrEqual(t, peak, 2, "pool must never exceed its concurrency ceiling")
}

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"meeting.mp4", true},
		{"meeting.M4A", true},
		{"meeting.wav", true},
		{"notes.txt", true},
		{"notes.md", true},
		{"slides.pdf", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AllowedFile(tt.name), tt.name)
	}
}

func TestIsTextFile(t *testing.T) {
	assert.True(t, IsTextFile("notes.txt"))
	assert.True(t, IsTextFile("notes.MD"))
	assert.False(t, IsTextFile("meeting.wav"))
}
