package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/store"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return repo
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingGenerator returns a fixed payload and counts calls. The optional
// delay widens the race window in concurrency tests.
type countingGenerator struct {
	mu      sync.Mutex
	payload string
	usage   flow.Usage
	delay   time.Duration
	calls   int
}

func (g *countingGenerator) GenerateJSON(_ context.Context, _ flow.ModelRequest) ([]byte, flow.Usage, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	return []byte(g.payload), g.usage, nil
}

func (g *countingGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
