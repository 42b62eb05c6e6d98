package main

// Notes:
// - Test doubles shared across the CLI tests: a recording converter, a pool
//   handing it out, and helpers for temp trees and environments.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdconv"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and echoes a tagged copy of the content.
type mockConverter struct {
	mu          sync.Mutex
	calls       []mdconv.Input
	convertFunc func(ctx context.Context, input mdconv.Input) (*mdconv.ConvertResult, error)
}

func (m *mockConverter) Convert(ctx context.Context, input mdconv.Input) (*mdconv.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}
	out := "[" + string(input.Direction) + "] " + strings.TrimSpace(input.Content)
	result := &mdconv.ConvertResult{Output: []byte(out)}
	if input.Preview {
		result.Preview = []byte("\x89PNG mock")
	}
	return result, nil
}

func (m *mockConverter) getCalls() []mdconv.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdconv.Input{}, m.calls...)
}

// testPool hands out the same mock converter up to size times.
type testPool struct {
	mock       *mockConverter
	sem        chan CLIConverter
	size       int
	acquireErr error
	mu         sync.Mutex
	closed     bool
	opts       int // number of options the factory received
}

func newTestPool(mock *mockConverter, size int) *testPool {
	size = max(size, 1)
	p := &testPool{
		mock: mock,
		sem:  make(chan CLIConverter, size),
		size: size,
	}
	for range size {
		p.sem <- mock
	}
	return p
}

func (p *testPool) Acquire(ctx context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	select {
	case c := <-p.sem:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *testPool) Release(c CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- c
}

func (p *testPool) Size() int {
	return p.size
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *testPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// mockFactory returns a poolFactory building test pools around mock.
// The last pool built is stored in *last.
func mockFactory(mock *mockConverter, last **testPool) poolFactory {
	return func(size int, opts ...mdconv.Option) (Pool, error) {
		p := newTestPool(mock, size)
		p.opts = len(opts)
		if last != nil {
			*last = p
		}
		return p, nil
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers, with a fixed clock.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// testParams returns batch parameters with a fixed clock.
func testParams() *conversionParams {
	return &conversionParams{
		timeout: time.Minute,
		now:     time.Now,
	}
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile reads a file or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
