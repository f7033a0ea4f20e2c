package cluster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// --- LocalCluster Tests ---

func TestNewLocal_Running(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := NewLocal(Options{Workers: 1, ThreadsPerWorker: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Status() != StatusRunning {
		t.Errorf("expected running, got %s", c.Status())
	}

	// Scratch-каталог создан
	if _, err := os.Stat(c.ScratchDir()); err != nil {
		t.Errorf("scratch dir should exist: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if c.Status() != StatusClosed {
		t.Errorf("expected closed, got %s", c.Status())
	}

	// Scratch-каталог удалён при закрытии
	if _, err := os.Stat(c.ScratchDir()); !os.IsNotExist(err) {
		t.Error("scratch dir should be removed on close")
	}
}

func TestNewLocal_ProcessesScratchDirs(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := NewLocal(Options{Workers: 2, ThreadsPerWorker: 1, Processes: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	for i := 0; i < 2; i++ {
		dir := filepath.Join(c.ScratchDir(), fmt.Sprintf("worker-%d", i))
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("worker dir %d should exist: %v", i, err)
		}
	}
}

func TestLocalCluster_CloseIdempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := NewLocal(Options{Workers: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}

func TestLocalCluster_SubmitAfterClose(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := NewLocal(Options{Workers: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Close()

	err = c.Submit(func() {})
	if !errors.Is(err, ErrClusterClosed) {
		t.Errorf("expected ErrClusterClosed, got %v", err)
	}
}

func TestLocalCluster_RunsJobs(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := NewLocal(Options{Workers: 2, ThreadsPerWorker: 2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := c.Submit(func() {
			defer wg.Done()
			mu.Lock()
			count++
			mu.Unlock()
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	wg.Wait()
	if count != 10 {
		t.Errorf("expected 10 jobs executed, got %d", count)
	}
}

// --- Setup Tests ---

func TestSetup_AttachExternalCluster(t *testing.T) {
	t.Chdir(t.TempDir())

	external, err := NewLocal(Options{Workers: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client, err := Setup(Config{Cluster: external})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Status() != StatusRunning {
		t.Errorf("expected running, got %s", client.Status())
	}

	// Внешним кластером владеет вызывающий код
	external.Close()
	if client.Status() != StatusClosed {
		t.Errorf("expected closed, got %s", client.Status())
	}
}

func TestSetup_LocalMode(t *testing.T) {
	t.Chdir(t.TempDir())

	client, err := Setup(Config{
		Mode:  ModeLocal,
		Local: Options{Workers: 1, ThreadsPerWorker: 1, Processes: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Cluster().Close()

	if client.Status() != StatusRunning {
		t.Errorf("expected running, got %s", client.Status())
	}
}

func TestSetup_UnsupportedMode(t *testing.T) {
	_, err := Setup(Config{Mode: "newcluster"})
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}
}

// --- SubmitAndGather Tests ---

func TestClient_SubmitAndGatherPreservesOrder(t *testing.T) {
	t.Chdir(t.TempDir())

	client, err := Setup(Config{Local: Options{Workers: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Cluster().Close()

	// Ранние единицы работы спят дольше поздних: порядок завершения
	// на воркерах обратен порядку отправки
	const n = 8
	units := make([]Unit, n)
	for i := 0; i < n; i++ {
		i := i
		units[i] = func(ctx context.Context) (any, error) {
			time.Sleep(time.Duration(n-i) * 10 * time.Millisecond)
			return i, nil
		}
	}

	results := client.SubmitAndGather(context.Background(), units)

	if len(results) != n {
		t.Fatalf("expected %d results, got %d", n, len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("result %d has index %d", i, res.Index)
		}
		if res.Value != i {
			t.Errorf("result %d has value %v, want %d", i, res.Value, i)
		}
	}
}

func TestClient_FaultIsolation(t *testing.T) {
	t.Chdir(t.TempDir())

	client, err := Setup(Config{Local: Options{Workers: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Cluster().Close()

	units := []Unit{
		func(ctx context.Context) (any, error) { return "ok", nil },
		func(ctx context.Context) (any, error) { return nil, errors.New("boom") },
		func(ctx context.Context) (any, error) { panic("exploded") },
		func(ctx context.Context) (any, error) { return "also ok", nil },
	}

	results := client.SubmitAndGather(context.Background(), units)

	if results[0].Err != nil || results[0].Value != "ok" {
		t.Errorf("unit 0 should succeed: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("unit 1 should fail")
	}
	if results[2].Err == nil {
		t.Error("unit 2 panic should be captured as error")
	}
	if results[3].Err != nil || results[3].Value != "also ok" {
		t.Errorf("unit 3 should succeed despite sibling failures: %+v", results[3])
	}
}

func TestClient_SubmitAndGatherEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	client, err := Setup(Config{Local: Options{Workers: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Cluster().Close()

	results := client.SubmitAndGather(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
