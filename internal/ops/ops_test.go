package ops

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// --- Registry Tests ---

func TestRegistry_Default(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"write_file", "delay", "http"} {
		if !r.Has(name) {
			t.Errorf("default registry should have %s", name)
		}
	}

	names := r.Names()
	if len(names) != 3 {
		t.Errorf("expected 3 operation types, got %d", len(names))
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("teleport")
	if !errors.Is(err, ErrOpNotFound) {
		t.Errorf("expected ErrOpNotFound, got %v", err)
	}
}

func TestRegistry_BuildPipelinePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")

	specs := []Spec{
		{Op: "delay", Params: map[string]any{"duration_sec": 0.0}},
		{Op: "write_file", Params: map[string]any{"path": file, "lines": "one"}},
		{Op: "write_file", Params: map[string]any{"path": file, "lines": "two", "append": true}},
	}

	p, err := DefaultRegistry().BuildPipeline("ordered", specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Label() != "ordered" {
		t.Errorf("expected label ordered, got %q", p.Label())
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 operations, got %d", p.Len())
	}

	out := p.Run(context.Background())
	if !out.Success {
		t.Fatalf("unexpected failure: %+v", out)
	}

	// append после перезаписи: порядок операций сохранён
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("expected one/two, got %q", string(data))
	}
}

func TestRegistry_BuildPipelineUnknownOp(t *testing.T) {
	_, err := DefaultRegistry().BuildPipeline("x", []Spec{{Op: "teleport"}})
	if !errors.Is(err, ErrOpNotFound) {
		t.Errorf("expected ErrOpNotFound, got %v", err)
	}
}

// --- WriteFileOp Tests ---

func TestWriteFileOp_MissingPath(t *testing.T) {
	_, err := NewWriteFileOp().Build(map[string]any{"lines": "x"})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestWriteFileOp_WritesLines(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")

	fn, err := NewWriteFileOp().Build(map[string]any{
		"path":  file,
		"lines": []any{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fn(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "hello\nworld\n" {
		t.Errorf("unexpected content %q", string(data))
	}
}

// --- FileWriter Tests ---

func TestFileWriter_Success(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")

	out := FileWriter(file, "hello world").Run(context.Background())
	if !out.Success {
		t.Fatalf("unexpected failure: %+v", out)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "hello world\n" {
		t.Errorf("unexpected content %q", string(data))
	}
}

func TestFileWriter_DirectoryTarget(t *testing.T) {
	// Путь указывает на каталог: падает операция open с ошибкой ФС
	out := FileWriter(t.TempDir(), "hello").Run(context.Background())

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Kind != pipeline.KindIO {
		t.Errorf("expected KindIO, got %s", out.Kind)
	}
	if !strings.HasPrefix(out.Detail, "open:") {
		t.Errorf("failure should come from the open operation, got %q", out.Detail)
	}
}

// --- DelayOp Tests ---

func TestDelayOp_Waits(t *testing.T) {
	fn, err := NewDelayOp().Build(map[string]any{"duration_sec": 0.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := fn(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("should have waited at least 40ms, waited %v", elapsed)
	}
}

func TestDelayOp_ContextCancel(t *testing.T) {
	fn, err := NewDelayOp().Build(map[string]any{"duration_sec": 10.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Отменяем сразу

	if err := fn(ctx); err == nil {
		t.Error("expected context canceled error")
	}
}

// --- HTTPOp Tests ---

func TestHTTPOp_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET by default, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fn, err := NewHTTPOp().Build(map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fn(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPOp_MissingURL(t *testing.T) {
	_, err := NewHTTPOp().Build(map[string]any{"method": "GET"})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestHTTPOp_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fn, err := NewHTTPOp().Build(map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runErr := fn(context.Background())
	if runErr == nil {
		t.Fatal("expected error for 500")
	}
	if !errors.Is(runErr, ErrHTTPStatus) {
		t.Errorf("expected ErrHTTPStatus, got %v", runErr)
	}
	if pipeline.Classify(runErr) != pipeline.KindHTTP {
		t.Errorf("expected KindHTTP, got %s", pipeline.Classify(runErr))
	}
}

func TestHTTPOp_ExpectStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	fn, err := NewHTTPOp().Build(map[string]any{
		"url":           server.URL,
		"method":        "POST",
		"expect_status": 201,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fn(context.Background()); err != nil {
		t.Errorf("201 should match expect_status=201: %v", err)
	}
}

// --- Param helpers ---

func TestParamStrings(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   int
	}{
		{"single string", map[string]any{"lines": "x"}, 1},
		{"json list", map[string]any{"lines": []any{"a", "b"}}, 2},
		{"missing", map[string]any{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParamStrings(tt.params, "lines"); len(got) != tt.want {
				t.Errorf("expected %d strings, got %v", tt.want, got)
			}
		})
	}
}
