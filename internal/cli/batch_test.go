package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NSafarali/Laserfarm/internal/ops"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeBatchFile(t, `{
		"pipelines": [
			{"label": "a", "operations": [
				{"op": "write_file", "params": {"path": "/tmp/a.txt", "lines": "hello"}}
			]},
			{"label": "b", "operations": [
				{"op": "delay", "params": {"duration_sec": 0.1}}
			]}
		]
	}`)

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch.Pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(batch.Pipelines))
	}
	if batch.Pipelines[0].Label != "a" || batch.Pipelines[1].Label != "b" {
		t.Error("labels should be preserved in order")
	}
	if batch.Pipelines[0].Operations[0].Op != "write_file" {
		t.Errorf("unexpected operation %q", batch.Pipelines[0].Operations[0].Op)
	}
}

func TestLoadBatch_Empty(t *testing.T) {
	path := writeBatchFile(t, `{"pipelines": []}`)

	_, err := LoadBatch(path)
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestLoadBatch_InvalidJSON(t *testing.T) {
	path := writeBatchFile(t, `{not json`)

	if _, err := LoadBatch(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadBatch_MissingFile(t *testing.T) {
	if _, err := LoadBatch(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatch_Build(t *testing.T) {
	batch := &Batch{
		Pipelines: []PipelineSpec{
			{Label: "a", Operations: []ops.Spec{
				{Op: "delay", Params: map[string]any{"duration_sec": 0.0}},
			}},
			{Label: "b", Operations: []ops.Spec{
				{Op: "delay", Params: map[string]any{"duration_sec": 0.0}},
			}},
		},
	}

	tasks, err := batch.Build(ops.DefaultRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Label() != "a" || tasks[1].Label() != "b" {
		t.Error("tasks should keep batch order and labels")
	}
}

func TestBatch_BuildUnknownOp(t *testing.T) {
	batch := &Batch{
		Pipelines: []PipelineSpec{
			{Label: "x", Operations: []ops.Spec{{Op: "teleport"}}},
		},
	}

	if _, err := batch.Build(ops.DefaultRegistry()); !errors.Is(err, ops.ErrOpNotFound) {
		t.Errorf("expected ErrOpNotFound, got %v", err)
	}
}
