package scheduler

import (
	"testing"
	"time"
)

func TestValidateCronExpr(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"* * * * *", false},
		{"0 3 * * *", false},
		{"*/5 * * * *", false},
		{"not a cron", true},
		{"", true},
		{"* * * *", true}, // 4 поля вместо 5
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateCronExpr(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronExpr(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestNext(t *testing.T) {
	from := time.Date(2026, 8, 24, 12, 30, 0, 0, time.UTC)

	next, err := Next("0 3 * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 8, 25, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNext_InvalidExpr(t *testing.T) {
	if _, err := Next("bad", time.Now()); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestNewRepeater_InvalidExpr(t *testing.T) {
	if _, err := NewRepeater("bad", nil, func() {}); err == nil {
		t.Error("expected error for invalid expression")
	}
}
