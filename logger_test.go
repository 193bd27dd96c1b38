package datomic

import "testing"

func TestNoOpLogger(t *testing.T) {
	var l Logger = &NoOpLogger{}

	// must not panic
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn", "k", 1)
	l.Error("error", "err", nil)
}

func TestStdLogger(t *testing.T) {
	var l Logger = NewStdLogger("datomic")

	l.Debug("debug message", "db", "scratch")
	l.Info("info message", "rows", 42)
	l.Warn("warn message")
	l.Error("error message", "odd-field-count")
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "<nil>"},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toString(tt.in); got != tt.want {
				t.Errorf("toString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
