package zenshare

import "testing"

func TestState(t *testing.T) {
	tests := []struct {
		s        State
		name     string
		terminal bool
	}{
		{StateIdle, "idle", false},
		{StateEncrypting, "encrypting", false},
		{StateUploading, "uploading", false},
		{StateReady, "ready", true},
		{StateFailed, "failed", true},
		{State(42), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.s.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v", tt.name, got)
		}
	}
}
