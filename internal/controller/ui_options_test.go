package controller

import "testing"

func TestStartOptions(t *testing.T) {
	cfg := &StartConfig{}
	WithRunMode()(cfg)

	if cfg.mode != ModeRun {
		t.Fatalf("WithRunMode() mode = %v, want %v", cfg.mode, ModeRun)
	}

	WithListMode()(cfg)

	if cfg.mode != ModeList {
		t.Fatalf("WithListMode() mode = %v, want %v", cfg.mode, ModeList)
	}

	called := false
	WithCancel(func() { called = true })(cfg)
	cfg.cancel()

	if !called {
		t.Fatalf("WithCancel() did not register the cancel function")
	}
}

func TestNewStartConfig_DefaultsToListMode(t *testing.T) {
	cfg := newStartConfig(nil)
	if cfg.mode != ModeList || cfg.cancel != nil {
		t.Fatalf("newStartConfig(nil) = %+v", cfg)
	}

	cfg = newStartConfig([]StartOption{WithRunMode()})
	if cfg.mode != ModeRun {
		t.Fatalf("newStartConfig(run) mode = %v", cfg.mode)
	}
}
