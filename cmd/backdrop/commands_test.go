package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smasonuk/backdrop3d/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	testCases := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "Desktop default",
			args:     []string{"info", "--config", missing, "--seed", "1"},
			expected: []string{"Profile:    full", "Crystal:    10", "Star:       200", "Objects:    212", "Torus:      1", "3 point"},
		},
		{
			name:     "Mobile agent",
			args:     []string{"info", "--config", missing, "--seed", "1", "--user-agent", "Mozilla/5.0 (iPhone)"},
			expected: []string{"Profile:    constrained", "Crystal:    5", "Star:       50", "Objects:    57"},
		},
		{
			name:     "Forced profile wins over agent",
			args:     []string{"info", "--config", missing, "--seed", "1", "--user-agent", "Android", "--profile", "full"},
			expected: []string{"Profile:    full", "Crystal:    10"},
		},
		{
			name:     "Viewport flags",
			args:     []string{"info", "--config", missing, "--width", "320", "--height", "480"},
			expected: []string{"Viewport:   320x480"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v\n%s", err, out)
			}
			for _, want := range tc.expected {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestInfoRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("population: {full: {crystals: -3, stars: 1, spread: 1}}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "info", "--config", bad); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("bad config error = %v, want config.ErrInvalid", err)
	}
	if _, err := execute(t, "info", "--config", filepath.Join(dir, "none.yaml"), "--profile", "tablet"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("bad profile error = %v, want config.ErrInvalid", err)
	}
}

func TestLogFileReleasedAfterCommand(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "backdrop.log")
	_, err := execute(t, "info", "--config", filepath.Join(dir, "none.yaml"), "--seed", "1",
		"--user-agent", "Android", "--log-file", logPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if log.Writer() != os.Stderr {
		t.Error("log output still points at the log file")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "constrained") {
		t.Errorf("log file = %q, want the profile change logged", data)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	out, err := execute(t, "init-config", "--config", path)
	if err != nil {
		t.Fatalf("init-config error = %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("written config = %+v, want defaults", cfg)
	}

	if _, err := execute(t, "init-config", "--config", path); err == nil {
		t.Error("init-config overwrote an existing file")
	}
}
