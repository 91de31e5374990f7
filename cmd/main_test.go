package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "callagent dev") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestExportCommandNotFound(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("CALL_PROVIDER", "bland")
	t.Setenv("BLAND_API_KEY", "key")
	t.Setenv("WEBHOOK_URL", "https://example.test/webhook")
	t.Setenv("EXPORT_DIR", t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "missing"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestExportCommandRequiresCallID(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"export"})

	if err := cmd.Execute(); err == nil {
		t.Errorf("expected argument error")
	}
}
