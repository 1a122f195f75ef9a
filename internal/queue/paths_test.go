package queue

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("converts backslashes to forward slashes", func(t *testing.T) {
		got := Normalize(`C:\Users\op\.shepherd\sessions`)
		want := "C:/Users/op/.shepherd/sessions"
		if got != want {
			t.Fatalf("Normalize = %q, want %q", got, want)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, p := range []string{`a\b\c`, "a/b/c", `mixed/one\two`} {
			once := Normalize(p)
			if twice := Normalize(once); twice != once {
				t.Fatalf("Normalize(Normalize(%q)) = %q, want %q", p, twice, once)
			}
		}
	})
}

func TestDefault(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(DataDirEnv, dir)
		if got := Default().Root(); got != Normalize(dir) {
			t.Fatalf("Root = %q, want %q", got, Normalize(dir))
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv(DataDirEnv, "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home dir in test environment")
		}
		want := Normalize(filepath.Join(home, ".shepherd"))
		if got := Default().Root(); got != want {
			t.Fatalf("Root = %q, want %q", got, want)
		}
	})
}

func TestEnsureDirs(t *testing.T) {
	paths := New(t.TempDir())

	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	// Repeat calls must not fail on existing directories.
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs (again): %v", err)
	}

	for _, dir := range []string{paths.SessionsDir(), paths.VerificationDir(), paths.FeedbackDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestPathLayout(t *testing.T) {
	paths := New("/data/shepherd")

	if got := paths.SessionMetaPath("s1"); got != "/data/shepherd/sessions/s1/meta.json" {
		t.Fatalf("SessionMetaPath = %q", got)
	}
	if got := paths.SessionLogPath("s1"); got != "/data/shepherd/sessions/s1/log.jsonl" {
		t.Fatalf("SessionLogPath = %q", got)
	}
	if got := paths.VerificationDir(); got != "/data/shepherd/verification-queue" {
		t.Fatalf("VerificationDir = %q", got)
	}
	if got := paths.FeedbackDir(); got != "/data/shepherd/feedback" {
		t.Fatalf("FeedbackDir = %q", got)
	}
}
