package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "fddl"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	expected := "Static site generator"
	if Description != expected {
		t.Errorf("Expected Description to be %q, got %q", expected, Description)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	want := strings.TrimSpace(string(buf))
	if want == "" {
		t.Fatal("VERSION is empty")
	}

	if got := Version(); got != want && !strings.HasPrefix(got, want+" (") {
		t.Errorf("Version() = %q, want %q with optional revision", got, want)
	}
}

func TestDirs(t *testing.T) {
	prefix := Prefix()
	if prefix == "" || strings.HasPrefix(prefix, ".") {
		t.Fatalf("Prefix() = %q", prefix)
	}

	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		t.Run(name, func(t *testing.T) {
			if filepath.Base(dir) != prefix {
				t.Errorf("%s dir %q does not end in %q", name, dir, prefix)
			}
		})
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		arg0, want string
	}{
		{"/usr/local/bin/fddl", "fddl"},
		{"fddl-dev", "fddl-dev"},
		{"fddl.exe", "fddl"},
		{"/tmp/go-build1/b001/pkg.test", Name},
		{"./__debug_bin3612", Name},
		{"/home/u/.fddl", "fddl"},
		{"...", Name},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.arg0); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.arg0, got, tt.want)
		}
	}
}

func TestUserDir(t *testing.T) {
	failing := func() (string, error) { return "", os.ErrNotExist }
	fixed := func() (string, error) { return "/base", nil }

	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvCacheDir, "/override/cache/")

		if got := userDir(EnvCacheDir, fixed, ".cache"); got != filepath.Clean("/override/cache") {
			t.Errorf("userDir = %q", got)
		}
	})

	t.Run("platform", func(t *testing.T) {
		t.Setenv(EnvCacheDir, "")

		if got, want := userDir(EnvCacheDir, fixed, ".cache"), filepath.Join("/base", Prefix()); got != want {
			t.Errorf("userDir = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv(EnvCacheDir, "")

		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip(err)
		}

		if got, want := userDir(EnvCacheDir, failing, ".cache"), filepath.Join(home, ".cache", Prefix()); got != want {
			t.Errorf("userDir = %q, want %q", got, want)
		}
	})
}
