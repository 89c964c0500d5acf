package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"series", "compare-growth", "help"} {
		if !IsCommand(name) {
			t.Errorf("IsCommand(%q) = false", name)
		}
	}
	if IsCommand("hello") {
		t.Errorf("IsCommand(hello) = true")
	}
}

func TestRunExtension(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\necho \"$DASH_API $DASH_CACHE $*\" > \"$HELLO_OUT\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "dash-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("HELLO_OUT", out)

	previousAPI, previousCache := *apiURL, *cacheDir
	*apiURL, *cacheDir = "http://backend:8000", "/tmp/cache"
	defer func() { *apiURL, *cacheDir = previousAPI, previousCache }()

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 3 {
		t.Fatalf("RunExtension(hello) = %v, %d, want true, 3", found, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "http://backend:8000 /tmp/cache a b"; strings.TrimSpace(string(got)) != want {
		t.Errorf("extension saw %q, want %q", got, want)
	}

	if found, _ := RunExtension("nope-not-installed", nil); found {
		t.Errorf("RunExtension(nope-not-installed) found an extension")
	}
}
