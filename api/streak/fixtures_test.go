package streak_test

import (
	"embed"
	"testing"
)

//go:embed testdata/*.json
var fixtures embed.FS

func fixture(t *testing.T, name string) string {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

// listOf wraps a single-record fixture in a JSON array.
func listOf(t *testing.T, name string) string {
	t.Helper()
	return "[" + fixture(t, name) + "]"
}
