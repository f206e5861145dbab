// Package testsupport holds helpers shared by tests across the module.
package testsupport

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

// LoadFixture reads a test input file, failing tb when it is missing.
func LoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// AssertJSONGolden compares got against the JSON document stored at path.
// Both sides are decoded first so formatting and key order are ignored.
func AssertJSONGolden(tb testing.TB, path string, got []byte) {
	tb.Helper()
	var want, have any
	if err := json.Unmarshal(LoadFixture(tb, path), &want); err != nil {
		tb.Fatalf("decode golden %s: %v", path, err)
	}
	if err := json.Unmarshal(got, &have); err != nil {
		tb.Fatalf("decode output: %v\n%s", err, got)
	}
	if !reflect.DeepEqual(want, have) {
		tb.Fatalf("output does not match %s\nwant: %v\ngot:  %v", path, want, have)
	}
}
