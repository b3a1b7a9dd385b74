package logging

import (
	"os"
	"testing"
)

// unsetForTest removes key for the duration of the test.
// t.Setenv records the previous value and restores it on cleanup.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
