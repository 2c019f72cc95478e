package envutil

import "testing"

func TestString(t *testing.T) {
	t.Setenv("BARISENSE_TEST_ENV", "  production ")
	if got := String("BARISENSE_TEST_ENV", "development"); got != "production" {
		t.Fatalf("set: got %q", got)
	}
	t.Setenv("BARISENSE_TEST_ENV", "   ")
	if got := String("BARISENSE_TEST_ENV", "development"); got != "development" {
		t.Fatalf("blank: got %q", got)
	}
}
