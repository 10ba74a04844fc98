package utils

import (
	"testing"
	"time"
)

func TestParseSize(t *testing.T) {

	cases := []struct {
		in  string
		out int64
	}{
		{"1024", 1024},
		{"512k", 512 << 10},
		{"512K", 512 << 10},
		{"1m", 1 << 20},
		{"2g", 2 << 30},
		{"1 MiB", 1 << 20},
		{"2MB", 2000000},
		{" 1m ", 1 << 20},
		{"1.5m", 3 << 19},
		{"0.5k", 512},
		{"2.25G", 9 << 28},
		{"1 M", 1 << 20},
	}

	for _, c := range cases {
		got, err := ParseSize(c.in)
		if err != nil {
			t.Errorf("ParseSize(%q): %v", c.in, err)
			continue
		}
		if got != c.out {
			t.Errorf("ParseSize(%q) = %d, want %d", c.in, got, c.out)
		}
	}
}

func TestParseSizeErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "-1m", "9999999999999g", "-0.5m", "1.5.1m", "nank", "1e30g"} {
		if _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q) expected error", in)
		}
	}
}

func TestParseSizeOrDefault(t *testing.T) {

	n, err := ParseSizeOrDefault("", 42)
	if err != nil || n != 42 {
		t.Error("Default not applied: ", n, err)
	}

	if _, err := ParseSizeOrDefault("bogus", 42); err == nil {
		t.Error("Invalid size must not fall back to default")
	}
}

func TestSubstituteEnvVars(t *testing.T) {

	t.Setenv("VTSD_TEST_BIND", "127.0.0.1:9000")

	out := SubstituteEnvVars(`bind = "${VTSD_TEST_BIND}" other = "${VTSD_TEST_UNSET}"`)
	if out != `bind = "127.0.0.1:9000" other = ""` {
		t.Error("Unexpected substitution: ", out)
	}
}

func TestParseDurationOrDefault(t *testing.T) {

	if d := ParseDurationOrDefault("", time.Second); d != time.Second {
		t.Error(d)
	}
	if d := ParseDurationOrDefault("nonsense", time.Second); d != time.Second {
		t.Error(d)
	}
	if d := ParseDurationOrDefault("250ms", time.Second); d != 250*time.Millisecond {
		t.Error(d)
	}
}

func TestMillis(t *testing.T) {
	if Millis(-time.Second) != 0 || Millis(1999*time.Microsecond) != 1 || Millis(2*time.Second) != 2000 {
		t.Error("Unexpected Millis conversion")
	}
}
