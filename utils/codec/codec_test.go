package codec

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string            `toml:"name" json:"name"`
	Items map[string]string `toml:"items" json:"items"`
}

func TestTomlRoundTrip(t *testing.T) {

	in := sample{Name: "vtsd", Items: map[string]string{"a": "1"}}

	out, err := Encode(in, TOML)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `name = "vtsd"`) {
		t.Error("Unexpected toml: ", out)
	}

	var back sample
	if err := Decode([]byte(out), &back, TOML); err != nil {
		t.Fatal(err)
	}

	if back.Name != in.Name || back.Items["a"] != "1" {
		t.Error("Decoded ", back)
	}
}

func TestJsonDecode(t *testing.T) {

	var s sample
	if err := Decode([]byte(`{"name": "x", "items": {"k": "v"}}`), &s, JSON); err != nil {
		t.Fatal(err)
	}

	if s.Name != "x" || s.Items["k"] != "v" {
		t.Error("Decoded ", s)
	}
}

func TestUnknownFormat(t *testing.T) {

	if _, err := Encode(sample{}, "yaml"); err == nil {
		t.Error("Expected encode error")
	}

	if err := Decode([]byte{}, &sample{}, "yaml"); err == nil {
		t.Error("Expected decode error")
	}
}

func TestDecodeError(t *testing.T) {
	var s sample
	if err := Decode([]byte(`name = `), &s, TOML); err == nil {
		t.Error("Expected toml error")
	}
}
