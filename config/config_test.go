package config

import (
	"testing"
)

func TestEnabled(t *testing.T) {

	on, off := true, false

	if !Enabled(nil, true) || Enabled(nil, false) {
		t.Error("Unset flag must yield default")
	}
	if !Enabled(&on, false) || Enabled(&off, true) {
		t.Error("Set flag must win over default")
	}
}
