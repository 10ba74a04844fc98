package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFormatter(t *testing.T) {

	entry := &logrus.Entry{
		Logger:  logrus.StandardLogger(),
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Zone is full",
		Data:    logrus.Fields{"name": "stats", "zone": "server", "capacity": 10},
	}

	b, err := new(MyFormatter).Format(entry)
	if err != nil {
		t.Fatal(err)
	}

	want := "2024-05-06 07:08:09 [WARNI] (stats): Zone is full capacity=10 zone=server\n"
	if string(b) != want {
		t.Errorf("Format = %q, want %q", string(b), want)
	}
}

func TestConfigureLevel(t *testing.T) {

	defer logrus.SetLevel(logrus.InfoLevel)

	if err := Configure("stdout", "debug"); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Error("Level ", logrus.GetLevel())
	}

	err := Configure("stderr", "loud")
	if err == nil || !strings.Contains(err.Error(), "loud") {
		t.Error("Expected level error, got ", err)
	}
}
