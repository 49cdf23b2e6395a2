package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithFieldsIncludesProvidedFields(t *testing.T) {
	var buf bytes.Buffer
	old := Logger.Out
	Logger.SetOutput(&buf)
	defer Logger.SetOutput(old)

	WithFields(logrus.Fields{"run_id": "abc"}).Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["run_id"] != "abc" {
		t.Fatalf("run_id field = %v, want abc", entry["run_id"])
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg field = %v, want hello", entry["msg"])
	}
}

func TestWithErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	old := Logger.Out
	Logger.SetOutput(&buf)
	defer Logger.SetOutput(old)

	WithError(errBoom).Error("failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["error"] != "boom" {
		t.Fatalf("error field = %v, want boom", entry["error"])
	}
}

func TestMeasureAdapterDelegatesToUnderlyingEntry(t *testing.T) {
	var buf bytes.Buffer
	old := Logger.Out
	Logger.SetOutput(&buf)
	defer Logger.SetOutput(old)

	adapter := NewMeasureAdapter(nil)
	adapter.Infof("processed %d objects", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "processed 3 objects" {
		t.Fatalf("msg field = %v", entry["msg"])
	}
	if entry["component"] != "measure" {
		t.Fatalf("component field = %v, want measure", entry["component"])
	}
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }
