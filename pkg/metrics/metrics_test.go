package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.SelectionItems == nil {
		t.Error("SelectionItems not initialized")
	}
	if r.ExportsTotal == nil {
		t.Error("ExportsTotal not initialized")
	}
	if r.ExportDuration == nil {
		t.Error("ExportDuration not initialized")
	}
	if r.Handler() == nil {
		t.Error("Handler() returned nil")
	}
}

func TestRecordExport(t *testing.T) {
	r := NewRegistry()

	r.RecordExport("success", 100*time.Millisecond)
	r.RecordExport("success", 50*time.Millisecond)
	r.RecordExport("failure", 10*time.Millisecond)

	counter, err := r.ExportsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 successful exports, got %v", got)
	}
}

func TestSetSelectionSize(t *testing.T) {
	r := NewRegistry()
	r.SetSelectionSize(42)

	var metric dto.Metric
	if err := r.SelectionItems.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 42 {
		t.Errorf("Expected selection size 42, got %v", got)
	}
}
