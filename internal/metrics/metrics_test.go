package metrics

import "testing"

func TestDisabledByDefault(t *testing.T) {
	enabled.Store(false)
	if Enabled() {
		t.Fatal("Enabled() should default to false")
	}
	// no-ops must not panic when disabled.
	RecordCellEvaluated()
	RecordCycleRejected()
	RecordCacheInvalidations(5)
}

func TestEnableTogglesFlag(t *testing.T) {
	Enable(Config{Enabled: true})
	if !Enabled() {
		t.Fatal("Enabled() should be true after Enable(Config{Enabled: true})")
	}
	Enable(Config{Enabled: false})
	if Enabled() {
		t.Fatal("Enabled() should be false after Enable(Config{Enabled: false})")
	}
}
