package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	keys := []string{AttrMethod, AttrPath, AttrStatus, AttrProvider, AttrOperation, AttrSource, AttrOutcome, AttrAvailable}
	for _, k := range keys {
		if k == "" {
			t.Fatalf("expected metric attribute keys to be non-empty")
		}
	}
	if SourceRemote == SourceLocal {
		t.Fatalf("expected distinct load sources")
	}
}
