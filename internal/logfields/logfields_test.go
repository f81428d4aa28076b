package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Command", KeyCommand, "build", Command("build")},
		{"Mode", KeyMode, "production", Mode("production")},
		{"Entry", KeyEntry, "src/main.js", Entry("src/main.js")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"OutputDir", KeyOutputDir, "/proj/dist", OutputDir("/proj/dist")},
		{"Fingerprint", KeyFingerprint, "abc", Fingerprint("abc")},
		{"Plugin", KeyPlugin, "babel", Plugin("babel")},
		{"PluginKind", KeyPluginKind, "framework", PluginKind("framework")},
		{"Decision", KeyDecision, "skip", Decision("skip")},
		{"Option", KeyOption, "modern", Option("modern")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, got)
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", a)
	}
}

func TestDurationMS(t *testing.T) {
	a := DurationMS(12.5)
	if a.Key != KeyDurationMS || a.Value.Float64() != 12.5 {
		t.Fatalf("unexpected attr %v", a)
	}
}
