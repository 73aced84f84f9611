package pretty

import (
	"bytes"
	"testing"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	if !IsColorEnabled("always", &buf) {
		t.Error(`IsColorEnabled("always") = false, want true`)
	}
	if IsColorEnabled("never", &buf) {
		t.Error(`IsColorEnabled("never") = true, want false`)
	}
	// A plain buffer is not a terminal.
	if IsColorEnabled("auto", &buf) {
		t.Error(`IsColorEnabled("auto", buffer) = true, want false`)
	}
}

func TestIsColorEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	if IsColorEnabled("auto", &buf) {
		t.Error(`IsColorEnabled("auto") = true with NO_COLOR set`)
	}
	if !IsColorEnabled("always", &buf) {
		t.Error(`IsColorEnabled("always") = false; "always" outranks NO_COLOR`)
	}
}

func TestSeverityStyles(t *testing.T) {
	t.Parallel()

	styles := NewStyles(true)

	if got := styles.Severity("error"); got.GetForeground() != styles.Error.GetForeground() {
		t.Error(`Severity("error") did not return the error style`)
	}
	if got := styles.Severity("info"); got.GetForeground() != styles.Info.GetForeground() {
		t.Error(`Severity("info") did not return the info style`)
	}
	// Unknown severities fall back to warning.
	if got := styles.Severity("loud"); got.GetForeground() != styles.Warning.GetForeground() {
		t.Error(`Severity("loud") did not fall back to the warning style`)
	}
}

func TestPlainStylesPassThrough(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)
	if got := styles.Error.Render("text"); got != "text" {
		t.Errorf("plain render = %q, want %q", got, "text")
	}
}
