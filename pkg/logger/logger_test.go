package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup_FirstCallWins(t *testing.T) {
	reset()

	var first, second bytes.Buffer
	l1 := Setup("debug", false, &first)
	l2 := Setup("error", false, &second)

	l2.Debug().Msg("wired once")

	if !strings.Contains(first.String(), "wired once") {
		t.Fatalf("second Setup reconfigured the logger: first=%q second=%q", first.String(), second.String())
	}
	if second.Len() != 0 {
		t.Fatalf("second writer received output: %q", second.String())
	}
	_ = l1
}

func TestSetup_LevelFiltering(t *testing.T) {
	reset()

	var buf bytes.Buffer
	l := Setup("warn", false, &buf)

	l.Info().Msg("quiet")
	l.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info record passed a warn-level logger: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn record was dropped: %q", out)
	}
}

func TestRoot_ConfiguresDefaultOnDemand(t *testing.T) {
	reset()

	// Root before Setup must hand back a usable logger, not a zero value.
	l := Root()
	if l.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("default level = %v, want info", l.GetLevel())
	}

	// And it counts as the configuration: a later Setup is a no-op.
	var buf bytes.Buffer
	Setup("debug", false, &buf)
	if Root().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("Setup after Root reconfigured the logger")
	}
}

func TestLevelFrom(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{" ERROR ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := levelFrom(c.in); got != c.want {
			t.Errorf("levelFrom(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
