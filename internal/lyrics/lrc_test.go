package lyrics

import (
	"strings"
	"testing"
)

func TestParseLRC(t *testing.T) {
	src := `[ti:Song]
[ar:Someone]

[00:01.50]first line
[00:05.00][00:20.00]chorus
[00:03]second line
[01:02.345]late
not a lyric
`
	cues, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC() error = %v", err)
	}

	want := []struct {
		time float64
		text string
	}{
		{1.5, "first line"},
		{3, "second line"},
		{5, "chorus"},
		{20, "chorus"},
		{62.345, "late"},
	}
	if len(cues) != len(want) {
		t.Fatalf("got %d cues, want %d: %+v", len(cues), len(want), cues)
	}
	for i, w := range want {
		if diff := cues[i].Time - w.time; diff > 1e-9 || diff < -1e-9 || cues[i].Text != w.text {
			t.Errorf("cue[%d] = %+v, want {%v %q}", i, cues[i], w.time, w.text)
		}
	}
	if !Sorted(cues) {
		t.Error("cues are not sorted")
	}
}

func TestParseLRCOffset(t *testing.T) {
	src := "[offset:+500]\n[00:00.20]a\n[00:02.00]b\n"
	cues, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC() error = %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	if cues[0].Time != 0 {
		t.Errorf("negative time not clamped: %v", cues[0].Time)
	}
	if cues[1].Time != 1.5 {
		t.Errorf("offset not applied: %v", cues[1].Time)
	}
}

func TestParseLRCStableTies(t *testing.T) {
	src := "[00:01.00]x\n[00:01.00]y\n"
	cues, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC() error = %v", err)
	}
	if cues[0].Text != "x" || cues[1].Text != "y" {
		t.Errorf("tie order = %q, %q, want x, y", cues[0].Text, cues[1].Text)
	}
}
