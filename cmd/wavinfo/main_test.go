package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/particlewav"
)

func TestRunRequiresPath(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("got %v, want errMissingPath", err)
	}
}

func TestRunPrintsMetadata(t *testing.T) {
	doc := particlewav.NewFile()
	doc.SampleRate = 44100
	doc.BitsPerSample = 16
	doc.BaseNote = 61
	doc.Samples = make([]byte, 8)
	doc.Loops = []particlewav.LoopPoint{{CuePointID: 1, Start: 0, End: 7}}
	doc.AddListEntry(particlewav.MetaINAM, "My Song")
	doc.AddListEntry(particlewav.MetaITRK, "4")

	img, err := doc.EncodePCM(particlewav.Audio{{0, 0, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	if err := run([]string{path}, out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"Format: 1, 1 ch, 44100 Hz, 16 bits",
		"Base note: 61",
		"INAM: My Song",
		"ITRK: 4",
		"loop [0]:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(path, []byte("nonsense"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{path}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for a non-wav file")
	}
}
