package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/particlewav"
)

func TestPathHelpers(t *testing.T) {
	testCases := []struct {
		in    string
		name  string
		dir   string
		ext   string
		noExt string
	}{
		{"a/b/x.wav", "x.wav", "a/b/", "wav", "x"},
		{`c:\tmp\x.wav`, "x.wav", `c:\tmp\`, "wav", "x"},
		{"x.wav", "x.wav", "", "wav", "x"},
		{"noext", "noext", "", "", ""},
		{"a/b/", "", "a/b/", "", ""},
		{"*.wav", "*.wav", "", "wav", "*"},
		{".wav", ".wav", "", "wav", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.in, func(t *testing.T) {
			if got := fileName(testCase.in); got != testCase.name {
				t.Errorf("fileName = %q, want %q", got, testCase.name)
			}

			if got := filePath(testCase.in); got != testCase.dir {
				t.Errorf("filePath = %q, want %q", got, testCase.dir)
			}

			if got := fileExt(testCase.in); got != testCase.ext {
				t.Errorf("fileExt = %q, want %q", got, testCase.ext)
			}

			if got := noExtension(testCase.in); got != testCase.noExt {
				t.Errorf("noExtension = %q, want %q", got, testCase.noExt)
			}
		})
	}
}

func TestResolveOutputs(t *testing.T) {
	testCases := []struct {
		name   string
		inputs []string
		value  string
		want   []string
	}{
		{
			"explicit file for last slot",
			[]string{"a/x.wav", "a/y.wav"},
			"out/z.wav",
			[]string{"out/x.wav", "out/z.wav"},
		},
		{
			"folder keeps names and extensions",
			[]string{"a/x.wav", "a/y.wav"},
			"outdir",
			[]string{"outdir/x.wav", "outdir/y.wav"},
		},
		{
			"folder with trailing separator",
			[]string{"a/x.wav"},
			"outdir/",
			[]string{"outdir/x.wav"},
		},
		{
			"star name stays literal",
			[]string{"a/x.wav", "a/y.wav"},
			"out/*.flac",
			[]string{"out/x.flac", "out/*.flac"},
		},
		{
			"dot name keeps input names",
			[]string{"a/x.wav", "a/y.wav"},
			"out/.flac",
			[]string{"out/x.flac", "out/y.flac"},
		},
		{
			"bare extension change",
			[]string{"a/x.wav"},
			".aif",
			[]string{"prog/x.aif"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			opts := &options{inputs: testCase.inputs}

			msg, code := resolveOutputs("prog/", testCase.value, opts)
			if code != particlewav.CodeSuccess {
				t.Fatalf("resolveOutputs failed: %q, %d", msg, code)
			}

			if len(opts.outputs) != len(testCase.want) {
				t.Fatalf("outputs = %v, want %v", opts.outputs, testCase.want)
			}

			for i := range testCase.want {
				if opts.outputs[i] != testCase.want[i] {
					t.Fatalf("outputs = %v, want %v", opts.outputs, testCase.want)
				}
			}
		})
	}
}

func TestResolveOutputsTooMany(t *testing.T) {
	opts := &options{}

	msg, code := resolveOutputs("prog/", "out.wav", opts)
	if code != particlewav.CodeInvalidCall || msg == "" {
		t.Fatalf("got %q, %d; want an invalid-call failure", msg, code)
	}
}

func TestParseArgs(t *testing.T) {
	opts := &options{}

	args := []string{
		"-FILE", "a.wav",
		"-file", "b.wav",
		"-set_track_by_idx",
		"-set_meta_string", "1296125513", "Chip {idx}", // INAM
		"-bogus",
		"-outfile", "out",
	}

	msg, code := parseArgs("prog/", args, opts)
	if code != particlewav.CodeSuccess {
		t.Fatalf("parseArgs failed: %q, %d", msg, code)
	}

	if len(opts.inputs) != 2 || opts.inputs[0] != "a.wav" {
		t.Fatalf("inputs = %v", opts.inputs)
	}

	if len(opts.outputs) != 2 {
		t.Fatalf("outputs = %v", opts.outputs)
	}

	if len(opts.mods) != 2 || opts.mods[0].name != "set_track_by_idx" || opts.mods[1].name != "set_meta_string" {
		t.Fatalf("mods = %+v", opts.mods)
	}
}

func TestParseArgsRejectsBareArgument(t *testing.T) {
	opts := &options{}

	msg, code := parseArgs("prog/", []string{"a.wav"}, opts)
	if code != particlewav.CodeInvalidCall {
		t.Fatalf("code = %d, want invalid call", code)
	}

	if !strings.Contains(msg, "a.wav") {
		t.Fatalf("message = %q", msg)
	}
}

func writeTestWav(t *testing.T, path string, samples particlewav.Audio) {
	t.Helper()

	doc := particlewav.NewFile()
	doc.SampleRate = 44100
	doc.BitsPerSample = 16

	img, err := doc.EncodePCM(samples, nil)
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}

	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	first := filepath.Join(dir, "first.wav")
	second := filepath.Join(dir, "second.wav")
	writeTestWav(t, first, particlewav.Audio{{0, 0.25, -0.25}})
	writeTestWav(t, second, particlewav.Audio{{1, -1}})

	out := &bytes.Buffer{}
	code := run([]string{
		filepath.Join(dir, "prog"),
		"-file", first,
		"-file", second,
		"-outfile", outDir,
		"-set_track_by_idx",
	}, out)

	if code != particlewav.CodeSuccess {
		t.Fatalf("run = %d\noutput:\n%s", code, out)
	}

	if strings.Count(out.String(), "Saved file:") != 2 {
		t.Fatalf("output:\n%s", out)
	}

	for i, name := range []string{"first.wav", "second.wav"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("output missing: %v", err)
		}

		doc := particlewav.NewFile()
		if err := doc.LoadFromMemory(data); err != nil {
			t.Fatalf("output unreadable: %v", err)
		}

		if len(doc.ListEntries) != 1 || doc.ListEntries[0].ID != particlewav.MetaITRK {
			t.Fatalf("entries = %+v", doc.ListEntries)
		}

		want := []byte{byte('1' + i), 0}
		if !bytes.Equal(doc.ListEntries[0].Text, want) {
			t.Fatalf("track payload = %q, want %q", doc.ListEntries[0].Text, want)
		}
	}
}

func TestRunReportsPartialFailure(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.wav")
	writeTestWav(t, good, particlewav.Audio{{0}})

	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	code := run([]string{
		filepath.Join(dir, "prog"),
		"-file", good,
		"-file", bad,
		"-outfile", dir + string(os.PathSeparator),
	}, out)

	if code != particlewav.CodePartialFailure {
		t.Fatalf("run = %d, want partial failure\noutput:\n%s", code, out)
	}

	if !strings.Contains(out.String(), "Failed to load file:") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestRunRejectsMismatchedCounts(t *testing.T) {
	out := &bytes.Buffer{}

	code := run([]string{"prog", "-file", "a.wav"}, out)
	if code != particlewav.CodeInvalidCall {
		t.Fatalf("run = %d, want invalid call", code)
	}

	if !strings.Contains(out.String(), "same number of inputs and outputs") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestFindWavFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.wav", "B.WAV", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	found := findWavFiles(dir)
	if len(found) != 2 {
		t.Fatalf("found = %v", found)
	}
}

func TestSaveFileSanitizesName(t *testing.T) {
	dir := t.TempDir()

	doc := particlewav.NewFile()
	doc.SampleRate = 8000
	doc.BitsPerSample = 8

	path := filepath.Join(dir, "a?b.wav")
	if err := saveFile(doc, particlewav.Audio{{0}}, path); err != nil {
		t.Fatalf("saveFile failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "a-b.wav")); err != nil {
		t.Fatalf("sanitized output missing: %v", err)
	}
}

// Whatever extension the resolved output carries, the emitted container
// is RIFF/WAVE.
func TestSaveFileAlwaysWritesRiff(t *testing.T) {
	dir := t.TempDir()

	doc := particlewav.NewFile()
	doc.SampleRate = 44100
	doc.BitsPerSample = 16

	path := filepath.Join(dir, "clip.aif")
	if err := saveFile(doc, particlewav.Audio{{0, 0.5, -0.5}}, path); err != nil {
		t.Fatalf("saveFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("output is not a RIFF/WAVE image: % x", data[:12])
	}
}
