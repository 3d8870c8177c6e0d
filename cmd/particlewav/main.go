// Command particlewav batch-rewrites WAV files. Each input is decoded to
// canonical samples, run through the requested metadata modifiers in the
// order they were given, and saved again as PCM.
//
// Options are processed left to right:
//
//	-file PATH            append one input file
//	-dir PATH             append every *.wav directly under PATH
//	-outfile PATH         extend the output list to match the inputs
//	-set_track_by_idx     write the file position into ITRK
//	-set_meta_string ID S write INFO entry ID (decimal) with value S
//
// The {idx} token inside a value expands to the one-based file position.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/particlewav"
)

func main() {
	os.Exit(int(run(os.Args, os.Stdout)))
}

type modifierEntry struct {
	name string
	fn   particlewav.Modifier
}

type options struct {
	inputs  []string
	outputs []string
	mods    []modifierEntry
}

func run(args []string, out io.Writer) particlewav.Code {
	progDir := filePath(args[0])
	opts := &options{}

	if msg, code := parseArgs(progDir, args[1:], opts); code != particlewav.CodeSuccess {
		if msg != "" {
			fmt.Fprintln(out, msg)
		}

		fmt.Fprintln(out, code.String())

		return code
	}

	if len(opts.outputs) != len(opts.inputs) {
		fmt.Fprintf(out, "There must be the same number of inputs and outputs: \"%d\" inputs -> \"%d\" outputs.\n",
			len(opts.inputs), len(opts.outputs))
		fmt.Fprintln(out, particlewav.CodeInvalidCall.String())

		return particlewav.CodeInvalidCall
	}

	success := 0

	for i := range opts.inputs {
		if processFile(opts, i, out) {
			success++
		}
	}

	if success != len(opts.inputs) {
		return particlewav.CodePartialFailure
	}

	return particlewav.CodeSuccess
}

// parseArgs scans the argument list left to right. Option names are
// matched case-insensitively; an option missing its values or not known
// at all is skipped, while a bare non-option argument is fatal.
func parseArgs(progDir string, args []string, opts *options) (string, particlewav.Code) {
	for i := 0; i < len(args); {
		if !strings.HasPrefix(args[i], "-") {
			return fmt.Sprintf("Invalid command: \"%s\".", args[i]), particlewav.CodeInvalidCall
		}

		name := strings.ToLower(args[i][1:])
		remaining := len(args) - i

		switch {
		case name == "file" && remaining >= 2:
			opts.inputs = append(opts.inputs, args[i+1])
			i += 2
		case name == "dir" && remaining >= 2:
			opts.inputs = append(opts.inputs, findWavFiles(args[i+1])...)
			i += 2
		case (name == "outfile" || name == "out_file") && remaining >= 2:
			if msg, code := resolveOutputs(progDir, args[i+1], opts); code != particlewav.CodeSuccess {
				return msg, code
			}

			i += 2
		case name == "set_track_by_idx":
			opts.mods = append(opts.mods, modifierEntry{
				name: "set_track_by_idx",
				fn:   particlewav.SetTrackByIndex(),
			})
			i++
		case name == "set_meta_string" && remaining >= 3:
			// a malformed id parses as 0, matching atoi semantics
			id, _ := strconv.ParseUint(args[i+1], 10, 32)
			opts.mods = append(opts.mods, modifierEntry{
				name: "set_meta_string",
				fn:   particlewav.SetMetaString(uint32(id), args[i+2]),
			})
			i += 3
		default:
			i++
		}
	}

	return "", particlewav.CodeSuccess
}

func findWavFiles(dir string) []string {
	entries, _ := os.ReadDir(dir)

	var found []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			found = append(found, filepath.Join(dir, entry.Name()))
		}
	}

	return found
}

// resolveOutputs extends the output list for one -outfile value.
//
// A value without an extension names a folder; outputs for every input
// are derived inside it, keeping each input's base name and extension. A
// value with an extension fills outputs for all but the last open input
// slot the same way (forcing the new extension), then the explicit value
// takes the last slot. A name of "*", or any name starting with ".",
// stands for "keep the input base names".
func resolveOutputs(progDir, value string, opts *options) (string, particlewav.Code) {
	if len(opts.outputs) >= len(opts.inputs) {
		return "Too many outputs for the given number of inputs.", particlewav.CodeInvalidCall
	}

	ext := fileExt(value)
	dir := filePath(value)
	name := fileName(value)

	if ext == "" {
		dir = value
		name = ""

		if dir != "" && !strings.HasSuffix(dir, "/") && !strings.HasSuffix(dir, `\`) {
			dir += string(os.PathSeparator)
		}
	}

	if (len(name) == 1 && name[0] == '*') || (len(name) > 0 && name[0] == '.') {
		name = ""
	}

	if dir == "" {
		dir = progDir
	}

	total := len(opts.inputs)
	if ext != "" {
		total--
	}

	for j := len(opts.outputs); len(opts.outputs) < total; j++ {
		src := dir + noExtension(fileName(opts.inputs[j])) + "."
		if ext == "" {
			src += fileExt(opts.inputs[j])
		} else {
			src += ext
		}

		opts.outputs = append(opts.outputs, src)
	}

	if len(opts.outputs) < len(opts.inputs) {
		src := dir
		if name == "" {
			src += noExtension(fileName(opts.inputs[len(opts.outputs)]))
		} else {
			src += noExtension(fileName(value))
		}

		src += "."

		if ext == "" {
			src += fileExt(opts.inputs[len(opts.outputs)])
		} else {
			src += ext
		}

		opts.outputs = append(opts.outputs, src)
	}

	return "", particlewav.CodeSuccess
}

func processFile(opts *options, i int, out io.Writer) bool {
	input, output := opts.inputs[i], opts.outputs[i]

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(out, "Failed to load file: \"%s\"\n", input)
		return false
	}

	doc := particlewav.NewFile()
	if err := doc.LoadFromMemory(data); err != nil {
		fmt.Fprintf(out, "Failed to load file: \"%s\"\n", input)
		return false
	}

	samples, err := doc.DecodeAudio()
	if err != nil {
		fmt.Fprintf(out, "Failed to get all samples from file: \"%s\"\n", input)
		return false
	}

	ctx := &particlewav.Context{Index: i, Total: len(opts.inputs), Audio: samples}

	for _, mod := range opts.mods {
		if !mod.fn(doc, ctx) {
			fmt.Fprintf(out, "Operation %s failed on file: \"%s\"\n", mod.name, output)
			return false
		}
	}

	if err := saveFile(doc, samples, output); err != nil {
		fmt.Fprintf(out, "Failed to save file: \"%s\"\n", output)
		return false
	}

	fmt.Fprintf(out, "Saved file: \"%s\"\n", output)

	return true
}

// fileNameSanitizer rewrites characters Windows forbids in file names to
// visually close allowed ones.
var fileNameSanitizer = strings.NewReplacer(
	"?", "-",
	"*", "˙",
	":", " -",
	`\`, "-",
	"/", "∕",
	"<", "‹",
	">", "›",
	"|", "¦",
	`"`, "‟",
)

// saveFile writes the re-encoded PCM image to the resolved path. The
// output container is always little-endian RIFF/WAVE, whatever extension
// the resolved name carries.
func saveFile(doc *particlewav.File, samples particlewav.Audio, path string) error {
	full := filePath(path) + fileNameSanitizer.Replace(fileName(path))

	img, err := doc.EncodePCM(samples, nil)
	if err != nil {
		return err
	}

	if err := os.WriteFile(full, img, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}

	return nil
}

// The path helpers below treat both separators alike and keep the
// trailing separator on folders, so resolved outputs can be assembled by
// plain concatenation.

func fileName(p string) string {
	idx := strings.LastIndexAny(p, `/\`)

	return p[idx+1:]
}

func filePath(p string) string {
	idx := strings.LastIndexAny(p, `/\`)
	if idx < 0 {
		return ""
	}

	return p[:idx+1]
}

func fileExt(p string) string {
	name := fileName(p)

	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}

	return name[idx+1:]
}

func noExtension(p string) string {
	name := fileName(p)

	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}

	return name[:idx]
}
