// This tool prints the format and metadata of the passed wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/particlewav"
)

const missingPathMessage = "You must pass the path of the file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	doc := particlewav.NewFile()
	if err := doc.LoadFromMemory(data); err != nil {
		return err
	}

	fmt.Fprintf(out, "Format: %d, %d ch, %d Hz, %d bits\n",
		doc.AudioFormat, doc.Channels(), doc.Hz(), doc.BitsPerSample)
	fmt.Fprintf(out, "Frames: %d\n", doc.TotalSamples())
	fmt.Fprintf(out, "Base note: %d\n", doc.BaseNote)

	for _, entry := range doc.ListEntries {
		fmt.Fprintf(out, "%s: %s\n", particlewav.FourCC(entry.ID), nullTermStr(entry.Text))
	}

	for i, loop := range doc.LoopPoints() {
		fmt.Fprintf(out, "\tloop [%d]:\t%+v\n", i, loop)
	}

	for _, frame := range doc.ID3Entries {
		fmt.Fprintf(out, "id3 %s: %d bytes\n", particlewav.FourCC(frame.ID), len(frame.Value))
	}

	for i, img := range doc.Images {
		fmt.Fprintf(out, "image [%d]: type %d, %d bytes\n", i, img.Type, len(img.Data))
	}

	if doc.Inst != (particlewav.InstEntry{}) {
		fmt.Fprintf(out, "instrument: %+v\n", doc.Inst)
	}

	return nil
}

func nullTermStr(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
