package particlewav

import (
	"bytes"
	"fmt"
)

// smpl chunk layout is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

// loadSmpl reads the sampler chunk: the MIDI unity note becomes the
// document base note, and each loop record is retained only when both of
// its endpoints land inside the raw sample buffer. Out-of-range loops
// are dropped without error; truncated smpl chunks commonly declare
// loops the data chunk cannot carry.
func (f *File) loadSmpl(ch Chunk) error {
	cur := newCursor(ch.Data)

	if err := cur.advance(8); err != nil { // manufacturer, product
		return fmt.Errorf("failed to read sampler header: %w", err)
	}

	if _, err := cur.readU32(); err != nil { // sample period
		return fmt.Errorf("failed to read sample period: %w", err)
	}

	unityNote, err := cur.readU32()
	if err != nil {
		return fmt.Errorf("failed to read MIDI unity note: %w", err)
	}

	f.BaseNote = unityNote

	if err := cur.advance(12); err != nil { // pitch fraction, SMPTE format, SMPTE offset
		return fmt.Errorf("failed to read SMPTE fields: %w", err)
	}

	numLoops, err := cur.readU32()
	if err != nil {
		return fmt.Errorf("failed to read loop count: %w", err)
	}

	if _, err := cur.readU32(); err != nil { // sampler data size
		return fmt.Errorf("failed to read sampler data size: %w", err)
	}

	for i := uint32(0); i < numLoops; i++ {
		var loop LoopPoint

		if loop.CuePointID, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d cue point id: %w", i, err)
		}

		if loop.Type, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d type: %w", i, err)
		}

		if loop.Start, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d start: %w", i, err)
		}

		if loop.End, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d end: %w", i, err)
		}

		if loop.Fraction, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d fraction: %w", i, err)
		}

		if loop.PlayCount, err = cur.readU32(); err != nil {
			return fmt.Errorf("failed to read loop %d play count: %w", i, err)
		}

		if int64(loop.Start) < int64(len(f.Samples)) && int64(loop.End) < int64(len(f.Samples)) {
			f.Loops = append(f.Loops, loop)
		}
	}

	return nil
}

// createSmpl renders the file-image bytes of the smpl chunk: the 36-byte
// preamble followed by one 24-byte record per loop.
func (f *File) createSmpl() []byte {
	buf := bytes.NewBuffer(nil)

	buf.Write(CIDSmpl[:])
	putU32(buf, uint32(36+len(f.Loops)*24))
	putU32(buf, 0) // manufacturer
	putU32(buf, 0) // product
	putU32(buf, 0) // sample period
	putU32(buf, f.BaseNote)
	putU32(buf, 0) // MIDI pitch fraction
	putU32(buf, 0) // SMPTE format
	putU32(buf, 0) // SMPTE offset
	putU32(buf, uint32(len(f.Loops)))
	putU32(buf, 0) // sampler data

	for _, loop := range f.Loops {
		putU32(buf, loop.CuePointID)
		putU32(buf, loop.Type)
		putU32(buf, loop.Start)
		putU32(buf, loop.End)
		putU32(buf, loop.Fraction)
		putU32(buf, loop.PlayCount)
	}

	return buf.Bytes()
}
