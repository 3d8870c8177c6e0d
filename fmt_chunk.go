package particlewav

import "fmt"

// WAVE format tags. Only PCM and IEEE float sample data is decoded; the
// remaining tags are recognized so files carrying them fail cleanly
// instead of being misread as PCM.
const (
	FormatPCM         uint16 = 0x1
	FormatADPCM       uint16 = 0x2
	FormatIEEEFloat   uint16 = 0x3
	FormatALaw        uint16 = 0x6
	FormatMuLaw       uint16 = 0x7
	FormatDVIADPCM    uint16 = 0x11
	FormatYamahaADPCM uint16 = 0x16
	FormatGSM610      uint16 = 0x31
	FormatG721ADPCM   uint16 = 0x40
	FormatMPEG        uint16 = 0x50
	FormatExtensible  uint16 = 0xFFFE
)

// FmtChunk is the parsed fmt chunk of a WAVE file.
type FmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// decodeFmtChunk reads the 16 common bytes of a fmt chunk. Extension
// bytes past offset 16 are ignored.
func decodeFmtChunk(ch Chunk) (*FmtChunk, error) {
	cur := newCursor(ch.Data)
	out := &FmtChunk{}

	var err error

	if out.AudioFormat, err = cur.readU16(); err != nil {
		return nil, fmt.Errorf("failed to read audio format: %w", err)
	}

	if out.NumChannels, err = cur.readU16(); err != nil {
		return nil, fmt.Errorf("failed to read channel count: %w", err)
	}

	if out.SampleRate, err = cur.readU32(); err != nil {
		return nil, fmt.Errorf("failed to read sample rate: %w", err)
	}

	if out.ByteRate, err = cur.readU32(); err != nil {
		return nil, fmt.Errorf("failed to read byte rate: %w", err)
	}

	if out.BlockAlign, err = cur.readU16(); err != nil {
		return nil, fmt.Errorf("failed to read block align: %w", err)
	}

	if out.BitsPerSample, err = cur.readU16(); err != nil {
		return nil, fmt.Errorf("failed to read bit depth: %w", err)
	}

	return out, nil
}
