package particlewav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/riff"
)

// SaveSettings overrides the document format on save. Zero fields keep
// the document's own values.
type SaveSettings struct {
	Hz            uint32
	BitsPerSample uint16
}

func putU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte

	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte

	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// createFmt builds the fmt chunk for an output file. Block align and
// byte rate are always re-derived from channels, rate, and depth.
func (f *File) createFmt(format uint16, channels uint16, settings *SaveSettings) *FmtChunk {
	out := &FmtChunk{
		AudioFormat:   format,
		NumChannels:   channels,
		SampleRate:    f.SampleRate,
		BitsPerSample: f.BitsPerSample,
	}

	if settings != nil && settings.Hz != 0 {
		out.SampleRate = settings.Hz
	}

	if settings != nil && settings.BitsPerSample != 0 {
		out.BitsPerSample = settings.BitsPerSample
	}

	out.BlockAlign = out.BitsPerSample * out.NumChannels / 8
	out.ByteRate = uint32(out.BlockAlign) * out.SampleRate

	return out
}

func writeFmtChunk(buf *bytes.Buffer, chunk *FmtChunk) {
	buf.Write(riff.FmtID[:])
	putU32(buf, 16)
	putU16(buf, chunk.AudioFormat)
	putU16(buf, chunk.NumChannels)
	putU32(buf, chunk.SampleRate)
	putU32(buf, chunk.ByteRate)
	putU16(buf, chunk.BlockAlign)
	putU16(buf, chunk.BitsPerSample)
}

// EncodePCM frames the given audio as a PCM RIFF/WAVE file image: the
// envelope, a 16-byte fmt chunk, the re-quantized data chunk, then a
// smpl chunk when loops survive and a LIST/INFO chunk when entries
// exist.
func (f *File) EncodePCM(samples Audio, settings *SaveSettings) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no tracks to encode", ErrBadFormat)
	}

	frames := len(samples[0])
	for ch, track := range samples {
		if len(track) != frames {
			return nil, fmt.Errorf("%w: track %d holds %d frames, track 0 holds %d", ErrBadFormat, ch, len(track), frames)
		}
	}

	if len(samples) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedSize, len(samples))
	}

	fmtChunk := f.createFmt(FormatPCM, uint16(len(samples)), settings)

	switch fmtChunk.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: cannot write %d-bit PCM", ErrBadFormat, fmtChunk.BitsPerSample)
	}

	optional := bytes.NewBuffer(nil)
	if err := newDefaultChunkRegistry().EncodeOptional(f, optional); err != nil {
		return nil, err
	}

	dataSize := uint64(frames) * uint64(len(samples)) * uint64(fmtChunk.BitsPerSample/8)

	totalSize := uint64(4) + // "WAVE"
		8 + 16 + // fmt chunk
		8 + dataSize + // data chunk
		uint64(optional.Len()) // smpl and LIST chunks
	if totalSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: file image of %d bytes", ErrUnsupportedSize, totalSize+8)
	}

	buf := bytes.NewBuffer(make([]byte, 0, totalSize+8))

	buf.Write(riff.RiffID[:])
	putU32(buf, uint32(totalSize))
	buf.Write(riff.WavFormatID[:])

	writeFmtChunk(buf, fmtChunk)

	buf.Write(riff.DataFormatID[:])
	putU32(buf, uint32(dataSize))

	switch fmtChunk.BitsPerSample {
	case 8:
		batchPCM8(samples, buf)
	case 16:
		batchPCM16(samples, buf)
	case 24:
		batchPCM24(samples, buf)
	case 32:
		batchPCM32(samples, buf)
	}

	buf.Write(optional.Bytes())

	return buf.Bytes(), nil
}
