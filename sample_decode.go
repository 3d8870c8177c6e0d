package particlewav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// Track holds canonical float64 samples for one channel. Values are
// nominally in [-1, +1]; excursions are permitted during processing and
// clamped again on encode.
type Track []float64

// Audio holds one track per channel. All tracks share the same length.
type Audio []Track

// DecodeTrack converts the raw samples of one channel over the frame
// range [from, to) to a canonical track. Frames past the end of a
// truncated data chunk decode to 0.0.
func (f *File) DecodeTrack(channel uint16, from, to int) (Track, error) {
	if channel >= f.NumChannels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrInvalidCall, channel, f.NumChannels)
	}

	if from < 0 || to < from {
		return nil, fmt.Errorf("%w: frame range [%d, %d)", ErrInvalidCall, from, to)
	}

	switch {
	case f.AudioFormat == FormatPCM && f.BitsPerSample == 8:
		return f.pcm8Track(channel, from, to), nil
	case f.AudioFormat == FormatPCM && f.BitsPerSample == 16:
		return f.pcm16Track(channel, from, to), nil
	case f.AudioFormat == FormatPCM && f.BitsPerSample == 24:
		return f.pcm24Track(channel, from, to), nil
	case f.AudioFormat == FormatPCM && f.BitsPerSample == 32:
		return f.pcm32Track(channel, from, to), nil
	case f.AudioFormat == FormatIEEEFloat && f.BitsPerSample == 32:
		return f.float32Track(channel, from, to), nil
	}

	return nil, fmt.Errorf("%w: %d-bit samples in audio format %d", ErrFeatureNotSupported, f.BitsPerSample, f.AudioFormat)
}

// DecodeAudio converts the full frame range of every channel.
func (f *File) DecodeAudio() (Audio, error) {
	out := make(Audio, f.NumChannels)

	total := int(f.TotalSamples())
	for ch := uint16(0); ch < f.NumChannels; ch++ {
		track, err := f.DecodeTrack(ch, 0, total)
		if err != nil {
			return nil, err
		}

		out[ch] = track
	}

	return out, nil
}

// trackOffsets returns the byte index of the first wanted sample and the
// per-frame stride.
func (f *File) trackOffsets(channel uint16, from int) (idx, stride int) {
	stride = int(f.NumChannels) * int(f.bytesPerSample)

	return from*stride + int(channel)*int(f.bytesPerSample), stride
}

func (f *File) pcm8Track(channel uint16, from, to int) Track {
	out := make(Track, 0, to-from)
	idx, stride := f.trackOffsets(channel, from)

	for i := from; i < to; i++ {
		if idx >= 0 && idx < len(f.Samples) {
			out = append(out, (float64(f.Samples[idx])-128.0)/127.0)
		} else {
			out = append(out, 0)
		}

		idx += stride
	}

	return out
}

func (f *File) pcm16Track(channel uint16, from, to int) Track {
	out := make(Track, 0, to-from)
	idx, stride := f.trackOffsets(channel, from)

	for i := from; i < to; i++ {
		if idx >= 0 && idx+2 <= len(f.Samples) {
			sample := int16(binary.LittleEndian.Uint16(f.Samples[idx:]))
			out = append(out, float64(sample)/scalePCM16)
		} else {
			out = append(out, 0)
		}

		idx += stride
	}

	return out
}

func (f *File) pcm24Track(channel uint16, from, to int) Track {
	out := make(Track, 0, to-from)
	idx, stride := f.trackOffsets(channel, from)

	for i := from; i < to; i++ {
		if idx >= 0 && idx+3 <= len(f.Samples) {
			sample := audio.Int24LETo32(f.Samples[idx : idx+3])
			out = append(out, float64(sample)/scalePCM24)
		} else {
			out = append(out, 0)
		}

		idx += stride
	}

	return out
}

func (f *File) pcm32Track(channel uint16, from, to int) Track {
	out := make(Track, 0, to-from)
	idx, stride := f.trackOffsets(channel, from)

	for i := from; i < to; i++ {
		if idx >= 0 && idx+4 <= len(f.Samples) {
			sample := int32(binary.LittleEndian.Uint32(f.Samples[idx:]))
			out = append(out, float64(sample)/scalePCM32)
		} else {
			out = append(out, 0)
		}

		idx += stride
	}

	return out
}

func (f *File) float32Track(channel uint16, from, to int) Track {
	out := make(Track, 0, to-from)
	idx, stride := f.trackOffsets(channel, from)

	for i := from; i < to; i++ {
		if idx >= 0 && idx+4 <= len(f.Samples) {
			sample := math.Float32frombits(binary.LittleEndian.Uint32(f.Samples[idx:]))
			out = append(out, float64(sample))
		} else {
			out = append(out, 0)
		}

		idx += stride
	}

	return out
}
