package particlewav

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

const (
	scalePCM16 = 32767.0
	scalePCM24 = 8388607.0
	scalePCM32 = 2147483647.0
)

func clampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// QuantizeSample converts one canonical sample to its PCM code at the
// given bit depth. The 8-bit code is offset binary (0..255); wider
// depths are two's complement. Rounding is half away from zero, and the
// mandatory clamp means the asymmetric PCM minima (-32768 and friends)
// are never produced.
func QuantizeSample(value float64, bitDepth int) int32 {
	value = clampFloat64(value, -1, 1)

	switch bitDepth {
	case 8:
		return int32(math.Round(value*127.0 + 128.0))
	case 16:
		return int32(math.Round(value * scalePCM16))
	case 24:
		return int32(math.Round(value * scalePCM24))
	case 32:
		return int32(math.Round(value * scalePCM32))
	default:
		return 0
	}
}

// The batch converters below interleave whole frames into a single
// preallocated slice; the straight-line inner loops are what the
// compiler can vectorize.

func batchPCM8(src Audio, buf *bytes.Buffer) {
	frames, chans := len(src[0]), len(src)
	out := make([]byte, frames*chans)

	o := 0

	for i := 0; i < frames; i++ {
		for j := 0; j < chans; j++ {
			out[o] = uint8(QuantizeSample(src[j][i], 8))
			o++
		}
	}

	buf.Write(out)
}

func batchPCM16(src Audio, buf *bytes.Buffer) {
	frames, chans := len(src[0]), len(src)
	out := make([]byte, frames*chans*2)

	o := 0

	for i := 0; i < frames; i++ {
		for j := 0; j < chans; j++ {
			binary.LittleEndian.PutUint16(out[o:], uint16(int16(QuantizeSample(src[j][i], 16))))
			o += 2
		}
	}

	buf.Write(out)
}

func batchPCM24(src Audio, buf *bytes.Buffer) {
	frames, chans := len(src[0]), len(src)
	out := make([]byte, frames*chans*3)

	o := 0

	for i := 0; i < frames; i++ {
		for j := 0; j < chans; j++ {
			copy(out[o:], audio.Int32toInt24LEBytes(QuantizeSample(src[j][i], 24)))
			o += 3
		}
	}

	buf.Write(out)
}

func batchPCM32(src Audio, buf *bytes.Buffer) {
	frames, chans := len(src[0]), len(src)
	out := make([]byte, frames*chans*4)

	o := 0

	for i := 0; i < frames; i++ {
		for j := 0; j < chans; j++ {
			binary.LittleEndian.PutUint32(out[o:], uint32(QuantizeSample(src[j][i], 32)))
			o += 4
		}
	}

	buf.Write(out)
}
