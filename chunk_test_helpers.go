package particlewav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var errChunkExceedsFileSize = errors.New("chunk exceeds file size")

// parseWavChunks re-reads an emitted file image through the production
// walker so tests assert layouts with the same scanner the codec trusts.
// Unlike a load, every declared size must be fully backed by the image.
func parseWavChunks(data []byte) ([]testChunk, error) {
	walked, err := walkChunks(data)
	if err != nil {
		return nil, err
	}

	chunks := make([]testChunk, 0, len(walked))

	for _, ch := range walked {
		if int(ch.Size) != len(ch.Data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, ch.ID[:])
		}

		chunks = append(chunks, testChunk{
			id:   string(ch.ID[:]),
			size: ch.Size,
			data: append([]byte(nil), ch.Data...),
		})
	}

	return chunks, nil
}

func findTestChunk(chunks []testChunk, id string) *testChunk {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i]
		}
	}

	return nil
}

// buildTestWav assembles a RIFF/WAVE image from raw chunk payloads.
func buildTestWav(chunks ...testChunk) []byte {
	body := make([]byte, 0, 64)
	body = append(body, 'W', 'A', 'V', 'E')

	for _, ch := range chunks {
		body = append(body, ch.id...)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(ch.data)))
		body = append(body, ch.data...)
	}

	img := []byte{'R', 'I', 'F', 'F'}
	img = binary.LittleEndian.AppendUint32(img, uint32(len(body)))

	return append(img, body...)
}

// testFmtPayload renders a 16-byte fmt payload with derived block align
// and byte rate.
func testFmtPayload(format, channels uint16, rate uint32, bits uint16) []byte {
	blockAlign := channels * bits / 8

	out := make([]byte, 0, 16)
	out = binary.LittleEndian.AppendUint16(out, format)
	out = binary.LittleEndian.AppendUint16(out, channels)
	out = binary.LittleEndian.AppendUint32(out, rate)
	out = binary.LittleEndian.AppendUint32(out, uint32(blockAlign)*rate)
	out = binary.LittleEndian.AppendUint16(out, blockAlign)
	out = binary.LittleEndian.AppendUint16(out, bits)

	return out
}

// testSmplPayload renders a smpl payload carrying the given loops.
func testSmplPayload(baseNote uint32, loops ...LoopPoint) []byte {
	out := make([]byte, 0, 36+len(loops)*24)

	for _, v := range []uint32{0, 0, 0, baseNote, 0, 0, 0, uint32(len(loops)), 0} {
		out = binary.LittleEndian.AppendUint32(out, v)
	}

	for _, loop := range loops {
		for _, v := range []uint32{loop.CuePointID, loop.Type, loop.Start, loop.End, loop.Fraction, loop.PlayCount} {
			out = binary.LittleEndian.AppendUint32(out, v)
		}
	}

	return out
}

// testInfoPayload renders a LIST payload with an INFO sub-type and the
// given (id, payload) entries.
func testInfoPayload(entries ...ListEntry) []byte {
	out := []byte{'I', 'N', 'F', 'O'}

	for _, entry := range entries {
		out = binary.LittleEndian.AppendUint32(out, entry.ID)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(entry.Text)))
		out = append(out, entry.Text...)
	}

	return out
}
