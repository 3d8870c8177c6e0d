package particlewav

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// Chunk locates one RIFF sub-chunk inside a file image.
type Chunk struct {
	ID [4]byte
	// Size is the declared payload size. It may overstate what the file
	// image actually holds; Data is clamped to the image.
	Size uint32
	Data []byte
}

// walkChunks enumerates the sub-chunks of every RIFF/WAVE block in the
// file image, preserving file order. Multiple concatenated RIFF blocks
// are walked back to back. A four-byte zero id stops the walk; it is how
// zero-padded tails end.
func walkChunks(data []byte) ([]Chunk, error) {
	cur := newCursor(data)

	var chunks []Chunk

	for {
		id, err := cur.readID()
		if err != nil {
			return nil, fmt.Errorf("failed to read RIFF header: %w", err)
		}

		if id != riff.RiffID {
			return nil, fmt.Errorf("%w: expected RIFF, got %q", ErrBadFormat, id[:])
		}

		outerSize, err := cur.readU32()
		if err != nil {
			return nil, fmt.Errorf("failed to read RIFF size: %w", err)
		}

		format, err := cur.readID()
		if err != nil {
			return nil, fmt.Errorf("failed to read RIFF format: %w", err)
		}

		if format != riff.WavFormatID {
			return nil, fmt.Errorf("%w: expected WAVE, got %q", ErrBadFormat, format[:])
		}

		// the declared outer size counts from just past the size field,
		// so the chunk region ends at blockStart+8+outerSize, which is
		// outerSize-4 bytes past the WAVE id
		blockEnd := cur.pos - 4 + int(outerSize)
		for cur.pos < blockEnd && cur.pos < len(data) {
			rawID, err := cur.readU32()
			if err != nil {
				return nil, fmt.Errorf("failed to read chunk id: %w", err)
			}

			if rawID == 0 {
				return chunks, nil
			}

			size, err := cur.readU32()
			if err != nil {
				return nil, fmt.Errorf("failed to read chunk size: %w", err)
			}

			offset := cur.pos

			avail := offset + int(size)
			if avail > len(data) {
				avail = len(data)
			}

			var chunkID [4]byte

			binary.LittleEndian.PutUint32(chunkID[:], rawID)
			chunks = append(chunks, Chunk{ID: chunkID, Size: size, Data: data[offset:avail]})

			// The declared size is trusted for advancing even when it
			// overruns the image; the loop conditions stop the walk.
			cur.pos = offset + int(size)
		}

		if cur.pos >= len(data) {
			return chunks, nil
		}
	}
}
