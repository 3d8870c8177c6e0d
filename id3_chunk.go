package particlewav

import (
	"fmt"
)

// loadID3 reads an embedded ID3v2.3 tag chunk. Only major version 3 is
// decoded; other versions fail with ErrUnsupportedVersion and store no
// entries.
func (f *File) loadID3(ch Chunk) error {
	cur := newCursor(ch.Data)

	if err := cur.advance(3); err != nil { // "ID3"
		return fmt.Errorf("failed to read ID3 marker: %w", err)
	}

	version, err := cur.readU16()
	if err != nil {
		return fmt.Errorf("failed to read ID3 version: %w", err)
	}

	if version&0xFF != 3 {
		return fmt.Errorf("%w: ID3v2.%d", ErrUnsupportedVersion, version&0xFF)
	}

	if _, err := cur.readU8(); err != nil { // tag flags
		return fmt.Errorf("failed to read ID3 flags: %w", err)
	}

	rawSize, err := cur.readU32()
	if err != nil {
		return fmt.Errorf("failed to read ID3 size: %w", err)
	}

	frameData, err := cur.readBytes(int(decodeSynchsafe(rawSize)))
	if err != nil {
		return fmt.Errorf("failed to read ID3 frames: %w", err)
	}

	frames := newCursor(frameData)

	var entries []ID3Entry

	for frames.remaining() >= 10 {
		id, err := frames.readU32()
		if err != nil {
			return fmt.Errorf("failed to read ID3 frame id: %w", err)
		}

		if id == 0 {
			// zero padding ends the frame list
			break
		}

		rawFrameSize, err := frames.readU32()
		if err != nil {
			return fmt.Errorf("failed to read ID3 frame size: %w", err)
		}

		flags, err := frames.readU16()
		if err != nil {
			return fmt.Errorf("failed to read ID3 frame flags: %w", err)
		}

		payload, err := frames.readBytes(int(decodeSynchsafe(rawFrameSize)))
		if err != nil {
			return fmt.Errorf("failed to read ID3 frame %q payload: %w", FourCC(id), err)
		}

		entries = append(entries, ID3Entry{
			ID:    id,
			Flags: flags,
			Value: append([]byte(nil), payload...),
		})
	}

	f.ID3Entries = append(f.ID3Entries, entries...)

	return nil
}

// decodeSynchsafe converts a 28-bit synchsafe size to its plain value.
// The argument is the four size bytes read in file order as a
// little-endian uint32, so the byte holding the most significant seven
// bits sits in the low byte.
func decodeSynchsafe(raw uint32) uint32 {
	return ((raw >> 24) & 0x7F) |
		((raw>>16)&0x7F)<<7 |
		((raw>>8)&0x7F)<<14 |
		(raw&0x7F)<<21
}

// encodeSynchsafe is the inverse of decodeSynchsafe for values below
// 2^28.
func encodeSynchsafe(v uint32) uint32 {
	return ((v >> 21) & 0x7F) |
		((v>>14)&0x7F)<<8 |
		((v>>7)&0x7F)<<16 |
		(v&0x7F)<<24
}
