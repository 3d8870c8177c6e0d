package particlewav

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestSynchsafeRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF, 0x200000, 0xFFFFFFF}

	for _, v := range values {
		if got := decodeSynchsafe(encodeSynchsafe(v)); got != v {
			t.Errorf("decode(encode(%#x)) = %#x", v, got)
		}
	}
}

func TestDecodeSynchsafeByteOrder(t *testing.T) {
	// the four size bytes 00 00 02 01 (file order) carry 0x101
	raw := binary.LittleEndian.Uint32([]byte{0x00, 0x00, 0x02, 0x01})

	if got := decodeSynchsafe(raw); got != 0x101 {
		t.Fatalf("decodeSynchsafe = %#x, want 0x101", got)
	}
}

func TestLoadID3(t *testing.T) {
	f := NewFile()
	payload := testID3Payload(t,
		ID3Entry{ID: 0x32544954, Flags: 0x4000, Value: []byte("\x00grouping")}, // TIT2
		ID3Entry{ID: 0x31525054, Value: []byte("\x00artist")},                  // TPR1
	)

	if err := f.loadID3(Chunk{ID: CIDID3, Size: uint32(len(payload)), Data: payload}); err != nil {
		t.Fatalf("loadID3 failed: %v", err)
	}

	if len(f.ID3Entries) != 2 {
		t.Fatalf("got %d frames, want 2", len(f.ID3Entries))
	}

	if FourCC(f.ID3Entries[0].ID) != "TIT2" || f.ID3Entries[0].Flags != 0x4000 {
		t.Fatalf("frame 0 = %+v", f.ID3Entries[0])
	}

	if string(f.ID3Entries[1].Value) != "\x00artist" {
		t.Fatalf("frame 1 payload = %q", f.ID3Entries[1].Value)
	}
}

func TestLoadID3StopsAtZeroPadding(t *testing.T) {
	payload := testID3Payload(t, ID3Entry{ID: 0x31544954, Value: []byte("x")})

	// grow the declared tag size and append zero padding
	padded := append(append([]byte(nil), payload...), make([]byte, 16)...)
	binary.LittleEndian.PutUint32(padded[6:], encodeSynchsafe(uint32(len(padded)-10)))

	f := NewFile()
	if err := f.loadID3(Chunk{ID: CIDID3, Size: uint32(len(padded)), Data: padded}); err != nil {
		t.Fatalf("loadID3 failed: %v", err)
	}

	if len(f.ID3Entries) != 1 {
		t.Fatalf("got %d frames, want 1", len(f.ID3Entries))
	}
}

func TestLoadID3RejectsOtherVersions(t *testing.T) {
	payload := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 0}

	f := NewFile()

	err := f.loadID3(Chunk{ID: CIDID3, Size: uint32(len(payload)), Data: payload})
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v, want ErrUnsupportedVersion", err)
	}

	if len(f.ID3Entries) != 0 {
		t.Fatalf("frames stored despite version error: %+v", f.ID3Entries)
	}
}

func TestLoadID3TruncatedFrames(t *testing.T) {
	payload := testID3Payload(t, ID3Entry{ID: 0x31544954, Value: []byte("abcdef")})
	payload = payload[:len(payload)-3]

	f := NewFile()

	err := f.loadID3(Chunk{ID: CIDID3, Size: uint32(len(payload)), Data: payload})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}
