package particlewav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/riff"
)

var (
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDID3 is the chunk ID for an embedded ID3 tag chunk.
	CIDID3 = [4]byte{'i', 'd', '3', ' '}
	// CIDInst is the chunk ID for an instrument chunk.
	CIDInst = [4]byte{'i', 'n', 's', 't'}
	// CIDDisp is the chunk ID for a display chunk. Writers disagree on
	// the letter case; both spellings are accepted.
	CIDDisp      = [4]byte{'D', 'I', 'S', 'P'}
	CIDDispLower = [4]byte{'d', 'i', 's', 'p'}
	// CIDInfo is the LIST sub-type for INFO entries.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}
	// CIDAdtl is the LIST sub-type for associated data.
	CIDAdtl = [4]byte{'a', 'd', 't', 'l'}
)

// INFO identifiers, stored as their little-endian uint32 file
// representation. See https://exiftool.org/TagNames/RIFF.html#Info
const (
	MetaINAM uint32 = 0x4D414E49 // track name
	MetaIPRD uint32 = 0x44525049 // album title
	MetaIART uint32 = 0x54524149 // artist
	MetaICMT uint32 = 0x544D4349 // comments
	MetaICRD uint32 = 0x44524349 // year
	MetaIGNR uint32 = 0x524E4749 // genre
	MetaITRK uint32 = 0x4B525449 // track number
	MetaIENG uint32 = 0x474E4549 // engineer
)

// Sampler loop types. Values 3-31 are reserved; 32 and up are vendor
// specific.
const (
	LoopForward     uint32 = 0
	LoopAlternating uint32 = 1
	LoopBackward    uint32 = 2
)

// DefaultBaseNote is the MIDI unity note used when no smpl chunk
// provides one.
const DefaultBaseNote uint32 = 64

// LoopPoint is one sampler loop record from a smpl chunk.
type LoopPoint struct {
	CuePointID uint32
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32
}

// ListEntry is one LIST/INFO record. Text holds the payload exactly as
// stored in the file, including NUL termination and even-length padding.
type ListEntry struct {
	ID   uint32
	Text []byte
}

// ID3Entry is one ID3v2.3 frame.
type ID3Entry struct {
	ID    uint32
	Flags uint16
	Value []byte
}

// DISPEntry is one display record: a clipboard-format type code and its
// payload.
type DISPEntry struct {
	Type uint32
	Data []byte
}

// InstEntry holds the seven fields of an instrument chunk.
type InstEntry struct {
	UnshiftedNote uint8
	FineTune      uint8
	Gain          uint8
	LowNote       uint8
	HiNote        uint8
	LowVel        uint8
	HiVel         uint8
}

// File is an in-memory WAV document: the format descriptor, the raw
// interleaved sample bytes exactly as they appeared in the data chunk,
// and the auxiliary metadata collected from the other chunks.
type File struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
	BaseNote      uint32

	Samples     []byte
	Loops       []LoopPoint
	ListEntries []ListEntry
	ID3Entries  []ID3Entry
	Images      []DISPEntry
	Inst        InstEntry

	bytesPerSample uint16
	imageSize      int
}

// NewFile returns an empty document.
func NewFile() *File {
	return &File{BaseNote: DefaultBaseNote}
}

// Reset restores the document to its initial empty state.
func (f *File) Reset() {
	*f = File{BaseNote: DefaultBaseNote}
}

// LoadFromMemory populates the document from a complete RIFF/WAVE file
// image. A damaged envelope, fmt chunk, or data chunk fails the load;
// damaged auxiliary chunks are skipped, and unknown chunk ids are
// ignored.
func (f *File) LoadFromMemory(data []byte) error {
	f.Reset()
	f.imageSize = len(data)

	chunks, err := walkChunks(data)
	if err != nil {
		return err
	}

	registry := newDefaultChunkRegistry()
	for _, ch := range chunks {
		_, err := registry.Decode(f, ch)
		if err == nil {
			continue
		}

		if ch.ID == riff.FmtID || ch.ID == riff.DataFormatID {
			return err
		}
	}

	return nil
}

func (f *File) loadFmt(ch Chunk) error {
	fmtChunk, err := decodeFmtChunk(ch)
	if err != nil {
		return fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	f.AudioFormat = fmtChunk.AudioFormat
	f.NumChannels = fmtChunk.NumChannels
	f.SampleRate = fmtChunk.SampleRate
	f.BitsPerSample = fmtChunk.BitsPerSample
	f.bytesPerSample = fmtChunk.BitsPerSample / 8

	return nil
}

func (f *File) loadData(ch Chunk) error {
	// The declared size is allocated in full, but a size the file image
	// cannot possibly hold is rejected rather than committed to memory.
	if int64(ch.Size) > int64(f.imageSize) {
		return fmt.Errorf("%w: data chunk declares %d bytes in a %d byte file", ErrInvalidData, ch.Size, f.imageSize)
	}

	f.Samples = make([]byte, ch.Size)
	copy(f.Samples, ch.Data)

	return nil
}

// TotalSamples returns the number of frames held by the raw sample
// buffer; a trailing partial frame does not count.
func (f *File) TotalSamples() uint32 {
	blockAlign := uint32(f.NumChannels) * uint32(f.bytesPerSample)
	if blockAlign == 0 {
		return 0
	}

	return uint32(uint64(len(f.Samples)) / uint64(blockAlign))
}

// Hz returns the sample rate.
func (f *File) Hz() uint32 { return f.SampleRate }

// Channels returns the channel count.
func (f *File) Channels() uint16 { return f.NumChannels }

// LoopPoints returns the sampler loops that survived loading.
func (f *File) LoopPoints() []LoopPoint { return f.Loops }

// AddImage appends a DISP record. It reports false when the payload does
// not fit the chunk size field.
func (f *File) AddImage(imageType uint32, img []byte) bool {
	if uint64(len(img)) > math.MaxUint32 {
		return false
	}

	f.Images = append(f.Images, DISPEntry{Type: imageType, Data: img})

	return true
}

// SetInstrument replaces the instrument entry.
func (f *File) SetInstrument(inst InstEntry) {
	f.Inst = inst
}

// FourCC renders a little-endian uint32 chunk or entry identifier as its
// four-character ASCII form.
func FourCC(id uint32) string {
	var b [4]byte

	binary.LittleEndian.PutUint32(b[:], id)

	return string(b[:])
}
