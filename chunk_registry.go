package particlewav

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

var errChunkEncodeNotSupported = errors.New("chunk encode not supported")

// ChunkHandler is a typed handler for RIFF/WAV chunks. Decode parses one
// chunk payload into the document; Encode appends the handler's chunk to
// an output image and may return errChunkEncodeNotSupported.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte, listType [4]byte) bool
	Decode(f *File, ch Chunk) error
	Encode(f *File, buf *bytes.Buffer) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&dataChunkHandler{},
			&smplChunkHandler{},
			&listChunkHandler{},
			&id3ChunkHandler{},
			&instChunkHandler{},
			&dispChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to the first matching handler. It reports
// whether any handler claimed the chunk; unclaimed ids are not an error.
func (r *ChunkRegistry) Decode(f *File, ch Chunk) (bool, error) {
	if r == nil || f == nil {
		return false, nil
	}

	listType := sniffListType(ch)

	for _, handler := range r.handlers {
		if handler.CanHandle(ch.ID, listType) {
			err := handler.Decode(f, ch)
			if err != nil {
				return true, fmt.Errorf("chunk handler decode failed: %w", err)
			}

			return true, nil
		}
	}

	return false, nil
}

// EncodeOptional appends every chunk the handlers choose to emit for the
// document, in registry order.
func (r *ChunkRegistry) EncodeOptional(f *File, buf *bytes.Buffer) error {
	for _, handler := range r.handlers {
		err := handler.Encode(f, buf)
		if err == nil || errors.Is(err, errChunkEncodeNotSupported) {
			continue
		}

		return fmt.Errorf("failed to encode chunk with %T: %w", handler, err)
	}

	return nil
}

func sniffListType(ch Chunk) [4]byte {
	var listType [4]byte

	if ch.ID == CIDList && len(ch.Data) >= 4 {
		copy(listType[:], ch.Data[:4])
	}

	return listType
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == riff.FmtID
}

func (h *fmtChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadFmt(ch)
}

func (h *fmtChunkHandler) Encode(_ *File, _ *bytes.Buffer) error {
	return errChunkEncodeNotSupported
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == riff.DataFormatID
}

func (h *dataChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadData(ch)
}

func (h *dataChunkHandler) Encode(_ *File, _ *bytes.Buffer) error {
	return errChunkEncodeNotSupported
}

type smplChunkHandler struct{}

func (h *smplChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDSmpl
}

func (h *smplChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadSmpl(ch)
}

func (h *smplChunkHandler) Encode(f *File, buf *bytes.Buffer) error {
	if len(f.Loops) == 0 {
		return nil
	}

	buf.Write(f.createSmpl())

	return nil
}

type listChunkHandler struct{}

func (h *listChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDList
}

func (h *listChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadList(ch)
}

func (h *listChunkHandler) Encode(f *File, buf *bytes.Buffer) error {
	if len(f.ListEntries) == 0 {
		return nil
	}

	buf.Write(f.createList())

	return nil
}

type id3ChunkHandler struct{}

func (h *id3ChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDID3
}

func (h *id3ChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadID3(ch)
}

func (h *id3ChunkHandler) Encode(_ *File, _ *bytes.Buffer) error {
	return errChunkEncodeNotSupported
}

type instChunkHandler struct{}

func (h *instChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDInst
}

func (h *instChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadInst(ch)
}

func (h *instChunkHandler) Encode(_ *File, _ *bytes.Buffer) error {
	return errChunkEncodeNotSupported
}

type dispChunkHandler struct{}

func (h *dispChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDDisp || chunkID == CIDDispLower
}

func (h *dispChunkHandler) Decode(f *File, ch Chunk) error {
	return f.loadDisp(ch)
}

func (h *dispChunkHandler) Encode(_ *File, _ *bytes.Buffer) error {
	return errChunkEncodeNotSupported
}
