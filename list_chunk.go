package particlewav

import (
	"bytes"
	"fmt"
	"strings"
)

// metaReplacer canonicalizes typographic Unicode code points to their
// ASCII equivalents before an INFO payload is stored. Tag values come
// from scraped track listings and carry these characters routinely,
// while downstream sampler software only renders ASCII.
var metaReplacer = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"…", "...", // horizontal ellipsis
	"Ō", "O", // O with macron
	" ", " ", // no-break space
	"é", "e", // e with acute
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"⅓", "(1/3rd)", // vulgar fraction one third
	"ū", "u", // u with macron
	"ō", "o", // o with macron
)

// loadList reads a LIST chunk. INFO sub-chunks contribute one entry per
// record with the payload kept exactly as stored; adtl sub-chunks are
// accepted without being decoded. Any other sub-type is a format error.
func (f *File) loadList(ch Chunk) error {
	cur := newCursor(ch.Data)

	listType, err := cur.readID()
	if err != nil {
		return fmt.Errorf("failed to read LIST sub-type: %w", err)
	}

	switch listType {
	case CIDInfo:
		var entries []ListEntry

		// A lone word-alignment byte cannot hold an entry header and
		// ends the chunk.
		for cur.remaining() >= 8 {
			id, err := cur.readU32()
			if err != nil {
				return fmt.Errorf("failed to read INFO entry id: %w", err)
			}

			size, err := cur.readU32()
			if err != nil {
				return fmt.Errorf("failed to read INFO entry size: %w", err)
			}

			payload, err := cur.readBytes(int(size))
			if err != nil {
				return fmt.Errorf("failed to read INFO entry %q: %w", FourCC(id), err)
			}

			entries = append(entries, ListEntry{ID: id, Text: append([]byte(nil), payload...)})
		}

		f.ListEntries = append(f.ListEntries, entries...)

		return nil
	case CIDAdtl:
		return nil
	default:
		return fmt.Errorf("%w: unsupported LIST sub-type %q", ErrBadFormat, listType[:])
	}
}

// AddListEntry stores an INFO entry under the given identifier. The
// value is canonicalized, NUL terminated, and padded to even length; an
// existing entry with the same id is replaced in place, otherwise the
// entry is appended.
func (f *File) AddListEntry(id uint32, value string) bool {
	text := []byte(metaReplacer.Replace(value))
	text = append(text, 0)

	if len(text)%2 == 1 {
		text = append(text, 0)
	}

	entry := ListEntry{ID: id, Text: text}

	for i := range f.ListEntries {
		if f.ListEntries[i].ID == id {
			f.ListEntries[i] = entry
			return true
		}
	}

	f.ListEntries = append(f.ListEntries, entry)

	return true
}

// createList renders the file-image bytes of the LIST/INFO chunk. Entry
// payloads already satisfy NUL termination and even padding.
func (f *File) createList() []byte {
	size := uint32(4)
	for i := range f.ListEntries {
		size += uint32(len(f.ListEntries[i].Text)) + 8
	}

	buf := bytes.NewBuffer(nil)

	buf.Write(CIDList[:])
	putU32(buf, size)
	buf.Write(CIDInfo[:])

	for i := range f.ListEntries {
		putU32(buf, f.ListEntries[i].ID)
		putU32(buf, uint32(len(f.ListEntries[i].Text)))
		buf.Write(f.ListEntries[i].Text)
	}

	return buf.Bytes()
}
