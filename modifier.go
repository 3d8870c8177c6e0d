package particlewav

import (
	"fmt"
	"math"
	"strings"
)

// Context carries the batch state handed to each modifier for the file
// being processed.
type Context struct {
	// Index is the zero-based position of the current file in the batch.
	Index int
	// Total is the batch size.
	Total int
	// Audio is the decoded sample data of the current file.
	Audio Audio
}

// Modifier mutates a document between decode and encode. It reports
// false when the mutation could not be applied.
type Modifier func(f *File, ctx *Context) bool

// ExpandIndex replaces every {idx} token with the one-based file
// position, zero padded to the number of decimal digits in the batch
// size.
func ExpandIndex(s string, index, total int) string {
	width := 1
	if total > 0 {
		width = int(math.Floor(math.Log10(float64(total)))) + 1
	}

	return strings.ReplaceAll(s, "{idx}", fmt.Sprintf("%0*d", width, index+1))
}

// SetTrackByIndex returns a modifier that writes the one-based file
// position into the ITRK entry.
func SetTrackByIndex() Modifier {
	return func(f *File, ctx *Context) bool {
		return f.AddListEntry(MetaITRK, ExpandIndex("{idx}", ctx.Index, ctx.Total))
	}
}

// SetMetaString returns a modifier that writes an INFO entry under the
// given identifier after token expansion.
func SetMetaString(id uint32, value string) Modifier {
	return func(f *File, ctx *Context) bool {
		return f.AddListEntry(id, ExpandIndex(value, ctx.Index, ctx.Total))
	}
}
