package particlewav

import "fmt"

// loadDisp reads a display chunk: a clipboard-format type code followed
// by the image payload.
func (f *File) loadDisp(ch Chunk) error {
	cur := newCursor(ch.Data)

	dispType, err := cur.readU32()
	if err != nil {
		return fmt.Errorf("failed to read DISP type: %w", err)
	}

	payload, err := cur.readBytes(cur.remaining())
	if err != nil {
		return fmt.Errorf("failed to read DISP payload: %w", err)
	}

	f.Images = append(f.Images, DISPEntry{
		Type: dispType,
		Data: append([]byte(nil), payload...),
	})

	return nil
}
