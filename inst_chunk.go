package particlewav

import "fmt"

// loadInst reads the seven one-byte fields of an instrument chunk.
func (f *File) loadInst(ch Chunk) error {
	cur := newCursor(ch.Data)

	fields := []*uint8{
		&f.Inst.UnshiftedNote,
		&f.Inst.FineTune,
		&f.Inst.Gain,
		&f.Inst.LowNote,
		&f.Inst.HiNote,
		&f.Inst.LowVel,
		&f.Inst.HiVel,
	}

	for i, field := range fields {
		v, err := cur.readU8()
		if err != nil {
			return fmt.Errorf("failed to read instrument field %d: %w", i, err)
		}

		*field = v
	}

	return nil
}
