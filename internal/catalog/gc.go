package catalog

import (
	"os"

	"github.com/natefinch/atomic"
)

// GarbageCollect compacts the database by rebuilding it at scratchPath and
// swapping it into place (spec §4.11). scratchPath must not already exist
// as a live database; it is overwritten.
//
// Source slots are replayed in index order: ORIG is re-inserted (which
// re-runs dedup on the fresh table, so tombstoned duplicates collapse
// naturally), and any derivative already materialised in the source is
// carried over byte-for-byte rather than regenerated through the codec
// (resolving the open question in spec §9 in favour of byte identity).
func (c *Catalog) GarbageCollect(scratchPath string) error {
	scratch, err := Create(scratchPath, CreateOptions{
		MaxFiles: c.header.MaxFiles,
		ThumbRes: c.header.ResResized[Thumb],
		SmallRes: c.header.ResResized[Small],
	}, c.codec, c.hasher)
	if err != nil {
		return err
	}

	if err := c.copyLiveSlotsTo(scratch); err != nil {
		scratch.Close()
		os.Remove(scratchPath)
		return err
	}

	if err := scratch.Close(); err != nil {
		os.Remove(scratchPath)
		return err
	}

	if err := atomic.ReplaceFile(scratchPath, c.path); err != nil {
		os.Remove(scratchPath)
		return newErr(CodeIO, err)
	}

	return c.reload()
}

func (c *Catalog) copyLiveSlotsTo(scratch *Catalog) error {
	for i := range c.slots {
		m := c.slots[i]
		if !m.IsValid {
			continue
		}

		orig, err := readPayload(c.file, m.Offset[Orig], m.Size[Orig])
		if err != nil {
			return err
		}
		if err := scratch.Insert(orig, m.PictID); err != nil {
			return err
		}

		if m.Offset[Small] != 0 {
			small, err := readPayload(c.file, m.Offset[Small], m.Size[Small])
			if err != nil {
				return err
			}
			if err := scratch.materialiseDerivative(m.PictID, Small, small); err != nil {
				return err
			}
		}

		if m.Offset[Thumb] != 0 {
			thumb, err := readPayload(c.file, m.Offset[Thumb], m.Size[Thumb])
			if err != nil {
				return err
			}
			if err := scratch.materialiseDerivative(m.PictID, Thumb, thumb); err != nil {
				return err
			}
		}
	}
	return nil
}

// reload re-reads the (now swapped-in) file at c.path, replacing c's
// header, slots and indexes in place. The file descriptor c.file held
// before GarbageCollect pointed at the old inode, which atomic.ReplaceFile
// has since unlinked; reload gives the caller a handle consistent with
// what is now on disk without forcing it to call Open again itself.
func (c *Catalog) reload() error {
	if c.file != nil {
		c.file.Close()
	}

	f, err := os.OpenFile(c.path, os.O_RDWR, 0o644)
	if err != nil {
		return newErr(CodeIO, err)
	}

	header, err := readHeaderAt(f)
	if err != nil {
		f.Close()
		return err
	}

	slots := make([]Metadata, header.MaxFiles)
	for i := range slots {
		m, err := readSlotAt(f, i)
		if err != nil {
			f.Close()
			return err
		}
		slots[i] = m
	}

	c.file = f
	c.header = header
	c.slots = slots
	c.byID = make(map[string]int, header.NumFiles)
	c.bySHA = make(map[[32]byte][]int, header.NumFiles)
	c.rebuildIndexes()

	return nil
}
