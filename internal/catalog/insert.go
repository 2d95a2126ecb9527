package catalog

// Insert stores a new JPEG under pictID. If the image's content already
// exists under a different id (same SHA-256 digest), its payload and any
// already-materialised derivatives are shared rather than duplicated on
// disk; only a new metadata slot is written (spec §4.5, §4.8).
func (c *Catalog) Insert(imgBytes []byte, pictID string) error {
	if err := validatePictID(pictID); err != nil {
		return err
	}
	if _, exists := c.byID[pictID]; exists {
		return newErr(CodeDuplicateID, nil)
	}

	slotIdx, err := c.allocateSlot()
	if err != nil {
		return err
	}

	width, height, err := c.codec.Probe(imgBytes)
	if err != nil {
		return newErr(CodeCodec, err)
	}

	sha := c.hasher.Sum(imgBytes)

	m := Metadata{
		PictID:  pictID,
		SHA:     sha,
		ResOrig: [2]uint32{width, height},
		IsValid: true,
	}

	if dup, ok := c.findContentDedup(sha); ok {
		// Share every resolution already materialised on the matching
		// slot, not just ORIG: identical content implies identical
		// derivatives (spec §4.8).
		m.Size = dup.Size
		m.Offset = dup.Offset
	} else {
		off, err := appendPayload(c.file, imgBytes)
		if err != nil {
			return err
		}
		m.Size[Orig] = uint32(len(imgBytes))
		m.Offset[Orig] = off
		// THUMB and SMALL are left at Size==0/Offset==0: not yet
		// materialised, generated lazily on first Read (spec §4.9).
	}

	if err := writeSlotAt(c.file, slotIdx, &m); err != nil {
		return err
	}

	c.slots[slotIdx] = m
	c.header.NumFiles++
	c.header.DBVersion++
	if err := writeHeaderAt(c.file, &c.header); err != nil {
		return err
	}

	c.byID[pictID] = slotIdx
	c.bySHA[sha] = append(c.bySHA[sha], slotIdx)

	return nil
}

func validatePictID(pictID string) error {
	if pictID == "" || len(pictID) > MaxPictIDLen {
		return newErr(CodeInvalidPictID, nil)
	}
	return nil
}

// allocateSlot returns the index of a free slot: either a tombstone left
// behind by a prior Delete, or a fresh slot within MaxFiles capacity.
// Slots are filled lowest-first, so a tombstone is reused before any
// never-used slot, which keeps the table dense.
func (c *Catalog) allocateSlot() (int, error) {
	for i := range c.slots {
		if !c.slots[i].IsValid {
			return i, nil
		}
	}
	return -1, newErr(CodeFullDatabase, nil)
}

// findContentDedup reports whether a valid slot already holds bytewise
// identical content (spec §4.8: "sha[j] == sha[new]"). SHA-256 collisions
// are treated as impossible, so digest equality alone is equality of
// content; ties are broken by lowest slot index.
//
// The original do_name_and_content_dedup guarded its scan bound with
// `index >= max_files &&` rather than `||`, which could let the loop run
// past the table. This rebuild has no analogous bound to get wrong: it
// only ever walks bySHA[sha], a precomputed list of valid slot indices.
func (c *Catalog) findContentDedup(sha [32]byte) (Metadata, bool) {
	best := -1
	for _, idx := range c.bySHA[sha] {
		if c.slots[idx].IsValid && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return Metadata{}, false
	}
	return c.slots[best], true
}
