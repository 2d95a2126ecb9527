package catalog

// Delete tombstones pictID: the slot's IsValid flag is cleared and its
// payload bytes are abandoned in place (spec §4.7). The bytes are only
// reclaimed by GarbageCollect; Delete itself never shrinks the file.
func (c *Catalog) Delete(pictID string) error {
	if c.header.NumFiles == 0 {
		return newErr(CodeIO, nil)
	}

	idx, ok := c.byID[pictID]
	if !ok {
		return newErr(CodeFileNotFound, nil)
	}

	m := c.slots[idx]
	m.IsValid = false
	if err := writeSlotAt(c.file, idx, &m); err != nil {
		return err
	}
	c.slots[idx] = m

	delete(c.byID, pictID)
	c.removeFromSHAIndex(m.SHA, idx)

	c.header.NumFiles--
	c.header.DBVersion++
	if err := writeHeaderAt(c.file, &c.header); err != nil {
		return err
	}

	return nil
}

func (c *Catalog) removeFromSHAIndex(sha [32]byte, idx int) {
	list := c.bySHA[sha]
	for i, v := range list {
		if v == idx {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(c.bySHA, sha)
	} else {
		c.bySHA[sha] = list
	}
}
