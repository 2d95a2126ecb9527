package catalog

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ListHuman renders the header and every valid slot as human-readable
// text, mirroring the original print_header/print_metadata layout
// (spec §4.10).
func (c *Catalog) ListHuman() string {
	var b strings.Builder

	fmt.Fprintf(&b, "*****************************************\n")
	fmt.Fprintf(&b, "**********DB HEADER START****************\n")
	fmt.Fprintf(&b, "DB NAME: %s\n", c.header.DBName)
	fmt.Fprintf(&b, "VERSION: %d\n", c.header.DBVersion)
	fmt.Fprintf(&b, "IMAGE COUNT: %d\tMAX IMAGES: %d\n", c.header.NumFiles, c.header.MaxFiles)
	fmt.Fprintf(&b, "THUMBNAIL: %d x %d\tSMALL: %d x %d\n",
		c.header.ResResized[Thumb].Width, c.header.ResResized[Thumb].Height,
		c.header.ResResized[Small].Width, c.header.ResResized[Small].Height)
	fmt.Fprintf(&b, "**********DB HEADER END******************\n")

	if c.header.NumFiles == 0 {
		fmt.Fprintf(&b, "<< empty database >>\n")
		return b.String()
	}

	for i := range c.slots {
		m := c.slots[i]
		if !m.IsValid {
			continue
		}
		fmt.Fprintf(&b, "PICTURE ID: %s\n", m.PictID)
		fmt.Fprintf(&b, "SHA: %s\n", hex.EncodeToString(m.SHA[:]))
		fmt.Fprintf(&b, "VALID: %v\n", m.IsValid)
		fmt.Fprintf(&b, "ORIGINAL RESOLUTION: %d x %d\n", m.ResOrig[0], m.ResOrig[1])
		for _, r := range []Resolution{Thumb, Small, Orig} {
			fmt.Fprintf(&b, "\t%s: offset=%d size=%d\n", r, m.Offset[r], m.Size[r])
		}
	}

	return b.String()
}

// pictureList is the wire shape of the machine listing: a flat array of
// valid picture ids in slot order.
type pictureList struct {
	Pictures []string `json:"Pictures"`
}

// ListJSON renders every valid slot's id as a JSON object of the shape
// {"Pictures": [id, id, ...]} (spec §4.10). The original's do_list(JSON)
// allocated its output buffer one byte short of len+1; that bug has no
// analogue here since encoding/json owns its own buffer growth.
func (c *Catalog) ListJSON() (string, error) {
	ids := make([]string, 0, c.header.NumFiles)
	for i := range c.slots {
		if c.slots[i].IsValid {
			ids = append(ids, c.slots[i].PictID)
		}
	}

	buf, err := json.Marshal(pictureList{Pictures: ids})
	if err != nil {
		return "", newErr(CodeIO, err)
	}
	return string(buf), nil
}
