package catalog

import "encoding/binary"

// On-disk layout, little-endian, fixed-width integers, NUL-terminated
// fixed-length strings. Byte widths match spec.md §6.1 exactly:
// db_version/num_files/max_files/res_orig/size are 32-bit, offset is
// 64-bit, res_resized/is_valid are 16-bit, pict_id is 128 bytes, db_name
// is 32 bytes, sha is 32 bytes. The remainder of each record is reserved
// padding, kept zero, so a future version can grow a field in place —
// the same technique as the TKC1/SLC1 formats this module is patterned on.
const (
	headerSize = 64

	offDBName      = 0   // [32]byte
	offDBVersion   = 32  // uint32
	offNumFiles    = 36  // uint32
	offMaxFiles    = 40  // uint32
	offResResized  = 44  // [4]uint16 = thumbW, thumbH, smallW, smallH
	offHeaderRsvd  = 52  // 12 reserved bytes
	_              = uint(headerSize-offHeaderRsvd-12) + uint(offHeaderRsvd+12-headerSize) // compile-time layout check: overflows unless the reserved bytes end at headerSize

	metadataSize = 208

	offPictID   = 0   // [128]byte
	offSHA      = 128 // [32]byte
	offResOrig  = 160 // [2]uint32
	offSize     = 168 // [3]uint32
	offOffset   = 180 // [3]uint64
	offIsValid  = 204 // uint16
	offMetaRsvd = 206 // 2 reserved bytes
)

// encodeHeader serialises h into a fixed headerSize buffer.
func encodeHeader(h *Header) []byte {
	buf := make([]byte, headerSize)

	name := h.DBName
	if len(name) > MaxDBNameLen {
		name = name[:MaxDBNameLen]
	}
	copy(buf[offDBName:offDBName+MaxDBNameLen], name)
	// remaining byte of the 32-byte field, and all bytes past the copied
	// name, are left zero — the NUL terminator(s).

	binary.LittleEndian.PutUint32(buf[offDBVersion:], h.DBVersion)
	binary.LittleEndian.PutUint32(buf[offNumFiles:], h.NumFiles)
	binary.LittleEndian.PutUint32(buf[offMaxFiles:], h.MaxFiles)

	binary.LittleEndian.PutUint16(buf[offResResized:], h.ResResized[Thumb].Width)
	binary.LittleEndian.PutUint16(buf[offResResized+2:], h.ResResized[Thumb].Height)
	binary.LittleEndian.PutUint16(buf[offResResized+4:], h.ResResized[Small].Width)
	binary.LittleEndian.PutUint16(buf[offResResized+6:], h.ResResized[Small].Height)

	return buf
}

// decodeHeader parses a headerSize buffer produced by encodeHeader.
func decodeHeader(buf []byte) Header {
	var h Header

	h.DBName = cstring(buf[offDBName : offDBName+MaxDBNameLen+1])
	h.DBVersion = binary.LittleEndian.Uint32(buf[offDBVersion:])
	h.NumFiles = binary.LittleEndian.Uint32(buf[offNumFiles:])
	h.MaxFiles = binary.LittleEndian.Uint32(buf[offMaxFiles:])

	h.ResResized[Thumb] = Box{
		Width:  binary.LittleEndian.Uint16(buf[offResResized:]),
		Height: binary.LittleEndian.Uint16(buf[offResResized+2:]),
	}
	h.ResResized[Small] = Box{
		Width:  binary.LittleEndian.Uint16(buf[offResResized+4:]),
		Height: binary.LittleEndian.Uint16(buf[offResResized+6:]),
	}

	return h
}

// encodeMetadata serialises m into a fixed metadataSize buffer.
func encodeMetadata(m *Metadata) []byte {
	buf := make([]byte, metadataSize)

	id := m.PictID
	if len(id) > MaxPictIDLen {
		id = id[:MaxPictIDLen]
	}
	copy(buf[offPictID:offPictID+MaxPictIDLen], id)

	copy(buf[offSHA:offSHA+32], m.SHA[:])

	binary.LittleEndian.PutUint32(buf[offResOrig:], m.ResOrig[0])
	binary.LittleEndian.PutUint32(buf[offResOrig+4:], m.ResOrig[1])

	for r := 0; r < numResolutions; r++ {
		binary.LittleEndian.PutUint32(buf[offSize+4*r:], m.Size[r])
		binary.LittleEndian.PutUint64(buf[offOffset+8*r:], m.Offset[r])
	}

	var valid uint16
	if m.IsValid {
		valid = 1
	}
	binary.LittleEndian.PutUint16(buf[offIsValid:], valid)

	return buf
}

// decodeMetadata parses a metadataSize buffer produced by encodeMetadata.
func decodeMetadata(buf []byte) Metadata {
	var m Metadata

	m.PictID = cstring(buf[offPictID : offPictID+MaxPictIDLen+1])
	copy(m.SHA[:], buf[offSHA:offSHA+32])

	m.ResOrig[0] = binary.LittleEndian.Uint32(buf[offResOrig:])
	m.ResOrig[1] = binary.LittleEndian.Uint32(buf[offResOrig+4:])

	for r := 0; r < numResolutions; r++ {
		m.Size[r] = binary.LittleEndian.Uint32(buf[offSize+4*r:])
		m.Offset[r] = binary.LittleEndian.Uint64(buf[offOffset+8*r:])
	}

	m.IsValid = binary.LittleEndian.Uint16(buf[offIsValid:]) == 1

	return m
}

// cstring returns the string up to the first NUL byte (or all of buf, if
// none is present).
func cstring(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// slotOffset returns the absolute file offset of metadata slot i.
func slotOffset(i int) int64 {
	return int64(headerSize + i*metadataSize)
}

// payloadAreaStart returns the first byte offset available for appended
// payloads, given a capacity of maxFiles slots.
func payloadAreaStart(maxFiles uint32) int64 {
	return int64(headerSize) + int64(maxFiles)*int64(metadataSize)
}
