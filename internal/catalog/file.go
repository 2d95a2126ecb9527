package catalog

import (
	"io"
	"os"
)

// readHeaderAt reads and decodes the header from f at offset 0.
func readHeaderAt(f *os.File) (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return Header{}, newErr(CodeIO, err)
	}
	return decodeHeader(buf), nil
}

// writeHeaderAt flushes h to f at offset 0.
func writeHeaderAt(f *os.File, h *Header) error {
	if _, err := f.WriteAt(encodeHeader(h), 0); err != nil {
		return newErr(CodeIO, err)
	}
	return nil
}

// readSlotAt reads and decodes metadata slot i from f.
func readSlotAt(f *os.File, i int) (Metadata, error) {
	buf := make([]byte, metadataSize)
	if _, err := f.ReadAt(buf, slotOffset(i)); err != nil {
		return Metadata{}, newErr(CodeIO, err)
	}
	return decodeMetadata(buf), nil
}

// writeSlotAt flushes metadata slot i to f.
func writeSlotAt(f *os.File, i int, m *Metadata) error {
	if _, err := f.WriteAt(encodeMetadata(m), slotOffset(i)); err != nil {
		return newErr(CodeIO, err)
	}
	return nil
}

// appendPayload writes buf at the current end of f and returns the offset
// it was written at.
func appendPayload(f *os.File, buf []byte) (uint64, error) {
	off, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, newErr(CodeIO, err)
	}
	if _, err := f.Write(buf); err != nil {
		return 0, newErr(CodeIO, err)
	}
	return uint64(off), nil
}

// readPayload reads length bytes starting at offset from f.
func readPayload(f *os.File, offset uint64, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, int64(offset)); err != nil {
		return nil, newErr(CodeIO, err)
	}
	return buf, nil
}
