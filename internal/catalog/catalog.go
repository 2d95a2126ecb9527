package catalog

import "os"

// Codec is the external JPEG collaborator (spec §6.2): decode-probe and
// resize-to-fit. The concrete implementation lives in internal/codec;
// catalog only depends on this narrow interface so it never imports an
// image-decoding library directly.
type Codec interface {
	// Probe returns the pixel dimensions of a JPEG buffer.
	Probe(buf []byte) (width, height uint32, err error)
	// ResizeFit produces a JPEG whose dimensions are each <= the given
	// bound, preserving aspect ratio and never enlarging.
	ResizeFit(buf []byte, maxW, maxH uint32) ([]byte, error)
}

// Hasher is the external content-hash collaborator (spec §1): SHA-256
// treated as a black box.
type Hasher interface {
	Sum(buf []byte) [32]byte
}

// CreateOptions configures a new database. MaxFiles and the two bounding
// boxes are fixed for the lifetime of the file.
type CreateOptions struct {
	MaxFiles uint32
	ThumbRes Box
	SmallRes Box
}

// Catalog is the in-memory handle to an open database: the header, the
// full metadata table, and auxiliary indexes for O(1) lookup. A Catalog
// exclusively owns its file descriptor and metadata slice (spec §3,
// "Lifetimes") and is not safe for concurrent use (spec §5).
type Catalog struct {
	file   *os.File
	path   string
	header Header
	slots  []Metadata

	// In-memory indexes, rebuilt on every Open/Create per spec §9 ("An
	// implementer may keep auxiliary indexes ... these must be rebuilt
	// on open and not persisted"). Never written to disk.
	byID  map[string]int
	bySHA map[[32]byte][]int

	codec  Codec
	hasher Hasher
}

// Path returns the filesystem path the catalog was created or opened from.
func (c *Catalog) Path() string { return c.path }

// Header returns a copy of the current in-memory header.
func (c *Catalog) Header() Header { return c.header }

func validateCreateOptions(opts CreateOptions) error {
	if opts.MaxFiles == 0 || opts.MaxFiles > MaxMaxFiles {
		return newErr(CodeMaxFilesOutOfRange, nil)
	}
	return nil
}

// Create initialises a new, empty database at path. Any existing file at
// path is truncated, per spec §4.2.
func Create(path string, opts CreateOptions, codec Codec, hasher Hasher) (*Catalog, error) {
	if err := validateCreateOptions(opts); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newErr(CodeIO, err)
	}

	header := Header{
		DBName:     CatName,
		DBVersion:  0,
		NumFiles:   0,
		MaxFiles:   opts.MaxFiles,
		ResResized: [2]Box{opts.ThumbRes, opts.SmallRes},
	}

	slots := make([]Metadata, opts.MaxFiles)

	if err := writeHeaderAt(f, &header); err != nil {
		f.Close()
		return nil, err
	}

	for i := range slots {
		if err := writeSlotAt(f, i, &slots[i]); err != nil {
			f.Close()
			return nil, err
		}
	}

	c := &Catalog{
		file:   f,
		path:   path,
		header: header,
		slots:  slots,
		byID:   make(map[string]int),
		bySHA:  make(map[[32]byte][]int),
		codec:  codec,
		hasher: hasher,
	}

	return c, nil
}

// Open opens an existing database file, reading the header and the full
// metadata table and rebuilding the in-memory indexes (spec §4.3, §9).
func Open(path string, codec Codec, hasher Hasher) (*Catalog, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, newErr(CodeIO, err)
	}

	header, err := readHeaderAt(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if header.MaxFiles > MaxMaxFiles {
		f.Close()
		return nil, newErr(CodeIO, nil)
	}

	slots := make([]Metadata, header.MaxFiles)
	for i := range slots {
		m, err := readSlotAt(f, i)
		if err != nil {
			f.Close()
			return nil, err
		}
		slots[i] = m
	}

	c := &Catalog{
		file:   f,
		path:   path,
		header: header,
		slots:  slots,
		byID:   make(map[string]int, header.NumFiles),
		bySHA:  make(map[[32]byte][]int, header.NumFiles),
		codec:  codec,
		hasher: hasher,
	}
	c.rebuildIndexes()

	return c, nil
}

// OpenReadOnly checks that path can be opened for reading, then opens it
// exactly as Open does, with a read-write descriptor. The returned Catalog
// does not restrict Insert, Delete or the lazy write of a materialised
// derivative on Read.
func OpenReadOnly(path string, codec Codec, hasher Hasher) (*Catalog, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		return nil, newErr(CodeIO, err)
	}
	f.Close()
	return Open(path, codec, hasher)
}

func (c *Catalog) rebuildIndexes() {
	for i := range c.slots {
		if c.slots[i].IsValid {
			c.byID[c.slots[i].PictID] = i
			c.bySHA[c.slots[i].SHA] = append(c.bySHA[c.slots[i].SHA], i)
		}
	}
}

// Close releases the file descriptor and metadata table. Idempotent: a
// Catalog left partially initialised by a failed Create/Open will not
// panic on Close.
func (c *Catalog) Close() error {
	if c == nil || c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	c.slots = nil
	if err != nil {
		return newErr(CodeIO, err)
	}
	return nil
}
