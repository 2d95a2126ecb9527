package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCodec is a deterministic Codec test double: Probe always reports
// 1024x768 whatever the buffer holds, and ResizeFit just tags the
// payload with the target box, avoiding any real image decoding in
// catalog-level unit tests.
type fakeCodec struct{}

func (fakeCodec) Probe(buf []byte) (uint32, uint32, error) {
	return 1024, 768, nil
}

func (fakeCodec) ResizeFit(buf []byte, maxW, maxH uint32) ([]byte, error) {
	out := append([]byte(nil), buf...)
	out = append(out, byte(maxW), byte(maxH))
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Sum(buf []byte) [32]byte {
	var sum [32]byte
	for i, b := range buf {
		sum[i%32] ^= b
	}
	return sum
}

func newTestCatalog(t *testing.T, maxFiles uint32) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pictdb")
	c, err := Create(path, CreateOptions{
		MaxFiles: maxFiles,
		ThumbRes: Box{Width: 64, Height: 64},
		SmallRes: Box{Width: 256, Height: 256},
	}, fakeCodec{}, fakeHasher{})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCreateEmptyDatabase(t *testing.T) {
	c := newTestCatalog(t, 10)

	h := c.Header()
	require.Equal(t, CatName, h.DBName)
	require.Equal(t, uint32(0), h.NumFiles)
	require.Equal(t, uint32(10), h.MaxFiles)

	out := c.ListHuman()
	require.Contains(t, out, "DB NAME: EPFL PictDB binary")
	require.Contains(t, out, "IMAGE COUNT: 0")
	require.Contains(t, out, "empty database")
}

func TestCreateRejectsOutOfRangeMaxFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pictdb")
	_, err := Create(path, CreateOptions{MaxFiles: MaxMaxFiles + 1}, fakeCodec{}, fakeHasher{})
	require.Error(t, err)
	require.Equal(t, CodeMaxFilesOutOfRange, CodeOf(err))
}

func TestInsertThenRead(t *testing.T) {
	c := newTestCatalog(t, 10)

	payload := []byte("fake jpeg bytes")
	require.NoError(t, c.Insert(payload, "pic1"))

	got, err := c.Read("pic1", Orig)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestInsertDuplicateID(t *testing.T) {
	c := newTestCatalog(t, 10)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))

	err := c.Insert([]byte("b"), "pic1")
	require.Error(t, err)
	require.Equal(t, CodeDuplicateID, CodeOf(err))
}

func TestInsertDedupSharesOrigOffset(t *testing.T) {
	c := newTestCatalog(t, 10)

	payload := []byte("identical bytes")
	require.NoError(t, c.Insert(payload, "a"))
	require.NoError(t, c.Insert(payload, "b"))

	ma := c.slots[c.byID["a"]]
	mb := c.slots[c.byID["b"]]

	require.Equal(t, ma.Offset[Orig], mb.Offset[Orig])
	require.Equal(t, ma.Size[Orig], mb.Size[Orig])
}

func TestReadLazyThumbnailMaterialisesOnce(t *testing.T) {
	c := newTestCatalog(t, 10)
	require.NoError(t, c.Insert([]byte("orig bytes"), "pic1"))

	first, err := c.Read("pic1", Thumb)
	require.NoError(t, err)

	m := c.slots[c.byID["pic1"]]
	require.NotZero(t, m.Offset[Thumb])
	require.NotZero(t, m.Size[Thumb])

	second, err := c.Read("pic1", Thumb)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReadAbsentID(t *testing.T) {
	c := newTestCatalog(t, 10)
	_, err := c.Read("missing", Orig)
	require.Error(t, err)
	require.Equal(t, CodeFileNotFound, CodeOf(err))
}

func TestDeleteThenInsertReusesSlot(t *testing.T) {
	c := newTestCatalog(t, 1)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))
	require.NoError(t, c.Delete("pic1"))
	require.NoError(t, c.Insert([]byte("b"), "pic2"))

	got, err := c.Read("pic2", Orig)
	require.NoError(t, err)
	require.Equal(t, []byte("b"), got)
}

func TestDeleteFromEmptyDatabase(t *testing.T) {
	c := newTestCatalog(t, 10)
	err := c.Delete("anything")
	require.Error(t, err)
	require.Equal(t, CodeIO, CodeOf(err))
}

func TestDeleteAbsentID(t *testing.T) {
	c := newTestCatalog(t, 10)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))

	err := c.Delete("missing")
	require.Error(t, err)
	require.Equal(t, CodeFileNotFound, CodeOf(err))
}

func TestInsertIntoFullDatabase(t *testing.T) {
	c := newTestCatalog(t, 1)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))

	err := c.Insert([]byte("b"), "pic2")
	require.Error(t, err)
	require.Equal(t, CodeFullDatabase, CodeOf(err))

	got, err := c.Read("pic1", Orig)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), got)
}

func TestOpenRejectsOversizedMaxFilesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pictdb")
	c, err := Create(path, CreateOptions{MaxFiles: 1}, fakeCodec{}, fakeHasher{})
	require.NoError(t, err)

	c.header.MaxFiles = MaxMaxFiles + 1
	require.NoError(t, writeHeaderAt(c.file, &c.header))
	require.NoError(t, c.Close())

	_, err = Open(path, fakeCodec{}, fakeHasher{})
	require.Error(t, err)
	require.Equal(t, CodeIO, CodeOf(err))
}

func TestOpenRebuildsIndexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pictdb")
	c, err := Create(path, CreateOptions{MaxFiles: 10, ThumbRes: Box{64, 64}, SmallRes: Box{256, 256}}, fakeCodec{}, fakeHasher{})
	require.NoError(t, err)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))
	require.NoError(t, c.Close())

	reopened, err := Open(path, fakeCodec{}, fakeHasher{})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Read("pic1", Orig)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), got)
}

func TestListJSON(t *testing.T) {
	c := newTestCatalog(t, 10)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))
	require.NoError(t, c.Insert([]byte("b"), "pic2"))

	out, err := c.ListJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"Pictures":["pic1","pic2"]}`, out)
}

func TestGarbageCollectCompactsTombstones(t *testing.T) {
	c := newTestCatalog(t, 10)
	require.NoError(t, c.Insert([]byte("a"), "pic1"))
	require.NoError(t, c.Insert([]byte("b"), "pic2"))
	require.NoError(t, c.Insert([]byte("c"), "pic3"))
	require.NoError(t, c.Delete("pic2"))

	scratch := filepath.Join(t.TempDir(), "scratch.pictdb")
	require.NoError(t, c.GarbageCollect(scratch))

	require.Equal(t, uint32(2), c.Header().NumFiles)

	got1, err := c.Read("pic1", Orig)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), got1)

	got3, err := c.Read("pic3", Orig)
	require.NoError(t, err)
	require.Equal(t, []byte("c"), got3)

	_, err = c.Read("pic2", Orig)
	require.Error(t, err)

	_, statErr := os.Stat(scratch)
	require.Error(t, statErr, "scratch path must not survive the swap")
}
