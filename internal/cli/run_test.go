package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	return buf
}

func TestScenarioCreateEmptyList(t *testing.T) {
	r := NewCLI(t)
	db := r.DBPath("test.pictdb")

	out := r.MustRun("create", db, "--max_files=10", "--thumb_width=64", "--thumb_height=64",
		"--small_width=256", "--small_height=256")
	require.Contains(t, out, "created")

	out = r.MustRun("list", db)
	AssertContains(t, out, "DB NAME: EPFL PictDB binary")
	AssertContains(t, out, "IMAGE COUNT: 0")
	AssertContains(t, out, "empty database")
}

func TestScenarioInsertThenRead(t *testing.T) {
	r := NewCLI(t)
	db := r.DBPath("test.pictdb")
	r.MustRun("create", db)

	imgPath := filepath.Join(r.Dir, "pic.jpg")
	writeTestJPEG(t, imgPath, 32, 32)

	r.MustRun("insert", db, "pic1", imgPath)

	outPath := filepath.Join(r.Dir, "out.jpg")
	r.MustRun("read", db, "pic1", "orig", "--out="+outPath)

	got := readFile(t, outPath)
	want := readFile(t, imgPath)
	require.Equal(t, want, got)
}

func TestScenarioFullDatabase(t *testing.T) {
	r := NewCLI(t)
	db := r.DBPath("test.pictdb")
	r.MustRun("create", db, "--max_files=1")

	img1 := filepath.Join(r.Dir, "a.jpg")
	writeTestJPEG(t, img1, 16, 16)
	img2 := filepath.Join(r.Dir, "b.jpg")
	writeTestJPEG(t, img2, 20, 20)

	r.MustRun("insert", db, "a", img1)
	r.MustFail("insert", db, "b", img2)

	outPath := filepath.Join(r.Dir, "out.jpg")
	r.MustRun("read", db, "a", "orig", "--out="+outPath)
	require.Equal(t, readFile(t, img1), readFile(t, outPath))
}
