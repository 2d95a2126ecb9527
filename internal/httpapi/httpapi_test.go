package httpapi

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTestServer(t *testing.T) (*Server, *catalog.Catalog) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pictdb")
	cat, err := catalog.Create(path, catalog.CreateOptions{
		MaxFiles: 10,
		ThumbRes: catalog.Box{Width: 64, Height: 64},
		SmallRes: catalog.Box{Width: 256, Height: 256},
	}, codec.JPEG{}, hasher.SHA256{})
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return NewServer(cat), cat
}

func TestHandleListEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/list", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"Pictures":[]}`, rec.Body.String())
}

func TestHandleInsertThenRead(t *testing.T) {
	s, _ := newTestServer(t)
	payload := testJPEG(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("pict_id", "pic1"))
	part, err := mw.CreateFormFile("payload", "pic1.jpg")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	insertReq := httptest.NewRequest(http.MethodPost, "/pictDB/insert", &body)
	insertReq.Header.Set("Content-Type", mw.FormDataContentType())
	insertRec := httptest.NewRecorder()
	s.Routes().ServeHTTP(insertRec, insertReq)
	require.Equal(t, http.StatusFound, insertRec.Code)

	readReq := httptest.NewRequest(http.MethodGet, "/pictDB/read?pict_id=pic1&res=orig", nil)
	readRec := httptest.NewRecorder()
	s.Routes().ServeHTTP(readRec, readReq)

	require.Equal(t, http.StatusOK, readRec.Code)
	require.Equal(t, "image/jpeg", readRec.Header().Get("Content-Type"))
	require.Equal(t, payload, readRec.Body.Bytes())
}

func TestHandleReadMissingReturns500(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/read?pict_id=missing", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), catalog.CodeFileNotFound.Message())
}

func TestHandleDelete(t *testing.T) {
	s, cat := newTestServer(t)
	require.NoError(t, cat.Insert(testJPEG(t), "pic1"))

	req := httptest.NewRequest(http.MethodGet, "/pictDB/delete?pict_id=pic1", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	_, err := cat.Read("pic1", catalog.Orig)
	require.Error(t, err)
}
