// Package httpapi is the HTTP front-end collaborator for pictDB (spec
// §6.4): four routes over one open catalog. Per spec §9's note on the
// "global database handle", the catalog is field-injected into a Server
// value rather than held in a package-level variable.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pictdb/pictdb/internal/catalog"
)

// Server serves pictDB's HTTP routes against one open catalog. It is not
// safe for concurrent request handling unless the embedded catalog is
// itself externally serialised (spec §5: no internal locking).
type Server struct {
	Catalog *catalog.Catalog
}

// NewServer builds a Server bound to cat.
func NewServer(cat *catalog.Catalog) *Server {
	return &Server{Catalog: cat}
}

// Routes returns the mux wiring spec §6.4's four endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pictDB/list", s.handleList)
	mux.HandleFunc("/pictDB/read", s.handleRead)
	mux.HandleFunc("/pictDB/insert", s.handleInsert)
	mux.HandleFunc("/pictDB/delete", s.handleDelete)
	return mux
}

// handleList responds with application/json: {"Pictures": [...]}.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := s.Catalog.ListJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, out)
}

// handleRead responds with image/jpeg for ?res=...&pict_id=....
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	pictID := r.URL.Query().Get("pict_id")
	resName := r.URL.Query().Get("res")
	if resName == "" {
		resName = "orig"
	}

	res, ok := catalog.ResolutionFromString(resName)
	if !ok {
		writeError(w, &catalog.Error{Code: catalog.CodeInvalidArgument})
		return
	}

	buf, err := s.Catalog.Read(pictID, res)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(buf)
}

// handleInsert accepts a multipart form with a "payload" file field and
// a "pict_id" text field, then redirects to the index on success.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, &catalog.Error{Code: catalog.CodeInvalidArgument, Err: err})
		return
	}

	pictID := r.FormValue("pict_id")

	file, _, err := r.FormFile("payload")
	if err != nil {
		writeError(w, &catalog.Error{Code: catalog.CodeInvalidArgument, Err: err})
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		writeError(w, &catalog.Error{Code: catalog.CodeIO, Err: err})
		return
	}

	if err := s.Catalog.Insert(buf, pictID); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleDelete tombstones ?pict_id=... then redirects to the index.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	pictID := r.URL.Query().Get("pict_id")

	if err := s.Catalog.Delete(pictID); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// errorBody is the JSON shape of a 500 error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps any error to HTTP 500 with the taxonomy kind's text
// (spec §7, "HTTP maps to 500 with the kind's text").
func writeError(w http.ResponseWriter, err error) {
	code := catalog.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code.Message()})
}
