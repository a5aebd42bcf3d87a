package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"evault/internal/core/domain"
	"evault/internal/pkg/filename"
)

type listResponse struct {
	Enabled bool               `json:"enabled"`
	Files   []domain.FileEntry `json:"files"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyz fails while no key is loaded so a deployment never routes uploads
// to an instance that cannot encrypt.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if !s.svc.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "EV-503", "server encryption key not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Enabled: s.svc.Enabled(), Files: files})
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	if !s.svc.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "EV-503", "server encryption key not configured")
		return
	}

	if r.ContentLength > s.opts.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "EV-413", "file too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "EV-413", "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "EV-400", "expected a multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "EV-400", "no file part")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "EV-400", "cannot read upload")
		return
	}
	defer file.Close()

	if hdr.Filename == "" {
		writeError(w, http.StatusBadRequest, "EV-400", "no selected file")
		return
	}
	name := filename.Secure(hdr.Filename)
	if name == "" {
		writeError(w, http.StatusBadRequest, "EV-400", "invalid filename")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "EV-400", "cannot read upload")
		return
	}

	entry, err := s.svc.Upload(r.Context(), name, data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	file, err := s.svc.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
