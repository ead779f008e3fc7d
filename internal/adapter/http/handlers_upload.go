package http

import (
	"net/http"
)

// HandleUploadImage stores a project image from a multipart form. The form
// field is "image". Responds with the public path of the stored file.
func (h *Handlers) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	// +4KB headroom for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+4096)

	if err := r.ParseMultipartForm(h.uploads.MaxBytes()); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	path, err := h.uploads.Store(file, header)
	if err != nil {
		writeDomainError(w, err, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": path})
}

// HandleDeleteUpload removes a stored image by its file name.
func (h *Handlers) HandleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.uploads.Delete(urlParam(r, "name")); err != nil {
		writeDomainError(w, err, "upload not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
