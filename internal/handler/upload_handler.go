package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"portfolioAPI/internal/apierror"
)

const (
	uploadField = "image"
	// multipart overhead allowed on top of the file size limit
	formSlack = 1 << 20
	sniffLen  = 512
)

// UploadImage stores the multipart file field "image" and returns its url.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+formSlack)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, apierror.Validation(fmt.Sprintf("file exceeds %d bytes", h.Cfg.MaxUploadSize)))
			return
		}
		writeError(w, apierror.Validation("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, apierror.Validation(fmt.Sprintf("form field %q is required", uploadField)))
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, apierror.Validation("could not read file"))
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)

	upload, err := h.Service.Upload.Upload(r.Context(), header.Filename, contentType,
		io.MultiReader(bytes.NewReader(head), file), header.Size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, upload, http.StatusCreated)
}

func (h *Handlers) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Upload.Remove(r.Context(), mux.Vars(r)["objectName"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
