package handlers

import (
	"net/http"

	"willowmoon/internal/storage"
	"willowmoon/internal/validation"
)

// UploadHandler stores uploaded images in object storage. The general upload
// endpoint and the admin image endpoint carry different acceptance rules and
// write to different buckets.
type UploadHandler struct {
	uploadStore storage.ObjectStore
	imageStore  storage.ObjectStore
	uploadRules validation.UploadRules
	imageRules  validation.UploadRules
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadStore, imageStore storage.ObjectStore, uploadMaxSize, imageMaxSize int64) *UploadHandler {
	return &UploadHandler{
		uploadStore: uploadStore,
		imageStore:  imageStore,
		uploadRules: validation.UploadRules{MaxSize: uploadMaxSize, AllowSVG: true},
		imageRules:  validation.UploadRules{MaxSize: imageMaxSize, AllowSVG: false},
	}
}

// Upload handles POST /api/upload?filename=
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.store(w, r, h.uploadStore, h.uploadRules, "uploads", r.URL.Query().Get("filename"))
}

// AdminImage handles POST /api/admin/images
func (h *UploadHandler) AdminImage(w http.ResponseWriter, r *http.Request) {
	h.store(w, r, h.imageStore, h.imageRules, "images", "")
}

func (h *UploadHandler) store(w http.ResponseWriter, r *http.Request, store storage.ObjectStore, rules validation.UploadRules, prefix, filename string) {
	if store == nil {
		respondError(w, http.StatusServiceUnavailable, "Uploads are not configured")
		return
	}

	// Cap the multipart read at the size limit plus slack for the envelope
	r.Body = http.MaxBytesReader(w, r.Body, rules.MaxSize+1024*1024)
	if err := r.ParseMultipartForm(rules.MaxSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondValidationFailed(w, validation.Errors{
			{Field: "file", Message: "file field is required"},
		})
		return
	}
	defer file.Close()

	if filename == "" {
		filename = header.Filename
	}
	contentType := header.Header.Get("Content-Type")

	if errs := validation.CheckUpload(contentType, header.Size, rules); len(errs) > 0 {
		respondValidationFailed(w, errs)
		return
	}

	result, err := store.Put(r.Context(), prefix, filename, contentType, header.Size, file)
	if err != nil {
		respondServerError(w, "Error storing upload", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
