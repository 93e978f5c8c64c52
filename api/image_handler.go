package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwellcms/inkwell-backend/storage"
)

// maxImageSize caps uploads at 2MB.
const maxImageSize = 2 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type imageHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     storage.Storage
}

func newImageHandler(store storage.Storage) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// ImageUploadResponse is returned by the editor's image endpoint.
type ImageUploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Path    string `json:"path,omitempty"`
	Name    string `json:"name,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Message string `json:"message,omitempty"`
}

// upload accepts a single multipart "image" field, stores it under images/
// with a generated filename, and returns the stored reference. Storage
// failures surface as a structured {success:false} response, never a bare 500.
func (h imageHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+4096)

		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			h.writeFailure(w, http.StatusRequestEntityTooLarge, "image must not exceed 2MB")
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.writeFailure(w, http.StatusBadRequest, "image field is required")
			return
		}
		defer file.Close()

		if header.Size > maxImageSize {
			h.writeFailure(w, http.StatusRequestEntityTooLarge, "image must not exceed 2MB")
			return
		}

		contentType, ext, err := sniffImageType(file, header)
		if err != nil {
			h.writeFailure(w, http.StatusUnsupportedMediaType, "image must be one of jpeg, png, gif, webp")
			return
		}

		storagePath := path.Join("images", uuid.NewString()+ext)

		url, err := h.store.Save(r.Context(), storagePath, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("path", storagePath).Msg("failed to store uploaded image")
			h.writeFailure(w, http.StatusInternalServerError, "failed to upload image")
			return
		}

		h.responder.WriteJSON(w, ImageUploadResponse{
			Success: true,
			URL:     url,
			Path:    storagePath,
			Name:    header.Filename,
			Size:    header.Size,
		})
	}
}

// remove deletes a previously stored image by its reference path.
func (h imageHandler) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			h.writeFailure(w, http.StatusBadRequest, "path is required")
			return
		}

		if err := h.store.Delete(r.Context(), req.Path); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				h.writeFailure(w, http.StatusNotFound, "Image not found")
				return
			}
			h.logger.Error().Err(err).Str("path", req.Path).Msg("failed to delete stored image")
			h.writeFailure(w, http.StatusInternalServerError, "failed to delete image")
			return
		}

		h.responder.WriteJSON(w, ImageUploadResponse{
			Success: true,
			Message: "Image deleted successfully",
		})
	}
}

func (h imageHandler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.responder.WriteJSONStatus(w, status, ImageUploadResponse{
		Success: false,
		Message: message,
	})
}

// sniffImageType determines the upload's media type from its leading bytes,
// falling back to the declared header, and maps it to a file extension.
func sniffImageType(file multipart.File, header *multipart.FileHeader) (contentType, ext string, err error) {
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("rewind upload: %w", err)
	}

	contentType = http.DetectContentType(buf[:n])
	if ext, ok := allowedImageTypes[contentType]; ok {
		return contentType, ext, nil
	}

	// http.DetectContentType cannot recognize every encoder's output; trust
	// the declared type as a fallback when it is on the allow-list.
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(header.Header.Get("Content-Type"), ";", 2)[0]))
	if ext, ok := allowedImageTypes[declared]; ok {
		return declared, ext, nil
	}

	return "", "", fmt.Errorf("unsupported image type %q", contentType)
}
