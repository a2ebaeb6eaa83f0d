package api

import (
	"net/http"

	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/rpupo63/project-hub-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadMemory = 32 << 20 // 32MB

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploads   *services.UploadService
}

func newUploadHandler(uploads *services.UploadService) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploads:   uploads,
	}
}

// UploadResult carries the public URLs of stored objects. Error is set
// when an image batch was truncated by a mid-sequence failure.
type UploadResult struct {
	URL   string   `json:"url,omitempty"`
	URLs  []string `json:"urls,omitempty"`
	Error string   `json:"error,omitempty"`
}

// uploadPDF stores a project document
// @Summary Upload PDF
// @Description Stores a PDF document in the document bucket and returns its public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} UploadResult "Public URL of the stored document"
// @Failure 400 {object} map[string]interface{} "Bad Request - missing file"
// @Failure 502 {object} map[string]interface{} "Bad Gateway - object store rejected the upload"
// @Router /uploads/pdf [post]
func (h uploadHandler) uploadPDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		url, err := h.uploads.UploadPDF(r.Context(), header.Filename, file, header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, UploadResult{URL: url})
	}
}

// uploadImages stores a batch of project images
// @Summary Upload images
// @Description Stores images sequentially in the image bucket. A mid-sequence failure truncates the returned URL list; already-stored images are kept and the error is reported inline.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Image files"
// @Success 200 {object} UploadResult "Public URLs of the stored images, possibly truncated"
// @Failure 400 {object} map[string]interface{} "Bad Request - missing images"
// @Router /uploads/images [post]
func (h uploadHandler) uploadImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		headers := r.MultipartForm.File["images"]
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("images"))
			return
		}

		files := make([]services.ImageFile, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
				return
			}
			defer file.Close()

			files = append(files, services.ImageFile{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
				Size:        header.Size,
			})
		}

		urls, err := h.uploads.UploadImages(r.Context(), files)
		result := UploadResult{URLs: urls}
		if err != nil {
			// Truncated batch: report the failure inline with the
			// partial list so the record write can proceed with it.
			result.Error = err.Error()
		}

		h.responder.WriteJSON(w, result)
	}
}
