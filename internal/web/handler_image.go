package web

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/service"
)

// multipartOverhead is the room left for form fields on top of the file limit.
const multipartOverhead = 1 << 20

// imageRoute describes the endpoints of one image kind.
type imageRoute struct {
	prefix      string
	parentField string
	parentLabel string
	svc         *service.ImageService
}

func (s *Server) registerImageRoutes(rt imageRoute) {
	s.mux.HandleFunc("GET "+rt.prefix+"/{id}", s.handleListImages(rt))
	s.mux.HandleFunc("GET "+rt.prefix+"/image/{id}", s.handleGetImage(rt))
	s.mux.HandleFunc("GET "+rt.prefix+"/image/{id}/file", s.handleImageFile(rt))
	s.mux.HandleFunc("POST "+rt.prefix, s.handleUploadImage(rt))
}

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately: the WHATWG sniffing algorithm (and
// therefore the stdlib) has no WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	detected := http.DetectContentType(data)
	if allowedImageTypes[detected] {
		return detected, true
	}
	return "", false
}

func (s *Server) handleListImages(rt imageRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, err := parseID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		images, err := rt.svc.ListImages(r.Context(), parentID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, images)
	}
}

func (s *Server) handleGetImage(rt imageRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		img, err := rt.svc.GetImageWithData(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, img)
	}
}

func (s *Server) handleImageFile(rt imageRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		file, err := rt.svc.OpenImage(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if file.RedirectURL != "" {
			http.Redirect(w, r, file.RedirectURL, http.StatusFound)
			return
		}
		defer closeWithLog(file.Body, "image file", s.logger)

		w.Header().Set("Content-Type", file.MimeType)
		w.Header().Set("Cache-Control", "private, max-age=86400")
		if _, err := io.Copy(w, file.Body); err != nil {
			s.logger.Error("write image failed", "image_id", id, "error", err)
		}
	}
}

// imageURLRequest is the JSON form of an upload: a URL-only image. Only the
// parent field matching the route's kind is read.
type imageURLRequest struct {
	CatchID    int64  `json:"catch_id"`
	OutingID   int64  `json:"outing_id"`
	LocationID int64  `json:"location_id"`
	URL        string `json:"image_url" validate:"omitempty,url,max=2048"`
	Caption    string `json:"caption" validate:"max=500"`
}

func (req imageURLRequest) parentID(field string) int64 {
	switch field {
	case "catch_id":
		return req.CatchID
	case "outing_id":
		return req.OutingID
	case "location_id":
		return req.LocationID
	}
	return 0
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func (s *Server) handleUploadImage(rt imageRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isJSON(r) {
			s.uploadImageURL(w, r, rt)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, s.maxImageBytes+multipartOverhead)
		if err := r.ParseMultipartForm(s.maxImageBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.writeTooLarge(w)
				return
			}
			s.writeError(w, r, domain.Validationf("Failed to parse upload form"))
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				s.logger.Warn("failed to remove multipart temp files", "error", err)
			}
		}()

		parentID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(rt.parentField)), 10, 64)
		if err != nil || parentID <= 0 {
			s.writeError(w, r, domain.Validationf("%s is required", rt.parentLabel))
			return
		}

		in := service.UploadInput{
			ParentID: parentID,
			URL:      r.FormValue("image_url"),
			Caption:  r.FormValue("caption"),
		}

		file, _, err := r.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			s.writeError(w, r, domain.Validationf("Failed to read image file"))
			return
		default:
			defer closeWithLog(file, "upload file", s.logger)
			data, err := io.ReadAll(io.LimitReader(file, s.maxImageBytes+1))
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if int64(len(data)) > s.maxImageBytes {
				s.writeTooLarge(w)
				return
			}
			if len(data) > 0 {
				mimeType, ok := allowedImageMIME(data)
				if !ok {
					s.writeError(w, r, domain.Validationf("Unsupported image format: use JPEG, PNG, GIF or WebP"))
					return
				}
				in.Data = data
				in.MimeType = mimeType
			}
		}

		img, err := rt.svc.Upload(r.Context(), in)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, img)
	}
}

func (s *Server) uploadImageURL(w http.ResponseWriter, r *http.Request, rt imageRoute) {
	var req imageURLRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.URL = strings.TrimSpace(req.URL)

	parentID := req.parentID(rt.parentField)
	if parentID <= 0 {
		s.writeError(w, r, domain.Validationf("%s is required", rt.parentLabel))
		return
	}
	if err := check(req, "Either image URL or file upload is required"); err != nil {
		s.writeError(w, r, err)
		return
	}

	img, err := rt.svc.Upload(r.Context(), service.UploadInput{
		ParentID: parentID,
		URL:      req.URL,
		Caption:  req.Caption,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (s *Server) writeTooLarge(w http.ResponseWriter) {
	writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
		"error": "File too large. Maximum size is " + strconv.FormatInt(s.maxImageBytes>>20, 10) + "MB",
	})
}
