package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/go-chi/chi/v5"
)

// handleMedia serves an uploaded image. IDs are never reused, so the
// response may be cached indefinitely.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	img, err := s.shop.Image(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := w.Write(img.Data); err != nil {
		logging.FromContext(r.Context()).Debug("media: client went away", "image_id", img.ID, "error", err)
	}
}
