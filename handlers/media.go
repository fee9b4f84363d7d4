// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type MediaHandler struct {
	media *service.Media
}

func NewMediaHandler(media *service.Media) *MediaHandler {
	return &MediaHandler{media: media}
}

// CreateAlbum handles POST /media/events/{event_id}/albums
func (h *MediaHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateAlbumRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	album, err := h.media.CreateAlbum(r.Context(), middleware.MustUser(r).ID, eventID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, album)
}

// ListAlbums handles GET /media/events/{event_id}/albums
func (h *MediaHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	albums, err := h.media.ListAlbums(r.Context(), middleware.MustUser(r).ID, eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, albums)
}

// AddPhoto handles POST /media/albums/{album_id}/photos
func (h *MediaHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "album_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreatePhotoRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	photo, err := h.media.AddPhoto(r.Context(), middleware.MustUser(r).ID, albumID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, photo)
}

// ListPhotos handles GET /media/albums/{album_id}/photos
func (h *MediaHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "album_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	photos, err := h.media.ListPhotos(r.Context(), middleware.MustUser(r).ID, albumID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, photos)
}

// AddComment handles POST /media/photos/{photo_id}/comments
func (h *MediaHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	photoID, err := pathID(r, "photo_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateCommentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	c, err := h.media.AddComment(r.Context(), middleware.MustUser(r).ID, photoID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// ListComments handles GET /media/photos/{photo_id}/comments
func (h *MediaHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	photoID, err := pathID(r, "photo_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	comments, err := h.media.ListComments(r.Context(), middleware.MustUser(r).ID, photoID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, comments)
}
