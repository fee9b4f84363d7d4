// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

const errEventAccess = "Event access required"

// Media manages albums, photos and photo comments. Access follows the
// containment chain up to the event.
type Media struct {
	st *store.Store
}

func NewMedia(st *store.Store) *Media {
	return &Media{st: st}
}

func eventAccess(ctx context.Context, tx *store.Tx, actorID, eventID int64) error {
	if _, err := loadEvent(ctx, tx, eventID); err != nil {
		return err
	}
	return check(ctx, tx, guards.IsEventMember, actorID, eventID, errEventAccess)
}

func albumAccess(ctx context.Context, tx *store.Tx, actorID, albumID int64) (*models.PhotoAlbum, error) {
	album, err := tx.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, notFound(err, "Album not found")
	}
	if err := eventAccess(ctx, tx, actorID, album.EventID); err != nil {
		return nil, err
	}
	return album, nil
}

func photoAccess(ctx context.Context, tx *store.Tx, actorID, photoID int64) (*models.Photo, error) {
	photo, err := tx.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, notFound(err, "Photo not found")
	}
	if _, err := albumAccess(ctx, tx, actorID, photo.AlbumID); err != nil {
		return nil, err
	}
	return photo, nil
}

func (m *Media) CreateAlbum(ctx context.Context, actorID, eventID int64, req models.CreateAlbumRequest) (*models.PhotoAlbum, error) {
	album := &models.PhotoAlbum{Name: req.Name, EventID: eventID, CreatedByID: actorID}
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if err := eventAccess(ctx, tx, actorID, eventID); err != nil {
			return err
		}
		return tx.InsertAlbum(ctx, album)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("album created", "album_id", album.ID, "event_id", eventID)
	return album, nil
}

func (m *Media) ListAlbums(ctx context.Context, actorID, eventID int64) ([]models.PhotoAlbum, error) {
	var albums []models.PhotoAlbum
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if err := eventAccess(ctx, tx, actorID, eventID); err != nil {
			return err
		}
		var err error
		albums, err = tx.ListAlbums(ctx, eventID)
		return err
	})
	return albums, err
}

func (m *Media) AddPhoto(ctx context.Context, actorID, albumID int64, req models.CreatePhotoRequest) (*models.Photo, error) {
	photo := &models.Photo{AlbumID: albumID, UploadedByID: actorID, URL: req.URL, Caption: req.Caption}
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := albumAccess(ctx, tx, actorID, albumID); err != nil {
			return err
		}
		return tx.InsertPhoto(ctx, photo)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("photo added", "photo_id", photo.ID, "album_id", albumID)
	return photo, nil
}

func (m *Media) ListPhotos(ctx context.Context, actorID, albumID int64) ([]models.Photo, error) {
	var photos []models.Photo
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := albumAccess(ctx, tx, actorID, albumID); err != nil {
			return err
		}
		var err error
		photos, err = tx.ListPhotos(ctx, albumID)
		return err
	})
	return photos, err
}

func (m *Media) AddComment(ctx context.Context, actorID, photoID int64, req models.CreateCommentRequest) (*models.PhotoComment, error) {
	c := &models.PhotoComment{PhotoID: photoID, AuthorID: actorID, Content: req.Content}
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := photoAccess(ctx, tx, actorID, photoID); err != nil {
			return err
		}
		return tx.InsertComment(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Media) ListComments(ctx context.Context, actorID, photoID int64) ([]models.PhotoComment, error) {
	var comments []models.PhotoComment
	err := m.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := photoAccess(ctx, tx, actorID, photoID); err != nil {
			return err
		}
		var err error
		comments, err = tx.ListComments(ctx, photoID)
		return err
	})
	return comments, err
}
