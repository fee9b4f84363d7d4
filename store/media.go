// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

func scanAlbum(row scanner) (models.PhotoAlbum, error) {
	var a models.PhotoAlbum
	err := row.Scan(&a.ID, &a.Name, &a.EventID, &a.CreatedByID, &a.CreatedAt)
	return a, err
}

func scanPhoto(row scanner) (models.Photo, error) {
	var p models.Photo
	err := row.Scan(&p.ID, &p.AlbumID, &p.UploadedByID, &p.URL, &p.Caption, &p.CreatedAt)
	return p, err
}

func scanComment(row scanner) (models.PhotoComment, error) {
	var c models.PhotoComment
	err := row.Scan(&c.ID, &c.PhotoID, &c.AuthorID, &c.Content, &c.CreatedAt)
	return c, err
}

// Albums

func (t *Tx) InsertAlbum(ctx context.Context, a *models.PhotoAlbum) error {
	a.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO photo_albums (name, event_id, created_by_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.Name, a.EventID, a.CreatedByID, a.CreatedAt)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (t *Tx) GetAlbum(ctx context.Context, id int64) (*models.PhotoAlbum, error) {
	a, err := scanAlbum(t.tx.QueryRowContext(ctx, `
		SELECT id, name, event_id, created_by_id, created_at FROM photo_albums WHERE id = $1
	`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

func (t *Tx) ListAlbums(ctx context.Context, eventID int64) ([]models.PhotoAlbum, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, name, event_id, created_by_id, created_at FROM photo_albums WHERE event_id = $1 ORDER BY id
	`, eventID)
	return collect(rows, err, scanAlbum)
}

// Photos

func (t *Tx) InsertPhoto(ctx context.Context, p *models.Photo) error {
	p.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO photos (album_id, uploaded_by_id, url, caption, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.AlbumID, p.UploadedByID, p.URL, p.Caption, p.CreatedAt)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (t *Tx) GetPhoto(ctx context.Context, id int64) (*models.Photo, error) {
	p, err := scanPhoto(t.tx.QueryRowContext(ctx, `
		SELECT id, album_id, uploaded_by_id, url, caption, created_at FROM photos WHERE id = $1
	`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (t *Tx) ListPhotos(ctx context.Context, albumID int64) ([]models.Photo, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, album_id, uploaded_by_id, url, caption, created_at FROM photos WHERE album_id = $1 ORDER BY id
	`, albumID)
	return collect(rows, err, scanPhoto)
}

// Comments

func (t *Tx) InsertComment(ctx context.Context, c *models.PhotoComment) error {
	c.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO photo_comments (photo_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.PhotoID, c.AuthorID, c.Content, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (t *Tx) ListComments(ctx context.Context, photoID int64) ([]models.PhotoComment, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, photo_id, author_id, content, created_at FROM photo_comments WHERE photo_id = $1 ORDER BY id
	`, photoID)
	return collect(rows, err, scanComment)
}
