package mcmap

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	"image/png"

	"github.com/bodgit/mcmap/mapitem"
	"github.com/bodgit/mcmap/palette"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a database of map files and their rendered images. Identical
// maps share one image.
type Catalog struct {
	db *sql.DB
}

// Entry is a map file recorded in a Catalog.
type Entry struct {
	ID          int64
	Path        string
	DataVersion int32
	Scale       int8
	Dimension   string
	XCenter     int32
	ZCenter     int32
	Bounds      mapitem.Rect
	Locked      bool
	ImageID     int64
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, png BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS map (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, data_version INTEGER NOT NULL, scale INTEGER NOT NULL, dimension TEXT NOT NULL, dimension_name TEXT NOT NULL, x_center INTEGER NOT NULL, z_center INTEGER NOT NULL, min_x INTEGER NOT NULL, min_z INTEGER NOT NULL, max_x INTEGER NOT NULL, max_z INTEGER NOT NULL, locked INTEGER NOT NULL, image_id INTEGER NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) addImage(it *mapitem.Item, p *palette.Palette) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(it.Colors))

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		m, err := it.Image(p)
		if err != nil {
			return 0, err
		}
		b := new(bytes.Buffer)
		if err := png.Encode(b, m); err != nil {
			return 0, err
		}
		result, err := c.db.Exec("INSERT INTO image (sha1, png) VALUES (?, ?)", sha, b.Bytes())
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Add records the map, replacing any previous record for the same path.
func (c *Catalog) Add(it *mapitem.Item, p *palette.Palette) (int64, error) {
	imageID, err := c.addImage(it, p)
	if err != nil {
		return 0, err
	}

	r := it.Bounds()
	result, err := c.db.Exec("INSERT OR REPLACE INTO map (path, data_version, scale, dimension, dimension_name, x_center, z_center, min_x, min_z, max_x, max_z, locked, image_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		it.Path, it.DataVersion, it.Scale, it.Dimension, it.PrettyDimension(), it.XCenter, it.ZCenter, r.Left, r.Top, r.Right, r.Bottom, it.Locked, imageID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Find returns the recorded maps matching f, ordered by path.
func (c *Catalog) Find(f Filter) ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, path, data_version, scale, dimension, x_center, z_center, min_x, min_z, max_x, max_z, locked, image_id FROM map WHERE scale = ? AND (? = '' OR lower(dimension_name) = lower(?)) ORDER BY path", f.Scale, f.Dimension, f.Dimension)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Path, &e.DataVersion, &e.Scale, &e.Dimension, &e.XCenter, &e.ZCenter, &e.Bounds.Left, &e.Bounds.Top, &e.Bounds.Right, &e.Bounds.Bottom, &e.Locked, &e.ImageID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Image returns a rendered image by its id.
func (c *Catalog) Image(id int64) (image.Image, error) {
	var b []byte
	if err := c.db.QueryRow("SELECT png FROM image WHERE id = ?", id).Scan(&b); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// Index records every map that decodes and returns how many were added.
func (m *Mapper) Index(c *Catalog, maps *Maps) (int, error) {
	var n int
	for it, err := range maps.All() {
		if err != nil {
			m.logger.WithError(err).Warn("Skipping map")
			continue
		}
		if _, err := c.Add(it, m.palette); err != nil {
			return n, fmt.Errorf("could not add %s: %w", it.Path, err)
		}
		n++
	}
	return n, nil
}
