package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"scribe/internal/works"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when an item id does not exist.
var ErrNotFound = errors.New("catalog item not found")

const itemColumns = "id, artist, artist_sort, composer_sort, album, title, work, genre"

// Store is an open catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the library at path, creating the file and minimal schema
// when needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Items returns the items matching q ordered by id. Unless includePopulated
// is set, items that already carry a work style are left out.
func (s *Store) Items(ctx context.Context, q Query, includePopulated bool) ([]*Item, error) {
	where, args := q.where()
	if !includePopulated {
		where += " AND NOT EXISTS (SELECT 1 FROM item_attributes p WHERE p.entity_id = items.id AND p.key = ? AND p.value <> '')"
		args = append(args, AttrWorkStyle)
	}
	return s.queryItems(ctx, "SELECT "+itemColumns+" FROM items WHERE "+where+" ORDER BY id", args...)
}

// ItemsForWork returns every item belonging to key, populated or not.
func (s *Store) ItemsForWork(ctx context.Context, key works.Key) ([]*Item, error) {
	column := string(key.Field)
	if !columns[column] {
		return nil, fmt.Errorf("unsupported author field %q", key.Field)
	}
	candidates, err := s.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE "+column+` LIKE ? ESCAPE '\' AND work LIKE ? ESCAPE '\' ORDER BY id`,
		escapeLike(key.Author)+"%",
		escapeLike(key.Title)+"%",
	)
	if err != nil {
		return nil, err
	}
	matches := key.Matcher()
	matched := candidates[:0]
	for _, item := range candidates {
		if matches(item.field(column), item.Work) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Insert adds a new item with its attributes and returns its id.
func (s *Store) Insert(ctx context.Context, item *Item) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO items (artist, artist_sort, composer_sort, album, title, work, genre) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Artist, item.ArtistSort, item.ComposerSort, item.Album, item.Title, item.Work, item.Genre,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	if err := writeAttributes(ctx, tx, id, item.Attributes); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	item.ID = id
	return id, nil
}

// Save persists the genre and flexible attributes of an existing item.
func (s *Store) Save(ctx context.Context, item *Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE items SET genre = ? WHERE id = ?`, item.Genre, item.ID)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %d: %w", item.ID, ErrNotFound)
	}
	if err := writeAttributes(ctx, tx, item.ID, item.Attributes); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func writeAttributes(ctx context.Context, tx *sql.Tx, id int64, attrs map[string]string) error {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO item_attributes (entity_id, key, value) VALUES (?, ?, ?)`,
			id, key, attrs[key],
		); err != nil {
			return fmt.Errorf("write attribute %s for item %d: %w", key, id, err)
		}
	}
	return nil
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	_ = rows.Close()

	for _, item := range items {
		if err := s.loadAttributes(ctx, item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Store) loadAttributes(ctx context.Context, item *Item) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM item_attributes WHERE entity_id = ?`, item.ID)
	if err != nil {
		return fmt.Errorf("query attributes for item %d: %w", item.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan attribute for item %d: %w", item.ID, err)
		}
		item.SetAttr(key, value.String)
	}
	return rows.Err()
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id           int64
		artist       sql.NullString
		artistSort   sql.NullString
		composerSort sql.NullString
		album        sql.NullString
		title        sql.NullString
		work         sql.NullString
		genre        sql.NullString
	)
	if err := scanner.Scan(&id, &artist, &artistSort, &composerSort, &album, &title, &work, &genre); err != nil {
		return nil, err
	}
	return &Item{
		ID:           id,
		Artist:       artist.String,
		ArtistSort:   artistSort.String,
		ComposerSort: composerSort.String,
		Album:        album.String,
		Title:        title.String,
		Work:         work.String,
		Genre:        genre.String,
	}, nil
}
