package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/keyran/recipekit"
)

// Compile-time interface verification.
var (
	_ recipekit.EntryService = (*EntryService)(nil)
	_ recipekit.RecipeStore  = (*EntryService)(nil)
)

// EntryService implements recipekit.EntryService using SQLite.
// It also implements recipekit.RecipeStore by indexing each saved recipe.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// hashContent returns the xxHash of content as 16 hex digits.
func hashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// SaveEntry inserts the entry or replaces the entry with the same URL.
// A replaced entry keeps its ID and creation time.
func (s *EntryService) SaveEntry(ctx context.Context, entry *recipekit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(entry.Recipe)
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	hash := hashContent(data)

	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO entries (id, url, name, recipe, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name,
			recipe = excluded.recipe,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, id, entry.URL, entry.Name, string(data), hash,
		now.Format(time.RFC3339), now.Format(time.RFC3339)).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	entry.ID = id
	entry.ContentHash = hash
	entry.UpdatedAt = now.Truncate(time.Second)
	entry.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	return err
}

// SaveRecipe implements recipekit.RecipeStore.
func (s *EntryService) SaveRecipe(ctx context.Context, recipe *recipekit.Recipe) error {
	return s.SaveEntry(ctx, &recipekit.Entry{
		URL:    recipe.URL,
		Name:   recipe.Name,
		Recipe: recipe,
	})
}

// FindEntryByURL retrieves an entry by its recipe URL.
func (s *EntryService) FindEntryByURL(ctx context.Context, url string) (*recipekit.Entry, error) {
	entries, err := s.FindEntries(ctx, recipekit.EntryFilter{URL: &url, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, recipekit.Errorf(recipekit.ENOTFOUND, "entry not found")
	}
	return entries[0], nil
}

// FindEntries retrieves entries matching the filter, most recently
// updated first.
func (s *EntryService) FindEntries(ctx context.Context, filter recipekit.EntryFilter) ([]*recipekit.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, name, recipe, content_hash, created_at, updated_at FROM entries WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Name != nil {
		query.WriteString(` AND name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(*filter.Name)+"%")
	}

	query.WriteString(" ORDER BY updated_at DESC, url ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*recipekit.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteEntry permanently removes an entry.
func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return recipekit.Errorf(recipekit.ENOTFOUND, "entry not found")
	}

	return nil
}

func scanEntry(rows *sql.Rows) (*recipekit.Entry, error) {
	var entry recipekit.Entry
	var data, createdAt, updatedAt string

	if err := rows.Scan(&entry.ID, &entry.URL, &entry.Name, &data, &entry.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	entry.Recipe = &recipekit.Recipe{}
	if err := json.Unmarshal([]byte(data), entry.Recipe); err != nil {
		return nil, fmt.Errorf("decode recipe of %s: %w", entry.URL, err)
	}

	var err error
	if entry.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &entry, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

