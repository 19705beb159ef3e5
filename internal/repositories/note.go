package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/models"
)

// NotesPerPage is the fixed page size for note listings.
const NotesPerPage = 20

// NoteFilter narrows a listing. Nil fields are ignored; a nil Status
// defaults to active. Search matches title or content case-insensitively;
// the wildcard wrapping happens here and nowhere else.
type NoteFilter struct {
	Cursor *time.Time
	Status *models.NoteStatus
	Tag    *string
	Search *string
}

type NoteReadRepository struct {
	db *sqlx.DB
}

func NewNoteReadRepository(db *sqlx.DB) *NoteReadRepository {
	return &NoteReadRepository{db: db}
}

// buildListQuery assembles the WHERE clause shared by the page select and
// the count. Ordering is always newest-first so cursors stay stable.
func buildListQuery(authorID uuid.UUID, filter NoteFilter) (where string, args []any) {
	conds := []string{"author_id = $1"}
	args = []any{authorID}

	status := models.NoteStatusActive
	if filter.Status != nil {
		status = *filter.Status
	}
	args = append(args, status)
	conds = append(conds, fmt.Sprintf("status = $%d", len(args)))

	if filter.Tag != nil {
		args = append(args, *filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	if filter.Search != nil {
		args = append(args, *filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR content ILIKE '%%' || $%d || '%%')", n, n))
	}

	if filter.Cursor != nil {
		args = append(args, *filter.Cursor)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// List returns one page of note summaries for the author plus the cursor
// for the next page, nil when this is the last page.
func (r *NoteReadRepository) List(ctx context.Context, authorID uuid.UUID, filter NoteFilter) ([]models.NoteListItem, *time.Time, error) {
	where, args := buildListQuery(authorID, filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM notes WHERE %s`, where)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		logger.Log.Errorw("failed to count notes", "author_id", authorID, "error", err)
		return nil, nil, err
	}

	listQuery := fmt.Sprintf(`
		SELECT id, title, tags, status, created_at
		FROM notes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT %d
	`, where, NotesPerPage)

	docs := []models.NoteListItem{}
	err := r.db.SelectContext(ctx, &docs, listQuery, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(listQuery), " "),
		"args", args,
		"result", len(docs),
		"error", err,
	)

	if err != nil {
		return nil, nil, err
	}

	var nextCursor *time.Time
	if total > NotesPerPage && len(docs) > 0 {
		cursor := docs[len(docs)-1].CreatedAt
		nextCursor = &cursor
	}

	return docs, nextCursor, nil
}

// GetByIDAndAuthor returns the note only when it belongs to the author.
// A foreign-owned note and a nonexistent one both come back nil, so
// existence never leaks across users. This is the single ownership gate
// for every mutating operation.
func (r *NoteReadRepository) GetByIDAndAuthor(ctx context.Context, noteID, authorID uuid.UUID) (*models.Note, error) {
	const query = `
		SELECT id, title, content, tags, author_id, status, created_at, updated_at
		FROM notes
		WHERE id = $1 AND author_id = $2
	`

	var note models.Note
	err := r.db.GetContext(ctx, &note, query, noteID, authorID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{noteID, authorID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

type NoteWriteRepository struct {
	db *sqlx.DB
}

func NewNoteWriteRepository(db *sqlx.DB) *NoteWriteRepository {
	return &NoteWriteRepository{db: db}
}

// Save inserts a new note in active status and returns the stored row.
func (r *NoteWriteRepository) Save(ctx context.Context, authorID uuid.UUID, title, content string, tags []string) (*models.Note, error) {
	const query = `
		INSERT INTO notes (title, content, tags, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, tags, author_id, status, created_at, updated_at
	`

	if tags == nil {
		tags = []string{}
	}

	var note models.Note
	err := r.db.GetContext(ctx, &note, query, title, content, pq.Array(tags), authorID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{title, authorID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &note, nil
}

// Update applies the non-nil fields and stamps updated_at in the same
// write. Callers must have passed the ownership gate first.
func (r *NoteWriteRepository) Update(ctx context.Context, noteID uuid.UUID, title, content *string, tags []string) (*models.Note, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{noteID}

	if title != nil {
		args = append(args, *title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if content != nil {
		args = append(args, *content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if tags != nil {
		args = append(args, pq.Array(tags))
		sets = append(sets, fmt.Sprintf("tags = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE notes
		SET %s
		WHERE id = $1
		RETURNING id, title, content, tags, author_id, status, created_at, updated_at
	`, strings.Join(sets, ", "))

	var note models.Note
	err := r.db.GetContext(ctx, &note, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{noteID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", noteID, ErrNoRowsAffected)
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

// Archive transitions the note from active to archived. The guard on the
// prior status means a repeated archive matches no rows.
func (r *NoteWriteRepository) Archive(ctx context.Context, noteID uuid.UUID) error {
	const query = `
		UPDATE notes
		SET status = 'archived', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`
	return r.execGuarded(ctx, query, noteID)
}

// Restore transitions the note from archived back to active.
func (r *NoteWriteRepository) Restore(ctx context.Context, noteID uuid.UUID) error {
	const query = `
		UPDATE notes
		SET status = 'active', updated_at = NOW()
		WHERE id = $1 AND status = 'archived'
	`
	return r.execGuarded(ctx, query, noteID)
}

// Delete removes the note permanently.
func (r *NoteWriteRepository) Delete(ctx context.Context, noteID uuid.UUID) error {
	const query = `
		DELETE FROM notes
		WHERE id = $1
	`
	return r.execGuarded(ctx, query, noteID)
}

func (r *NoteWriteRepository) execGuarded(ctx context.Context, query string, noteID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, query, noteID)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{noteID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("note %s: %w", noteID, ErrNoRowsAffected)
	}
	return nil
}
