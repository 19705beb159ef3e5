package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/repositories"
)

// NoteReader defines read-only operations on notes.
type NoteReader interface {
	List(ctx context.Context, authorID uuid.UUID, filter repositories.NoteFilter) ([]models.NoteListItem, *time.Time, error)
	GetByIDAndAuthor(ctx context.Context, noteID, authorID uuid.UUID) (*models.Note, error)
}

// NoteWriter defines write operations on notes.
type NoteWriter interface {
	Save(ctx context.Context, authorID uuid.UUID, title, content string, tags []string) (*models.Note, error)
	Update(ctx context.Context, noteID uuid.UUID, title, content *string, tags []string) (*models.Note, error)
	Archive(ctx context.Context, noteID uuid.UUID) error
	Restore(ctx context.Context, noteID uuid.UUID) error
	Delete(ctx context.Context, noteID uuid.UUID) error
}

// NotePatch carries the partial fields of an update. Nil means "leave as
// is"; at least one field must be present.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    []string
}

func (p NotePatch) empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

// NotePage is one page of a note listing with the cursor for the next
// page, nil on the last page.
type NotePage struct {
	Docs       []models.NoteListItem
	NextCursor *time.Time
}

// NoteService enforces per-user ownership over note reads and writes.
type NoteService struct {
	reader NoteReader
	writer NoteWriter
}

// NewNoteService creates a new NoteService instance.
func NewNoteService(reader NoteReader, writer NoteWriter) *NoteService {
	return &NoteService{reader: reader, writer: writer}
}

// List returns the author's notes newest first, honoring the filter.
func (svc *NoteService) List(ctx context.Context, authorID uuid.UUID, filter repositories.NoteFilter) (*NotePage, error) {
	docs, nextCursor, err := svc.reader.List(ctx, authorID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list notes", "author_id", authorID, "error", err)
		return nil, apperr.Internal("Cannot fetch notes at the moment.", err)
	}

	return &NotePage{Docs: docs, NextCursor: nextCursor}, nil
}

// Create stores a new note for the author. Notes always start active.
func (svc *NoteService) Create(ctx context.Context, authorID uuid.UUID, title, content string, tags []string) (*models.Note, error) {
	note, err := svc.writer.Save(ctx, authorID, title, content, tags)
	if err != nil {
		logger.Log.Errorw("failed to create note", "author_id", authorID, "error", err)
		return nil, apperr.Internal("Cannot create note at the moment.", err)
	}
	return note, nil
}

// Update applies a partial patch to an owned note.
func (svc *NoteService) Update(ctx context.Context, noteID, authorID uuid.UUID, patch NotePatch) (*models.Note, error) {
	if patch.empty() {
		return nil, apperr.Validation("At least one field must be provided.")
	}

	if _, err := svc.getOwned(ctx, noteID, authorID); err != nil {
		return nil, err
	}

	note, err := svc.writer.Update(ctx, noteID, patch.Title, patch.Content, patch.Tags)
	if err != nil {
		logger.Log.Errorw("failed to update note", "note_id", noteID, "error", err)
		return nil, apperr.Internal("Cannot update note at the moment.", err)
	}
	return note, nil
}

// Archive transitions an owned note from active to archived.
func (svc *NoteService) Archive(ctx context.Context, noteID, authorID uuid.UUID) error {
	if _, err := svc.getOwned(ctx, noteID, authorID); err != nil {
		return err
	}

	if err := svc.writer.Archive(ctx, noteID); err != nil {
		logger.Log.Errorw("failed to archive note", "note_id", noteID, "error", err)
		return apperr.Internal("Cannot archive note.", err)
	}
	return nil
}

// Restore transitions an owned note from archived back to active.
func (svc *NoteService) Restore(ctx context.Context, noteID, authorID uuid.UUID) error {
	if _, err := svc.getOwned(ctx, noteID, authorID); err != nil {
		return err
	}

	if err := svc.writer.Restore(ctx, noteID); err != nil {
		logger.Log.Errorw("failed to restore note", "note_id", noteID, "error", err)
		return apperr.Internal("Cannot restore note.", err)
	}
	return nil
}

// Delete removes an owned note permanently.
func (svc *NoteService) Delete(ctx context.Context, noteID, authorID uuid.UUID) error {
	if _, err := svc.getOwned(ctx, noteID, authorID); err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, noteID); err != nil {
		logger.Log.Errorw("failed to delete note", "note_id", noteID, "error", err)
		return apperr.Internal("Cannot delete note.", err)
	}
	return nil
}

// getOwned is the single authorization gate for mutating operations. A
// note owned by another user is reported exactly like a missing one.
func (svc *NoteService) getOwned(ctx context.Context, noteID, authorID uuid.UUID) (*models.Note, error) {
	note, err := svc.reader.GetByIDAndAuthor(ctx, noteID, authorID)
	if err != nil {
		return nil, apperr.Internal("Cannot fetch note at the moment.", err)
	}
	if note == nil {
		return nil, apperr.NotFound("Note not found or you don't have permissions.")
	}
	return note, nil
}
