package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/repositories"
	"github.com/noteshq/notes-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func newNoteService(ctrl *gomock.Controller) (*services.NoteService, *services.MockNoteReader, *services.MockNoteWriter) {
	reader := services.NewMockNoteReader(ctrl)
	writer := services.NewMockNoteWriter(ctrl)
	return services.NewNoteService(reader, writer), reader, writer
}

func TestNoteService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _ := newNoteService(ctrl)
	authorID := uuid.New()

	t.Run("passes the filter through and returns the cursor", func(t *testing.T) {
		tag := "work"
		filter := repositories.NoteFilter{Tag: &tag}
		cursor := time.Now().Add(-time.Hour)
		docs := []models.NoteListItem{
			{ID: uuid.New(), Title: "standup notes", Status: models.NoteStatusActive},
		}
		reader.EXPECT().List(gomock.Any(), authorID, filter).Return(docs, &cursor, nil)

		page, err := svc.List(context.Background(), authorID, filter)
		assert.NoError(t, err)
		assert.Equal(t, docs, page.Docs)
		assert.Equal(t, &cursor, page.NextCursor)
	})

	t.Run("storage failure", func(t *testing.T) {
		reader.EXPECT().List(gomock.Any(), authorID, gomock.Any()).
			Return(nil, nil, errors.New("db down"))

		_, err := svc.List(context.Background(), authorID, repositories.NoteFilter{})
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestNoteService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer := newNoteService(ctrl)
	authorID := uuid.New()

	saved := &models.Note{
		ID:       uuid.New(),
		Title:    "groceries",
		Content:  "milk, eggs",
		Tags:     []string{"home"},
		AuthorID: authorID,
		Status:   models.NoteStatusActive,
	}
	writer.EXPECT().Save(gomock.Any(), authorID, "groceries", "milk, eggs", []string{"home"}).
		Return(saved, nil)

	note, err := svc.Create(context.Background(), authorID, "groceries", "milk, eggs", []string{"home"})
	assert.NoError(t, err)
	assert.Equal(t, saved, note)
}

func TestNoteService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer := newNoteService(ctrl)
	authorID := uuid.New()
	noteID := uuid.New()

	t.Run("empty patch", func(t *testing.T) {
		_, err := svc.Update(context.Background(), noteID, authorID, services.NotePatch{})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "At least one field must be provided.", apperr.MessageOf(err))
	})

	t.Run("not owned", func(t *testing.T) {
		reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(nil, nil)

		title := "renamed"
		_, err := svc.Update(context.Background(), noteID, authorID, services.NotePatch{Title: &title})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "Note not found or you don't have permissions.", apperr.MessageOf(err))
	})

	t.Run("success", func(t *testing.T) {
		title := "renamed"
		owned := &models.Note{ID: noteID, AuthorID: authorID, Status: models.NoteStatusActive}
		updated := &models.Note{ID: noteID, Title: title, AuthorID: authorID, Status: models.NoteStatusActive}

		reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(owned, nil)
		writer.EXPECT().Update(gomock.Any(), noteID, &title, gomock.Nil(), gomock.Nil()).Return(updated, nil)

		note, err := svc.Update(context.Background(), noteID, authorID, services.NotePatch{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, updated, note)
	})
}

func TestNoteService_OwnershipGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _ := newNoteService(ctrl)
	authorID := uuid.New()
	noteID := uuid.New()

	// Archive, Restore and Delete all answer identically for a missing
	// note and for someone else's note.
	ops := []struct {
		name string
		call func() error
	}{
		{"archive", func() error { return svc.Archive(context.Background(), noteID, authorID) }},
		{"restore", func() error { return svc.Restore(context.Background(), noteID, authorID) }},
		{"delete", func() error { return svc.Delete(context.Background(), noteID, authorID) }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(nil, nil)

			err := op.call()
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			assert.Equal(t, "Note not found or you don't have permissions.", apperr.MessageOf(err))
		})
	}
}

func TestNoteService_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer := newNoteService(ctrl)
	authorID := uuid.New()
	noteID := uuid.New()
	owned := &models.Note{ID: noteID, AuthorID: authorID, Status: models.NoteStatusActive}

	t.Run("success", func(t *testing.T) {
		reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(owned, nil)
		writer.EXPECT().Archive(gomock.Any(), noteID).Return(nil)

		assert.NoError(t, svc.Archive(context.Background(), noteID, authorID))
	})

	t.Run("already archived", func(t *testing.T) {
		archived := &models.Note{ID: noteID, AuthorID: authorID, Status: models.NoteStatusArchived}
		reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(archived, nil)
		writer.EXPECT().Archive(gomock.Any(), noteID).Return(repositories.ErrNoRowsAffected)

		err := svc.Archive(context.Background(), noteID, authorID)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "Cannot archive note.", apperr.MessageOf(err))
	})
}

func TestNoteService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer := newNoteService(ctrl)
	authorID := uuid.New()
	noteID := uuid.New()

	archived := &models.Note{ID: noteID, AuthorID: authorID, Status: models.NoteStatusArchived}
	reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(archived, nil)
	writer.EXPECT().Restore(gomock.Any(), noteID).Return(nil)

	assert.NoError(t, svc.Restore(context.Background(), noteID, authorID))
}

func TestNoteService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer := newNoteService(ctrl)
	authorID := uuid.New()
	noteID := uuid.New()

	owned := &models.Note{ID: noteID, AuthorID: authorID, Status: models.NoteStatusArchived}
	reader.EXPECT().GetByIDAndAuthor(gomock.Any(), noteID, authorID).Return(owned, nil)
	writer.EXPECT().Delete(gomock.Any(), noteID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), noteID, authorID))
}
