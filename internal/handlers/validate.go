package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxPasswordLen    = 64
	minNewPasswordLen = 6
	maxTitleLen       = 128
	maxContentLen     = 10000
	maxTags           = 3
)

// parseNoteID reads the noteId path parameter.
func parseNoteID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "noteId"))
	return id, err == nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validPassword(password string) bool {
	return password != "" && len(password) <= maxPasswordLen
}

// validNewPassword applies the stricter rule for freshly chosen passwords.
func validNewPassword(password string) bool {
	return len(password) >= minNewPasswordLen && len(password) <= maxPasswordLen
}

func validTitle(title string) bool {
	return strings.TrimSpace(title) != "" && len(title) <= maxTitleLen
}

func validContent(content string) bool {
	return content != "" && len(content) <= maxContentLen
}

func validTags(tags []string) bool {
	if len(tags) > maxTags {
		return false
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return false
		}
	}
	return true
}
