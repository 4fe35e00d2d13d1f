package service

import (
	"strings"
	"time"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/model"
)

// requireIdentity guards every mutation: a write without a resolved caller is
// rejected before it reaches a store.
func requireIdentity(userID string) *apperrors.APIError {
	if strings.TrimSpace(userID) == "" {
		return apperrors.Unauthorized("no authenticated identity")
	}
	return nil
}

func parseDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func invalidDate(field string) *apperrors.APIError {
	return apperrors.BadRequest("invalid_date", field+" must be a YYYY-MM-DD date")
}
