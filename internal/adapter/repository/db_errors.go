package repository

import (
	stdErrors "errors"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// passthrough reports whether err already carries meaning for callers and
// must not be rewrapped as a database failure
func passthrough(err error) bool {
	var appErr apperrors.AppError
	return stdErrors.Is(err, entities.ErrMeetingNotFound) ||
		stdErrors.Is(err, entities.ErrActionItemNotFound) ||
		stdErrors.Is(err, entities.ErrCorruptRecord) ||
		stdErrors.As(err, &appErr)
}

func queryErr(err error) error {
	if err == nil || passthrough(err) {
		return err
	}
	return apperrors.ErrDBQueryFailed(err)
}

func txErr(err error) error {
	if err == nil || passthrough(err) {
		return err
	}
	return apperrors.ErrDBTransactionFailed(err)
}
