package services

import (
	"errors"
	"fmt"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/dataprocessing"
	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/infrastructure"
)

// Service errors
var (
	ErrNilReader  = errors.New("upload reader is nil")
	ErrNoFileName = errors.New("file name is required")
)

// classifyError maps a loader or aggregation failure to the user-facing
// AppError and the outcome label recorded on metrics. Errors it does not
// recognise are returned unchanged.
func classifyError(err error) (error, string) {
	var formatErr *dataprocessing.InputFormatError
	var cellErr *dataprocessing.InvalidCellError

	switch {
	case errors.As(err, &formatErr):
		appErr := apperrors.NewInputFormatError(err)
		if len(formatErr.Missing) > 0 {
			appErr.WithContext("missing_columns", formatErr.Missing)
		}
		return appErr, infrastructure.OutcomeInputFormat

	case errors.As(err, &cellErr):
		msg := fmt.Sprintf("%d numeric cells could not be read", len(cellErr.Cells))
		if len(cellErr.Cells) == 1 {
			c := cellErr.Cells[0]
			msg = fmt.Sprintf("cell %s at row %d is not a number: %q", c.Column, c.Row, c.Value)
		}
		return apperrors.NewInvalidCellError(msg, err).WithContext("cells", cellErr.Cells), infrastructure.OutcomeInvalidCell

	case errors.Is(err, dataprocessing.ErrEmptyDataset):
		return apperrors.NewEmptyDatasetError(err), infrastructure.OutcomeEmptyDataset

	case errors.Is(err, dataprocessing.ErrUnreadableFile):
		return apperrors.NewUnreadableFileError(err), infrastructure.OutcomeUnreadable
	}
	return err, infrastructure.OutcomeError
}
