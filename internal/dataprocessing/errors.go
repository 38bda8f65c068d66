package dataprocessing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

var (
	// ErrInputFormat is matched by every InputFormatError.
	ErrInputFormat = errors.New("input format error")

	// ErrEmptyDataset is returned when no validated record remains.
	ErrEmptyDataset = errors.New("no data to analyze")

	// ErrInvalidCell is matched by every InvalidCellError.
	ErrInvalidCell = errors.New("invalid numeric cell")

	// ErrUnreadableFile is returned when the upload is not a readable workbook or CSV.
	ErrUnreadableFile = errors.New("unreadable file")
)

// InputFormatError reports a header that lacks required columns.
type InputFormatError struct {
	Missing []string
	Reason  string
}

func (e *InputFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("input format error: missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return "input format error: " + e.Reason
}

// Is makes errors.Is(err, ErrInputFormat) hold.
func (e *InputFormatError) Is(target error) bool {
	return target == ErrInputFormat
}

// InvalidCellError reports numeric cells that could not be coerced.
type InvalidCellError struct {
	Cells []domain.CellError
}

func (e *InvalidCellError) Error() string {
	if len(e.Cells) == 0 {
		return ErrInvalidCell.Error()
	}
	first := e.Cells[0]
	msg := fmt.Sprintf("invalid numeric cell %q in column %s at row %d", first.Value, first.Column, first.Row)
	if len(e.Cells) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(e.Cells)-1)
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidCell) hold.
func (e *InvalidCellError) Is(target error) bool {
	return target == ErrInvalidCell
}
