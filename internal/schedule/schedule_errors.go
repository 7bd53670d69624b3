package schedule

import (
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
)

var (
	ErrPatternNotFound = apperror.New(
		apperror.CodeNotFound,
		"Work pattern not found",
		http.StatusNotFound,
	)

	ErrInvalidPatternSpan = apperror.New(
		apperror.CodeInvalidInput,
		"Off-duty minute must be after on-duty minute",
		http.StatusBadRequest,
	)

	ErrInvalidAbsenceRate = apperror.New(
		apperror.CodeInvalidInput,
		"Absence rate must be between -1 and 1 exclusive",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
