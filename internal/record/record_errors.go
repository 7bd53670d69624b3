package record

import (
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
)

var (
	ErrInvalidPunchKind = apperror.New(
		apperror.CodeInvalidInput,
		"Punch kind must be one of clock-in, break-start, break-resume, clock-out",
		http.StatusBadRequest,
	)

	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"Timestamp must be RFC 3339",
		http.StatusBadRequest,
	)

	ErrInvalidApplyRef = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid linked apply reference",
		http.StatusBadRequest,
	)

	ErrApplyRefNotFound = apperror.New(
		apperror.CodeNotFound,
		"Linked apply not found",
		http.StatusNotFound,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"date_from must not be after date_to",
		http.StatusBadRequest,
	)
)
