package applyerrors

import (
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
)

var (
	ErrApplyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Apply not found",
		http.StatusNotFound,
	)

	ErrUnknownApplyType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown apply type",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)

	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Decision must be approve or reject",
		http.StatusBadRequest,
	)

	// Decisions are one-shot. Reversal goes through a new submission for
	// the same key, which supersedes this row entirely.
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Apply has already been decided; submit a new request to amend",
		http.StatusUnprocessableEntity,
	)
)
