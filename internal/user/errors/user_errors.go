package usererrors

import (
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUnknownIdentity = apperror.New(
		apperror.CodeNotFound,
		"Unknown user identity",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)

	ErrInvalidWorkPatternRef = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid work pattern reference",
		http.StatusBadRequest,
	)

	ErrAccountTaken = apperror.New(
		apperror.CodeInvalidState,
		"Account is already registered",
		http.StatusUnprocessableEntity,
	)
)
