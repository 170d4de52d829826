package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/library"
	"LIBRARY_BACK-END/internal/utils"
)

const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgUniqueViolation           = "23505"
	pgCheckViolation            = "23514"
)

// mapError turns any error coming out of the service into a status, a
// message and optional field details.
func mapError(err error) (int, string, *dto.ErrorDetails) {
	var libErr *library.Error
	if errors.As(err, &libErr) {
		return libErr.Status, libErr.Message, libErr.Details
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return http.StatusBadRequest, "Validation failed",
			&dto.ErrorDetails{Field: fieldErrs[0].Field(), Error: fieldErrs[0].Error()}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, "Resource not found", nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return http.StatusNotFound, "Resource not found", nil
		case pgUniqueViolation:
			return http.StatusBadRequest, "Duplicate field value entered",
				&dto.ErrorDetails{Field: pgErr.ColumnName, Error: pgErr.Detail}
		case pgCheckViolation, pgNotNullViolation:
			return http.StatusBadRequest, "Validation failed",
				&dto.ErrorDetails{Field: pgErr.ColumnName, Error: pgErr.Message}
		}
	}

	return http.StatusInternalServerError, "Server Error", nil
}

// respondError logs err and writes it as an error envelope
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, message, details := mapError(err)

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)

	utils.WriteErrorResponse(w, status, message, details)
}

// callerID reads the authenticated user id placed on the context by the
// auth middleware.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized",
			&dto.ErrorDetails{Field: "token", Error: "User not authenticated"})
		return userID, false
	}
	return userID, true
}
