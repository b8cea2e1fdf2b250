package leaveerrors

import (
	"net/http"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrMissingStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status is required",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)

	ErrAttachmentUpload = apperror.New(
		apperror.CodeUploadFailed,
		"Attachment upload failed",
		http.StatusBadRequest,
	)
)
