package attendanceerrors

import (
	"net/http"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	ErrMissingCheckOutTime = apperror.New(
		apperror.CodeInvalidInput,
		"Check-out time is required",
		http.StatusBadRequest,
	)

	ErrInvalidCheckOutTime = apperror.New(
		apperror.CodeInvalidInput,
		"Check-out time must be RFC3339",
		http.StatusBadRequest,
	)

	ErrMissingWorkReport = apperror.New(
		apperror.CodeInvalidInput,
		"Work report is required",
		http.StatusBadRequest,
	)

	ErrRecordAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"Attendance record is already checked out",
		http.StatusConflict,
	)

	ErrAttachmentUpload = apperror.New(
		apperror.CodeUploadFailed,
		"Attachment upload failed",
		http.StatusBadRequest,
	)
)
