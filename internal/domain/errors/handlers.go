package errors

import "nexus/internal/errors"

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "CLIENT_NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// NewErrorInfo builds the user-facing view of err. Storage failures only expose the
// generic message; their cause belongs in the logs.
func NewErrorInfo(err error) *ErrorInfo {
	var storageErr *StorageFailureError
	if errors.As(err, &storageErr) {
		return &ErrorInfo{
			Code:    storageErr.ErrorCode(),
			Message: storageErr.Message(),
		}
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		info := &ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
		}
		if details := appErr.Details(); details != "" {
			info.Details = details
		}

		return info
	}

	return &ErrorInfo{
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	}
}
