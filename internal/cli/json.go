package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/rileyhilliard/ecsctl/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigInvalid         = "CONFIG_INVALID"
	ErrCodeTaskNotFound          = "TASK_NOT_FOUND"
	ErrCodeUnsupportedLaunchType = "UNSUPPORTED_LAUNCH_TYPE"
	ErrCodeContainerNotFound     = "CONTAINER_NOT_FOUND"
	ErrCodeChannelFailed         = "CHANNEL_FAILED"
	ErrCodeSSHConnectionFail     = "SSH_CONNECTION_FAILED"
	ErrCodeCommandFailed         = "COMMAND_FAILED"
	ErrCodeUnknown               = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	if code, ok := errors.GetExitCode(err); ok {
		return &JSONError{
			Code:    ErrCodeCommandFailed,
			Message: err.Error(),
			Details: map[string]interface{}{"exit_code": code},
		}
	}

	var ecsErr *errors.Error
	if stderrors.As(err, &ecsErr) {
		return &JSONError{
			Code:       mapErrorCode(ecsErr.Code),
			Message:    ecsErr.Message,
			Suggestion: ecsErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode string) string {
	switch internalCode {
	case errors.ErrConfig:
		return ErrCodeConfigInvalid
	case errors.ErrNotFound:
		return ErrCodeTaskNotFound
	case errors.ErrLaunchMode:
		return ErrCodeUnsupportedLaunchType
	case errors.ErrContainerNotFound:
		return ErrCodeContainerNotFound
	case errors.ErrChannel:
		return ErrCodeChannelFailed
	case errors.ErrSSH:
		return ErrCodeSSHConnectionFail
	case errors.ErrExec:
		return ErrCodeCommandFailed
	}
	return ErrCodeUnknown
}
