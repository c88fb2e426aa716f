// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeCatalogEmpty   ErrorCode = "CATALOG_EMPTY"
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
	ErrCodeCareerNotFound ErrorCode = "CAREER_NOT_FOUND"

	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeReportGenerationFailed ErrorCode = "REPORT_GENERATION_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeWorkflowEngineUnavailable ErrorCode = "WORKFLOW_ENGINE_UNAVAILABLE"
	ErrCodeWorkflowEngineTimeout     ErrorCode = "WORKFLOW_ENGINE_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// WithMetadata sets one metadata entry and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewInvalidInputError is raised before scoring when job variables fail validation.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details, nil)
}

func NewCatalogEmptyError() *StandardError {
	return newError(ErrCodeCatalogEmpty, "Career catalog is empty", "no careers loaded", nil)
}

func NewCatalogInvalidError(err error) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Career catalog failed validation", detailsOf(err), err)
}

func NewCareerNotFoundError(careerID string) *StandardError {
	return newError(ErrCodeCareerNotFound, "Career not found", fmt.Sprintf("careerId: %s", careerID), nil).
		WithMetadata("careerId", careerID)
}

func NewProfileNotFoundError(userID string) *StandardError {
	return newError(ErrCodeProfileNotFound, "User profile not found", fmt.Sprintf("userId: %s", userID), nil).
		WithMetadata("userId", userID)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection failed", detailsOf(err), err)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Query execution failed",
		fmt.Sprintf("queryType: %s, error: %s", queryType, detailsOf(err)), err)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query failed",
		fmt.Sprintf("index: %s, error: %s", index, detailsOf(err)), err)
}

func NewSearchTimeoutError(index string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Search query timed out", fmt.Sprintf("index: %s", index), nil)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found", fmt.Sprintf("index: %s", indexName), nil)
}

func NewReportGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeReportGenerationFailed, "Report generation failed", detailsOf(err), err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, detailsOf(err)), err)
}

func NewWorkflowEngineUnavailableError(err error) *StandardError {
	return newError(ErrCodeWorkflowEngineUnavailable, "Workflow engine unavailable", detailsOf(err), err)
}

func NewWorkflowEngineTimeoutError(err error) *StandardError {
	return newError(ErrCodeWorkflowEngineTimeout, "Workflow engine request timed out", detailsOf(err), err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", detailsOf(err), err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:              "INVALID_INPUT",
	ErrCodeCatalogEmpty:              "CATALOG_EMPTY",
	ErrCodeCatalogInvalid:            "CATALOG_INVALID",
	ErrCodeCareerNotFound:            "CAREER_NOT_FOUND",
	ErrCodeProfileNotFound:           "PROFILE_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed:  "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:      "QUERY_EXECUTION_FAILED",
	ErrCodeSearchQueryFailed:         "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:             "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:             "INDEX_NOT_FOUND",
	ErrCodeReportGenerationFailed:    "REPORT_GENERATION_FAILED",
	ErrCodeNotificationSendFailed:    "NOTIFICATION_SEND_FAILED",
	ErrCodeWorkflowEngineUnavailable: "WORKFLOW_ENGINE_UNAVAILABLE",
	ErrCodeWorkflowEngineTimeout:     "WORKFLOW_ENGINE_TIMEOUT",
	ErrCodeInternal:                  "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeReportGenerationFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeWorkflowEngineUnavailable:
		return 3

	case ErrCodeSearchTimeout,
		ErrCodeWorkflowEngineTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandard finds a StandardError in err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first StandardError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Code
	}
	return ""
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG") || strings.HasPrefix(codeStr, "CAREER"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_EXECUTION"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.HasPrefix(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.HasPrefix(codeStr, "REPORT"):
		return "REPORT"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
