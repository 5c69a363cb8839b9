package core

// error_messages.go maps technical errors to user-facing messages.
//
// # Error Codes Reference
//
// Users can quote the code to support staff for faster diagnosis.
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Fetch failed: Customers could not be loaded
//	         Action: Reload the page later
//	         Patterns: "fetch customers"
//
//	SRC002 - Still loading: Customers are still loading
//	         Action: Wait a moment and try again
//	         Patterns: "customers not loaded"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Split the file into smaller chunks
//	          Patterns: "file too large", "request body too large"
//
//	FILE003 - Encoding error: File could not be read
//	          Action: Save file as UTF-8 encoding
//	          Patterns: "read import"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a CSV file to import
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The file has no data rows
//	          Action: Import a CSV file with a header and at least one row
//	          Patterns: "empty file"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - System busy: Too many imports in progress
//	         Action: Please wait a moment and try again
//	         Patterns: "too many concurrent imports"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid request: The request could not be understood
//	         Action: Check the submitted values
//	         Patterns: "invalid request"
//
//	REQ002 - Unknown column: The column does not exist
//	         Action: Use one of the table's column keys
//	         Patterns: "unknown column"
//
//	REQ003 - Invalid status: The status is not one of the allowed values
//	         Action: Use New, Return, In-progress or Purchased
//	         Patterns: "invalid status"
//
//	REQ004 - Invalid tab: The tab is not one of the header tabs
//	         Action: Use All, New, Return, In-progress or Purchased
//	         Patterns: "invalid tab"
//
//	REQ005 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ006 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Source
	{
		pattern: "fetch customers",
		msg: UserMessage{
			Message: "Error loading customers",
			Action:  "Reload the page later",
			Code:    "SRC001",
		},
	},
	{
		pattern: "customers not loaded",
		msg: UserMessage{
			Message: "Customers are still loading",
			Action:  "Wait a moment and try again",
			Code:    "SRC002",
		},
	},

	// File
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "read import",
		msg: UserMessage{
			Message: "File could not be read",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Import a CSV file with a header and at least one row",
			Code:    "FILE005",
		},
	},

	// Import
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},

	// Request
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be understood",
			Action:  "Check the submitted values",
			Code:    "REQ001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "The column does not exist",
			Action:  "Use one of the table's column keys",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid status",
		msg: UserMessage{
			Message: "The status is not one of the allowed values",
			Action:  "Use New, Return, In-progress or Purchased",
			Code:    "REQ003",
		},
	},
	{
		pattern: "invalid tab",
		msg: UserMessage{
			Message: "The tab is not one of the header tabs",
			Action:  "Use All, New, Return, In-progress or Purchased",
			Code:    "REQ004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ006",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

// MessageForCode returns the user message registered under code.
// Returns false for unknown codes.
func MessageForCode(code string) (UserMessage, bool) {
	if code == defaultMessage.Code {
		return defaultMessage, true
	}
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg, true
		}
	}
	return UserMessage{}, false
}
