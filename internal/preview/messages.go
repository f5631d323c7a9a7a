package preview

// messages.go maps technical errors to user-facing messages with support
// codes. Users can quote the code when reporting a problem; the original
// error stays in the server logs.

import (
	"errors"
	"strings"

	"tabledeck/internal/csv"
)

// UserMessage is a user-facing error with a support code.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// Messages for the core's sentinel errors.
var (
	msgEmptyInput = UserMessage{
		Message: "The file contains no data",
		Action:  "Upload a file with a header line and at least one row",
		Code:    "PRS001",
	}
	msgUnreadableHeader = UserMessage{
		Message: "The header line could not be read",
		Action:  "Check that the first line lists the column names",
		Code:    "PRS002",
	}
	msgRemoteUnavailable = UserMessage{
		Message: "The validation service could not be reached",
		Action:  "Try again later or use the local preview instead",
		Code:    "RMT001",
	}
)

var errorPatterns = []errorPattern{
	// File errors (FILE001-FILE002)
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a delimited text file to upload",
			Code:    "FILE002",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},

	// Remote validation errors (RMT002)
	{
		pattern: "validator rejected upload",
		msg: UserMessage{
			Message: "The validation service rejected the file",
			Action:  "Review the reported problems and upload again",
			Code:    "RMT002",
		},
	},

	// Request lifecycle (REQ001-REQ002)
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},

	// Rate limiting (RATE001)
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is the fallback for unexpected errors. Check the server
// logs for the original error when a user reports ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message. Sentinel
// errors from the parsing core are matched first, then known patterns
// (case-insensitive). Unmatched errors fall back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}

	switch {
	case errors.Is(err, csv.ErrEmptyInput):
		return msgEmptyInput
	case errors.Is(err, csv.ErrUnreadableHeader):
		return msgUnreadableHeader
	case errors.Is(err, ErrRemoteUnavailable):
		return msgRemoteUnavailable
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}
