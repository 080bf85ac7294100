package rules

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code is a machine-readable legality code.
type Code string

const (
	CodeMissionRuleViolation Code = "MISSION_RULE_VIOLATION"
	CodePlayerNotFound       Code = "PLAYER_NOT_FOUND"
	CodeCharacterForbidden   Code = "CHARACTER_FORBIDDEN"
	CodeEquipmentLocked      Code = "EQUIPMENT_LOCKED"
	CodeEquipmentUnknown     Code = "EQUIPMENT_UNKNOWN"
	CodeWireNotFound         Code = "WIRE_NOT_FOUND"
	CodeWireAlreadyCut       Code = "WIRE_ALREADY_CUT"
)

// GRPCCode maps legality codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeMissionRuleViolation,
		CodeEquipmentLocked,
		CodeWireAlreadyCut:
		return codes.FailedPrecondition
	case CodePlayerNotFound,
		CodeEquipmentUnknown,
		CodeWireNotFound:
		return codes.NotFound
	case CodeCharacterForbidden:
		return codes.InvalidArgument
	default:
		return codes.Unknown
	}
}

// LegalityError describes why an action is illegal. Rule checks return a
// nil *LegalityError for legal actions.
type LegalityError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// NewLegalityError builds a LegalityError with a formatted message.
func NewLegalityError(code Code, format string, args ...any) *LegalityError {
	return &LegalityError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements error.
func (e *LegalityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GRPCStatus lets status.FromError and status.Code recognise the error.
func (e *LegalityError) GRPCStatus() *status.Status {
	return status.New(e.Code.GRPCCode(), e.Message)
}

// Err converts a legality result to a plain error, nil when legal.
// It exists so callers never store a nil *LegalityError in an error.
func (e *LegalityError) Err() error {
	if e == nil {
		return nil
	}
	return e
}
