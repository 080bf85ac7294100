package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeGRPCCode(t *testing.T) {
	tests := map[Code]codes.Code{
		CodeMissionRuleViolation: codes.FailedPrecondition,
		CodeEquipmentLocked:      codes.FailedPrecondition,
		CodeWireAlreadyCut:       codes.FailedPrecondition,
		CodePlayerNotFound:       codes.NotFound,
		CodeEquipmentUnknown:     codes.NotFound,
		CodeWireNotFound:         codes.NotFound,
		CodeCharacterForbidden:   codes.InvalidArgument,
		Code("SOMETHING_ELSE"):   codes.Unknown,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.GRPCCode(), string(code))
	}
}

func TestLegalityErrorGRPCStatus(t *testing.T) {
	lerr := NewLegalityError(CodeMissionRuleViolation, "value %d", 7)

	var err error = lerr
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "value 7", st.Message())
	assert.Equal(t, "MISSION_RULE_VIOLATION: value 7", err.Error())
}

func TestLegalityErrorErr(t *testing.T) {
	var legal *LegalityError
	assert.NoError(t, legal.Err())

	illegal := NewLegalityError(CodeWireNotFound, "no wire")
	err := illegal.Err()
	require.Error(t, err)

	var target *LegalityError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, CodeWireNotFound, target.Code)
}
