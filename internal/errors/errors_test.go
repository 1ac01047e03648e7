package errors

import (
	"fmt"
	"net/http"
	"testing"

	"heredity/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestGetCodeClassifiesDomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{core.NewFamilyError(core.ErrDanglingParent, "Harry", "mother Lily"), CodeMalformedFamily, http.StatusBadRequest},
		{fmt.Errorf("%w: nobody", core.ErrNoConsistentHypothesis), CodeContradictoryEvidence, http.StatusUnprocessableEntity},
		{core.ErrPopulationTooLarge, CodePopulationTooLarge, http.StatusUnprocessableEntity},
		{core.ErrRunNotFound, CodeNotFound, http.StatusNotFound},
		{InvalidInput("bad json"), CodeInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("disk on fire"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, GetCode(tt.err), tt.err.Error())
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWrapKeepsCodeAndCause(t *testing.T) {
	err := Wrap(core.ErrNoConsistentHypothesis, "inference failed")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeContradictoryEvidence, GetCode(err))
	assert.ErrorIs(t, err, core.ErrNoConsistentHypothesis)
	assert.Equal(t, "inference failed: no hypothesis consistent with evidence", err.Error())

	rewrapped := Wrapf(err, "run %d", 7)
	assert.Equal(t, CodeContradictoryEvidence, GetCode(rewrapped))
	assert.Nil(t, Wrap(nil, "nothing"))
}
