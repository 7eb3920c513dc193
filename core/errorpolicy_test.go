package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPolicyOrdering(t *testing.T) {
	assert.True(t, ErrorPolicyAbortProcess.AtLeast(ErrorPolicyLogError))
	assert.True(t, ErrorPolicyLogError.AtLeast(ErrorPolicyIgnore))
	assert.True(t, ErrorPolicyLogError.AtLeast(ErrorPolicyLogError))
	assert.False(t, ErrorPolicyIgnore.AtLeast(ErrorPolicyLogError))
	assert.False(t, ErrorPolicyLogError.AtLeast(ErrorPolicyAbortProcess))
}

func TestErrorPolicyString(t *testing.T) {
	assert.Equal(t, "IGNORE", ErrorPolicyIgnore.String())
	assert.Equal(t, "LOG_ERROR", ErrorPolicyLogError.String())
	assert.Equal(t, "ABORT_PROCESS", ErrorPolicyAbortProcess.String())
}
