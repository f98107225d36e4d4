package cmeans

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	cause := errors.New("unsupported metric: Manhattan")
	err := &ConfigError{Field: "metric", Value: 1, cause: cause}

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid configuration: metric=1: unsupported metric: Manhattan", err.Error())

	plain := &ConfigError{Field: "clusterCount", Value: 0}
	assert.Equal(t, "invalid configuration: clusterCount=0", plain.Error())
	assert.NotErrorIs(t, plain, ErrConvergenceNotReached)
}

func TestConvergenceError(t *testing.T) {
	err := fmt.Errorf("selftest: %w", &ConvergenceError{
		Algorithm:  AlgorithmPCM,
		Iterations: 5,
		Change:     0.5,
		Threshold:  1e-7,
	})

	assert.ErrorIs(t, err, ErrConvergenceNotReached)
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "pcm: convergence not reached after 5 iterations")
}

func TestMembershipShapeError(t *testing.T) {
	err := &MembershipShapeError{ExpectedRows: 7, ExpectedCols: 2, ActualRows: 3, ActualCols: 2}
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, "dimension mismatch: expected 7x2 membership matrix, got 3x2", err.Error())
}
