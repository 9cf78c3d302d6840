package solvererr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doismellburning/phasefield/internal/solvererr"
)

func TestErrorsAsRecoversKind(t *testing.T) {
	cause := errors.New("underlying failure")
	err := solvererr.Wrap(solvererr.IoError, "opening port", cause)

	var target *solvererr.Error
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, solvererr.IoError, target.Kind)
	assert.True(t, errors.Is(err, cause) || errors.Unwrap(err) == cause)
}

func TestNewHasNoCause(t *testing.T) {
	err := solvererr.New(solvererr.InvalidShape, "bad shape")
	assert.Nil(t, err.Unwrap())
	assert.Contains(t, err.Error(), "InvalidShape")
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "InvalidShape", solvererr.InvalidShape.String())
	assert.Equal(t, "NumericInstability", solvererr.NumericInstability.String())
}
