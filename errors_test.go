package paxada_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rifhice/paxada"
)

func TestIssues_ErrorSummarizes(t *testing.T) {
	iss := paxada.Issues{
		{Path: "/a", Code: paxada.CodeInvalidType, Message: "expected object"},
		{Path: "/b", Code: paxada.CodeRequired},
		{Path: "/c", Code: paxada.CodeUnknownKey},
		{Path: "/d", Code: paxada.CodeUnknownKey},
	}
	assert.Equal(t, "invalid_type at /a: expected object; required at /b; unknown_key at /c; ... (total 4)", iss.Error())
	assert.Equal(t, "", paxada.Issues{}.Error())
}

func TestAsIssues(t *testing.T) {
	var err error = paxada.AppendIssues(nil, paxada.Issue{Path: "/x", Code: paxada.CodeInvalidDocument})
	wrapped := fmt.Errorf("load: %w", err)
	iss, ok := paxada.AsIssues(wrapped)
	assert.True(t, ok)
	assert.Len(t, iss, 1)

	_, ok = paxada.AsIssues(errors.New("plain"))
	assert.False(t, ok)
	_, ok = paxada.AsIssues(nil)
	assert.False(t, ok)
}

func TestError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &paxada.Error{Code: paxada.ErrCodeMissingRequiredInput, Message: "route name"})
	assert.True(t, errors.Is(err, paxada.ErrMissingRequiredInput))
	assert.Equal(t, paxada.ErrCodeMissingRequiredInput, paxada.GetCode(err))
	assert.Equal(t, paxada.ErrorCode(""), paxada.GetCode(errors.New("x")))

	cause := errors.New("disk")
	e := (&paxada.Error{Code: paxada.ErrCodeInvalidInput, Message: "bad", Cause: cause}).WithDetail("file", "a.yaml")
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "INVALID_INPUT: bad (caused by: disk)", e.Error())
	assert.Equal(t, "a.yaml", e.Details["file"])
}
