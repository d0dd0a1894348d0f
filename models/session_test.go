package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionResetResults(t *testing.T) {
	s := NewSession("sid")
	s.Results = []ProfileResult{{Name: "A"}}
	s.Decisions["k"] = true
	s.View = ViewDeepDive
	s.Searched = true

	s.ResetResults()

	assert.Empty(t, s.Results)
	assert.Empty(t, s.Decisions)
	assert.NotNil(t, s.Decisions)
	assert.Equal(t, ViewSelection, s.View)
	assert.False(t, s.Searched)
}

func TestSessionDrainNotices(t *testing.T) {
	s := NewSession("sid")
	s.Notices = append(s.Notices, Notice{Title: "Error"})

	drained := s.DrainNotices()

	assert.Len(t, drained, 1)
	assert.Empty(t, s.Notices)
	assert.Empty(t, s.DrainNotices())
}

func TestNewErrorResponseUnknownCode(t *testing.T) {
	resp := NewErrorResponse(4242, nil)
	assert.Equal(t, "unknown error", resp.Message)

	resp = NewErrorResponse(CodeMissingParams, nil)
	assert.Equal(t, "Missing Information", resp.Message)
}
