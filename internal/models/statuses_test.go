package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationStatusApplied, ApplicationStatusReviewing, true},
		{ApplicationStatusApplied, ApplicationStatusInterview, true},
		{ApplicationStatusApplied, ApplicationStatusAccepted, true},
		{ApplicationStatusApplied, ApplicationStatusRejected, true},
		{ApplicationStatusReviewing, ApplicationStatusInterview, true},
		{ApplicationStatusReviewing, ApplicationStatusAccepted, true},
		{ApplicationStatusInterview, ApplicationStatusAccepted, true},
		{ApplicationStatusInterview, ApplicationStatusRejected, true},

		// Backwards moves are never allowed.
		{ApplicationStatusReviewing, ApplicationStatusApplied, false},
		{ApplicationStatusInterview, ApplicationStatusReviewing, false},
		{ApplicationStatusAccepted, ApplicationStatusReviewing, false},

		// Terminal statuses admit nothing.
		{ApplicationStatusAccepted, ApplicationStatusRejected, false},
		{ApplicationStatusRejected, ApplicationStatusAccepted, false},
		{ApplicationStatusWithdrawn, ApplicationStatusReviewing, false},

		// Withdrawn is never a company-side target.
		{ApplicationStatusApplied, ApplicationStatusWithdrawn, false},
		{ApplicationStatusInterview, ApplicationStatusWithdrawn, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransitionApplication(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminalApplicationStatus(t *testing.T) {
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatusApplied))
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatusReviewing))
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatusInterview))
	assert.True(t, IsTerminalApplicationStatus(ApplicationStatusAccepted))
	assert.True(t, IsTerminalApplicationStatus(ApplicationStatusRejected))
	assert.True(t, IsTerminalApplicationStatus(ApplicationStatusWithdrawn))
}

func TestIsValidApplicationStatus(t *testing.T) {
	assert.True(t, IsValidApplicationStatus(ApplicationStatusApplied))
	assert.True(t, IsValidApplicationStatus(ApplicationStatusWithdrawn))
	assert.False(t, IsValidApplicationStatus("hired"))
}
