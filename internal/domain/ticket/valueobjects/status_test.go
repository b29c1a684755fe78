package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{"1-pending", StatusPending, false},
		{"2-progress", StatusProgress, false},
		{"3-completed", StatusCompleted, false},
		{"pending", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTicketStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.Label())
	assert.Equal(t, "In Progress", StatusProgress.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "4-unknown", TicketStatus("4-unknown").Label())
}

func TestPriorityTier(t *testing.T) {
	tests := []struct {
		name      string
		status    TicketStatus
		escalated bool
		want      int
	}{
		{"pending escalated", StatusPending, true, TierPendingEscalated},
		{"progress escalated", StatusProgress, true, TierProgressEscalated},
		{"pending", StatusPending, false, TierPending},
		{"progress", StatusProgress, false, TierProgress},
		{"completed escalated", StatusCompleted, true, TierOther},
		{"completed", StatusCompleted, false, TierOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityTier(tt.status, tt.escalated))
		})
	}
}
