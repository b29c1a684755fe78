package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusPending   TicketStatus = "1-pending"
	StatusProgress  TicketStatus = "2-progress"
	StatusCompleted TicketStatus = "3-completed"
)

var statusLabels = map[TicketStatus]string{
	StatusPending:   "Pending",
	StatusProgress:  "In Progress",
	StatusCompleted: "Completed",
}

// AllStatuses lists statuses in display order.
var AllStatuses = []TicketStatus{StatusPending, StatusProgress, StatusCompleted}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label, or the raw code for unknown statuses.
func (s TicketStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}

// Priority tiers used for default list ordering. Lower sorts first.
const (
	TierPendingEscalated  = 1
	TierProgressEscalated = 2
	TierPending           = 3
	TierProgress          = 4
	TierOther             = 5
)

// PriorityTier ranks a ticket by status and escalation.
func PriorityTier(status TicketStatus, escalated bool) int {
	switch {
	case status == StatusPending && escalated:
		return TierPendingEscalated
	case status == StatusProgress && escalated:
		return TierProgressEscalated
	case status == StatusPending:
		return TierPending
	case status == StatusProgress:
		return TierProgress
	default:
		return TierOther
	}
}
