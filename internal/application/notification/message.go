// Package notification turns ticket events into emails and delivers them
// through a bounded background queue.
package notification

import (
	"strings"
)

// Signature closes every notification body.
const Signature = "— AssistITK12 System"

// Message is one email ready for delivery.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Empty reports whether the message lacks recipients, subject or body.
func (m Message) Empty() bool {
	return len(m.To) == 0 || strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Body) == ""
}

// Recipient is a user that may receive a notification.
type Recipient struct {
	UserID    uint
	FirstName string
	FullName  string
	Email     string
}

func (r *Recipient) reachable() bool {
	return r != nil && strings.TrimSpace(r.Email) != ""
}

// Snapshot is the resolved ticket context a message is rendered from.
type Snapshot struct {
	TicketID  uint
	TitleName string
	Creator   *Recipient
	Assignee  *Recipient
	Commenter *Recipient
}

// dedupeEmails keeps the first occurrence of each address, compared
// case-insensitively.
func dedupeEmails(rs ...*Recipient) []string {
	seen := make(map[string]struct{}, len(rs))
	var out []string
	for _, r := range rs {
		if !r.reachable() {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.Email))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(r.Email))
	}
	return out
}
