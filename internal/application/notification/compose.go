package notification

import (
	"fmt"
	"strings"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
)

// Compose applies the recipient rule table to a ticket event. The second
// result is false when nothing should be sent.
func Compose(ev ticket.Event, s Snapshot) (Message, bool) {
	label := fmt.Sprintf("Ticket #%d – %s", s.TicketID, s.TitleName)
	status := ev.TicketRef().Status.Label()

	var msg Message
	switch e := ev.(type) {
	case ticket.CreatedEvent:
		if !s.Assignee.reachable() {
			return Message{}, false
		}
		msg = Message{
			To:      []string{s.Assignee.Email},
			Subject: fmt.Sprintf("New Ticket Assigned to You: #%d", s.TicketID),
			Body: body(s.Assignee.FirstName,
				"A new ticket has been assigned to you.",
				"Ticket: "+label+"\nStatus: "+status+"\nSubmitted by: "+fullName(s.Creator),
				"Please log in to the system to view and respond to this ticket."),
		}

	case ticket.StatusChangedEvent:
		if !s.Creator.reachable() {
			return Message{}, false
		}
		msg = Message{
			To:      []string{s.Creator.Email},
			Subject: fmt.Sprintf("Your Ticket #%d Status Changed", s.TicketID),
			Body: body(s.Creator.FirstName,
				"The status of your ticket has been updated.",
				"Ticket: "+label+"\nStatus: "+e.OldStatus.Label()+" → "+e.NewStatus.Label(),
				"Please log in to view the details."),
		}

	case ticket.AssignedEvent:
		if !s.Assignee.reachable() {
			return Message{}, false
		}
		msg = Message{
			To:      []string{s.Assignee.Email},
			Subject: fmt.Sprintf("Ticket #%d Assigned to You", s.TicketID),
			Body: body(s.Assignee.FirstName,
				"A ticket has been assigned to you.",
				"Ticket: "+label+"\nStatus: "+status+"\nSubmitted by: "+fullName(s.Creator),
				"Please log in to view and respond."),
		}

	case ticket.EscalatedEvent:
		action, title := "de-escalated", "De-Escalated"
		if e.Escalated {
			action, title = "escalated", "Escalated"
		}
		msg = Message{
			To:      dedupeEmails(s.Creator, s.Assignee),
			Subject: fmt.Sprintf("Ticket #%d Has Been %s", s.TicketID, title),
			Body: body("",
				fmt.Sprintf("This is a notification that Ticket #%d has been %s.", s.TicketID, action),
				"Ticket: "+label+"\nStatus: "+status,
				"Please log in to review."),
		}

	case ticket.CommentedEvent:
		recipient := s.Creator
		if s.Creator != nil && e.AuthorID == s.Creator.UserID {
			recipient = s.Assignee
		}
		if !recipient.reachable() {
			return Message{}, false
		}
		commenter := "Someone"
		if s.Commenter != nil && s.Commenter.FullName != "" {
			commenter = s.Commenter.FullName
		}
		detail := "Ticket: " + label
		if text := strings.TrimSpace(e.Text); text != "" {
			detail += "\n\n" + text
		}
		msg = Message{
			To:      []string{recipient.Email},
			Subject: fmt.Sprintf("New Comment on Ticket #%d", s.TicketID),
			Body: body(recipient.FirstName,
				commenter+" added a comment to your ticket.",
				detail,
				"Please log in to view the comment and reply."),
		}

	default:
		return Message{}, false
	}

	if msg.Empty() {
		return Message{}, false
	}
	return msg, true
}

func body(greetName string, paragraphs ...string) string {
	var b strings.Builder
	if greetName != "" {
		b.WriteString("Hi " + greetName + ",\n\n")
	}
	for _, p := range paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString(Signature)
	return b.String()
}

func fullName(r *Recipient) string {
	if r == nil {
		return ""
	}
	return r.FullName
}
