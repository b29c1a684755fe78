package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

const MaxCommentLength = 5000

type Comment struct {
	id        uint
	ticketID  uint
	userID    uint
	text      string
	createdAt time.Time
}

// NewComment validates and creates a comment. text is expected to be
// sanitized already.
func NewComment(ticketID, userID uint, text string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment cannot be empty")
	}
	if len(text) > MaxCommentLength {
		return nil, fmt.Errorf("comment exceeds maximum length of %d characters", MaxCommentLength)
	}

	return &Comment{
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, ticketID, userID uint, text string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) UserID() uint         { return c.userID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	c.id = id
	return nil
}
