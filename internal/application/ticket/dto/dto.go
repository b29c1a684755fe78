package dto

import (
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint            `json:"id"`
	TitleID      uint            `json:"title_id"`
	TitleName    string          `json:"title_name"`
	Status       string          `json:"status"`
	StatusLabel  string          `json:"status_label"`
	Escalated    bool            `json:"escalated"`
	CreatorID    uint            `json:"creator_id"`
	CreatorName  string          `json:"creator_name"`
	SiteID       uint            `json:"site_id"`
	AssigneeID   *uint           `json:"assignee_id"`
	AssigneeName string          `json:"assignee_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Comments     []CommentDTO    `json:"comments,omitempty"`
	Attachments  []AttachmentDTO `json:"attachments,omitempty"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploaderID   uint      `json:"uploader_id"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Names resolves ids to display names for DTO assembly.
type Names struct {
	Titles map[uint]string
	Users  map[uint]string
}

func (n Names) title(id uint) string { return n.Titles[id] }

func (n Names) user(id *uint) string {
	if id == nil {
		return ""
	}
	return n.Users[*id]
}

func ToTicketDTO(t *ticket.Ticket, names Names) *TicketDTO {
	if t == nil {
		return nil
	}
	creator := t.CreatorID()
	return &TicketDTO{
		ID:           t.ID(),
		TitleID:      t.TitleID(),
		TitleName:    names.title(t.TitleID()),
		Status:       t.Status().String(),
		StatusLabel:  t.Status().Label(),
		Escalated:    t.IsEscalated(),
		CreatorID:    creator,
		CreatorName:  names.user(&creator),
		SiteID:       t.SiteID(),
		AssigneeID:   t.AssigneeID(),
		AssigneeName: names.user(t.AssigneeID()),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket, names Names) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t, names))
	}
	return out
}

func ToCommentDTO(c *ticket.Comment, names Names) CommentDTO {
	author := c.UserID()
	return CommentDTO{
		ID:        c.ID(),
		UserID:    author,
		UserName:  names.user(&author),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:           a.ID(),
		Filename:     a.Filename(),
		OriginalName: a.OriginalName(),
		ContentType:  a.ContentType(),
		Size:         a.Size(),
		UploaderID:   a.UploaderID(),
		UploadedAt:   a.UploadedAt(),
	}
}
