package ticket

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

// allowedAttachmentTypes maps accepted extensions to the content type their
// file signature must match.
var allowedAttachmentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// AttachmentExtension returns the lower-cased extension of name if it is an
// accepted attachment type.
func AttachmentExtension(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedAttachmentTypes[ext]; !ok {
		return "", fmt.Errorf("file type %q is not allowed; use jpg, jpeg, png or pdf", ext)
	}
	return ext, nil
}

// ValidateAttachmentMeta checks the extension and size of an upload before
// anything is written.
func ValidateAttachmentMeta(name string, size, maxBytes int64) (string, error) {
	ext, err := AttachmentExtension(name)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		return "", fmt.Errorf("file is empty")
	}
	if size > maxBytes {
		return "", fmt.Errorf("file exceeds maximum size of %d MB", maxBytes>>20)
	}
	return ext, nil
}

// ContentTypeFor returns the expected content type for ext.
func ContentTypeFor(ext string) string {
	return allowedAttachmentTypes[strings.ToLower(ext)]
}

// SignatureMatches reports whether a detected MIME type agrees with the
// extension class.
func SignatureMatches(ext, detected string) bool {
	want, ok := allowedAttachmentTypes[strings.ToLower(ext)]
	if !ok {
		return false
	}
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	return strings.EqualFold(strings.TrimSpace(detected), want)
}

// AttachmentFilename builds the stored name ticket_{id}_{YYYYmmdd-HHMMSS}{ext}.
func AttachmentFilename(ticketID uint, at time.Time, ext string) string {
	return fmt.Sprintf("ticket_%d_%s%s", ticketID, biztime.FileStamp(at), strings.ToLower(ext))
}

type Attachment struct {
	id           uint
	ticketID     uint
	uploaderID   uint
	filename     string
	originalName string
	contentType  string
	size         int64
	uploadedAt   time.Time
}

func NewAttachment(ticketID, uploaderID uint, filename, originalName, contentType string, size int64) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if size <= 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return &Attachment{
		ticketID:     ticketID,
		uploaderID:   uploaderID,
		filename:     filename,
		originalName: filepath.Base(originalName),
		contentType:  contentType,
		size:         size,
		uploadedAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id, ticketID, uploaderID uint,
	filename, originalName, contentType string,
	size int64,
	uploadedAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:           id,
		ticketID:     ticketID,
		uploaderID:   uploaderID,
		filename:     filename,
		originalName: originalName,
		contentType:  contentType,
		size:         size,
		uploadedAt:   uploadedAt,
	}, nil
}

func (a *Attachment) ID() uint              { return a.id }
func (a *Attachment) TicketID() uint        { return a.ticketID }
func (a *Attachment) UploaderID() uint      { return a.uploaderID }
func (a *Attachment) Filename() string      { return a.filename }
func (a *Attachment) OriginalName() string  { return a.originalName }
func (a *Attachment) ContentType() string   { return a.contentType }
func (a *Attachment) Size() int64           { return a.size }
func (a *Attachment) UploadedAt() time.Time { return a.uploadedAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	a.id = id
	return nil
}
