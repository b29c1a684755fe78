package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// attachmentWriter stores an upload and records it. The file is saved, its
// signature verified, then the row is created; callers remove the returned
// filename if the surrounding transaction fails.
const maxNameAttempts = 9

type attachmentWriter struct {
	files          FileStore
	attachmentRepo ticket.AttachmentRepository
	maxBytes       int64
}

func (w attachmentWriter) precheck(f *UploadedFile) (string, error) {
	if f == nil {
		return "", nil
	}
	ext, err := ticket.ValidateAttachmentMeta(f.Name, f.Size, w.maxBytes)
	if err != nil {
		return "", errors.NewValidationError(err.Error())
	}
	return ext, nil
}

func (w attachmentWriter) store(ctx context.Context, t *ticket.Ticket, uploaderID uint, f *UploadedFile, ext string, saved *[]string) (*ticket.Attachment, error) {
	name, size, err := w.save(ctx, ticket.AttachmentFilename(t.ID(), biztime.NowUTC(), ext), f)
	if err != nil {
		return nil, err
	}
	*saved = append(*saved, name)

	if size <= 0 || size > w.maxBytes {
		return nil, errors.NewValidationError("file size is out of range")
	}

	detected, err := w.files.DetectContentType(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to verify attachment file: %w", err)
	}
	if !ticket.SignatureMatches(ext, detected) {
		return nil, errors.NewValidationError("file content does not match its extension")
	}

	att, err := ticket.NewAttachment(t.ID(), uploaderID, name, f.Name, ticket.ContentTypeFor(ext), size)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := w.attachmentRepo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return att, nil
}

// save stores f under base, then under base-2, base-3, ... while the name is
// taken by an upload in the same second.
func (w attachmentWriter) save(ctx context.Context, base string, f *UploadedFile) (string, int64, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := base
	for attempt := 2; ; attempt++ {
		size, err := w.files.Save(ctx, name, f.Content)
		if err == nil {
			return name, size, nil
		}
		if !stderrors.Is(err, fs.ErrExist) {
			return "", 0, fmt.Errorf("failed to save attachment file: %w", err)
		}
		if attempt > maxNameAttempts {
			return "", 0, errors.NewConflictError("another attachment was just uploaded to this ticket, please retry")
		}
		name = fmt.Sprintf("%s-%d%s", stem, attempt, ext)
	}
}

func (w attachmentWriter) cleanup(ctx context.Context, log logger.Interface, names []string) {
	for _, name := range names {
		if err := w.files.Remove(ctx, name); err != nil {
			log.Warnw("failed to remove orphaned attachment", "filename", name, "error", err)
		}
	}
}

// sanitizeComment cleans text; an input that is empty after cleaning is
// rejected, a blank input means no comment.
func sanitizeComment(s Sanitizer, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	clean := s.Sanitize(text)
	if strings.TrimSpace(clean) == "" {
		return "", errors.NewValidationError("comment cannot be empty")
	}
	if len(clean) > ticket.MaxCommentLength {
		return "", errors.NewValidationError(fmt.Sprintf("comment exceeds maximum length of %d characters", ticket.MaxCommentLength))
	}
	return clean, nil
}

// asAppError passes AppErrors through and turns anything else into a
// generic storage error after logging it.
func asAppError(log logger.Interface, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	log.Errorw("ticket transaction failed", "operation", op, "error", err)
	return errors.NewStorageError(constants.ErrMsgStorageFailure)
}

func loadNames(ctx context.Context, titleRepo directory.TitleRepository, userRepo directory.UserRepository, titleIDs, userIDs []uint) (dto.Names, error) {
	names := dto.Names{
		Titles: make(map[uint]string),
		Users:  make(map[uint]string),
	}

	if len(titleIDs) > 0 {
		titles, err := titleRepo.GetByIDs(ctx, uniqueIDs(titleIDs))
		if err != nil {
			return names, fmt.Errorf("failed to load titles: %w", err)
		}
		for _, t := range titles {
			names.Titles[t.ID()] = t.Name()
		}
	}
	if len(userIDs) > 0 {
		users, err := userRepo.GetByIDs(ctx, uniqueIDs(userIDs))
		if err != nil {
			return names, fmt.Errorf("failed to load users: %w", err)
		}
		for _, u := range users {
			names.Users[u.ID()] = u.FullName()
		}
	}
	return names, nil
}

func ticketUserIDs(tickets ...*ticket.Ticket) []uint {
	ids := make([]uint, 0, len(tickets)*2)
	for _, t := range tickets {
		ids = append(ids, t.CreatorID())
		if a := t.AssigneeID(); a != nil {
			ids = append(ids, *a)
		}
	}
	return ids
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func forbidden() error {
	return errors.NewForbiddenError(constants.ErrMsgForbidden)
}
