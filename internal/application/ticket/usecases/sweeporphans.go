package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// StoredFile describes a blob found in the file store.
type StoredFile struct {
	Name    string
	ModTime time.Time
}

// FileLister enumerates the file store.
type FileLister interface {
	List(ctx context.Context) ([]StoredFile, error)
}

// DefaultOrphanGrace keeps files younger than this, since an upload is
// written before its row commits.
const DefaultOrphanGrace = time.Hour

// SweepOrphanAttachmentsUseCase removes stored files that no attachment row
// refers to.
type SweepOrphanAttachmentsUseCase struct {
	lister         FileLister
	files          FileStore
	attachmentRepo ticket.AttachmentRepository
	grace          time.Duration
	logger         logger.Interface
}

func NewSweepOrphanAttachmentsUseCase(
	lister FileLister,
	files FileStore,
	attachmentRepo ticket.AttachmentRepository,
	grace time.Duration,
	logger logger.Interface,
) *SweepOrphanAttachmentsUseCase {
	if grace <= 0 {
		grace = DefaultOrphanGrace
	}
	return &SweepOrphanAttachmentsUseCase{
		lister:         lister,
		files:          files,
		attachmentRepo: attachmentRepo,
		grace:          grace,
		logger:         logger,
	}
}

// Execute returns the number of files removed.
func (uc *SweepOrphanAttachmentsUseCase) Execute(ctx context.Context) (int, error) {
	stored, err := uc.lister.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored files: %w", err)
	}
	if len(stored) == 0 {
		return 0, nil
	}

	names, err := uc.attachmentRepo.Filenames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list attachment filenames: %w", err)
	}
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}

	cutoff := biztime.NowUTC().Add(-uc.grace)
	removed := 0
	for _, f := range stored {
		if _, ok := known[f.Name]; ok || f.ModTime.After(cutoff) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := uc.files.Remove(ctx, f.Name); err != nil {
			uc.logger.Warnw("failed to remove orphaned attachment", "filename", f.Name, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		uc.logger.Infow("orphaned attachments removed", "count", removed)
	}
	return removed, nil
}
