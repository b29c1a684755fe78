package directory

import (
	"context"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

type BulkUploadStatus string

const (
	BulkUploadSuccess BulkUploadStatus = "success"
	BulkUploadFailed  BulkUploadStatus = "failed"
)

// BulkUploadLog records one bulk user import attempt.
type BulkUploadLog struct {
	ID           uint
	Filename     string
	UploadedAt   time.Time
	UploadedBy   uint
	TotalRows    int
	Added        int
	Updated      int
	Status       BulkUploadStatus
	ErrorMessage string
	RowErrors    []string
}

func NewBulkUploadLog(filename string, uploadedBy uint) *BulkUploadLog {
	return &BulkUploadLog{
		Filename:   filename,
		UploadedAt: biztime.NowUTC(),
		UploadedBy: uploadedBy,
	}
}

func (l *BulkUploadLog) Succeed(total, added, updated int) {
	l.TotalRows = total
	l.Added = added
	l.Updated = updated
	l.Status = BulkUploadSuccess
}

func (l *BulkUploadLog) Fail(total int, msg string, rowErrors []string) {
	l.TotalRows = total
	l.Added = 0
	l.Updated = 0
	l.Status = BulkUploadFailed
	l.ErrorMessage = msg
	l.RowErrors = rowErrors
}

type BulkUploadLogRepository interface {
	Create(ctx context.Context, log *BulkUploadLog) error
	List(ctx context.Context, page, pageSize int) ([]*BulkUploadLog, int64, error)
}
