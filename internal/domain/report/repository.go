package report

import "context"

// Repository archives rendered report documents. At most one document is kept per month.
type Repository interface {
	Upsert(ctx context.Context, doc *Document) error
	GetBySnapshotID(ctx context.Context, snapshotID string) (*Document, error)
	GetByMonth(ctx context.Context, monthKey string) (*Document, error)
	DeleteBySnapshotID(ctx context.Context, snapshotID string) error
	List(ctx context.Context, limit, offset int) ([]*Document, error)
	Count(ctx context.Context) (int64, error)
}

// ErrReportNotFound indicates missing report document
type ErrReportNotFound struct {
	Key string
}

func (e ErrReportNotFound) Error() string {
	return "report not found: " + e.Key
}

func (e ErrReportNotFound) Is(target error) bool {
	t, ok := target.(ErrReportNotFound)
	if !ok {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}
