package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pettycash-ledger/internal/domain/report"
)

// ReportCollectionName is the collection holding rendered ledger reports
const ReportCollectionName = "ledger_reports"

// ReportRepository implements report.Repository for MongoDB
type ReportRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewReportRepository(logger *slog.Logger, db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

var _ report.Repository = (*ReportRepository)(nil)

func (r *ReportRepository) collection() *mongo.Collection {
	return r.db.Collection(ReportCollectionName)
}

// EnsureIndexes creates the unique month index and the snapshot lookup index
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "month_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_month_key"),
		},
		{
			Keys:    bson.D{{Key: "snapshot_id", Value: 1}},
			Options: options.Index().SetName("idx_snapshot_id"),
		},
	})
	if err != nil {
		r.logger.Error("Failed to create report indexes", "error", err)
		return fmt.Errorf("failed to create report indexes: %w", err)
	}
	return nil
}

// Upsert stores doc as the report of its month, replacing any earlier one
func (r *ReportRepository) Upsert(ctx context.Context, doc *report.Document) error {
	filter := bson.M{"month_key": doc.MonthKey}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection().ReplaceOne(ctx, filter, doc, opts); err != nil {
		r.logger.Error("Failed to upsert report",
			"month_key", doc.MonthKey,
			"snapshot_id", doc.SnapshotID,
			"error", err)
		return fmt.Errorf("failed to upsert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetBySnapshotID(ctx context.Context, snapshotID string) (*report.Document, error) {
	return r.findOne(ctx, bson.M{"snapshot_id": snapshotID}, snapshotID)
}

func (r *ReportRepository) GetByMonth(ctx context.Context, monthKey string) (*report.Document, error) {
	return r.findOne(ctx, bson.M{"month_key": monthKey}, monthKey)
}

func (r *ReportRepository) findOne(ctx context.Context, filter bson.M, key string) (*report.Document, error) {
	var doc report.Document
	err := r.collection().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, report.ErrReportNotFound{Key: key}
		}
		r.logger.Error("Failed to get report", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &doc, nil
}

// DeleteBySnapshotID removes the report rendered from a snapshot.
// A missing report is not an error since a later export may already have replaced it.
func (r *ReportRepository) DeleteBySnapshotID(ctx context.Context, snapshotID string) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"snapshot_id": snapshotID})
	if err != nil {
		r.logger.Error("Failed to delete report", "snapshot_id", snapshotID, "error", err)
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if result.DeletedCount == 0 {
		r.logger.Debug("No report to delete", "snapshot_id", snapshotID)
	}
	return nil
}

// List returns reports newest month first
func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]*report.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "month_key", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list reports", "error", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []*report.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode reports", "error", err)
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return docs, nil
}

func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count reports", "error", err)
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}
