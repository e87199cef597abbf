package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adrs/internal/models"
	"adrs/pkg/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means no receipt exists under the given id.
	ErrNotFound = errors.New("receipt not found")
	// ErrDuplicateID means a create collided with an existing id. With
	// random ids this indicates an internal consistency fault.
	ErrDuplicateID = errors.New("receipt id already exists")
	// ErrInvalidTransition means a review was attempted on a receipt that
	// has already left PENDING. Terminal states are final.
	ErrInvalidTransition = errors.New("receipt is no longer pending review")
)

var receiptColumns = []string{
	"id", "created_at", "user_input", "intent", "ai_output",
	"reasoning", "confidence", "status", "metadata", "review",
}

type ReceiptRepository struct {
	db     *storage.DB
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewReceiptRepository(db *storage.DB, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(db.Placeholder),
		logger: logger,
	}
}

// Create persists a new receipt. The duplicate check and the insert run in
// one transaction so a collision can never clobber an existing record.
func (r *ReceiptRepository) Create(ctx context.Context, rec *models.Receipt) error {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode receipt metadata: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existsSQL, args, err := r.sb.Select("1").From("receipts").Where(squirrel.Eq{"id": rec.ID.String()}).ToSql()
	if err != nil {
		return err
	}
	var one int
	err = tx.QueryRowContext(ctx, existsSQL, args...).Scan(&one)
	if err == nil {
		return ErrDuplicateID
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check receipt id: %w", err)
	}

	insertSQL, args, err := r.sb.Insert("receipts").
		Columns(receiptColumns...).
		Values(
			rec.ID.String(), rec.CreatedAt.UTC(), rec.UserInput, string(rec.Intent),
			rec.AIOutput, rec.Reasoning, rec.Confidence, string(rec.Status),
			string(metadata), nil,
		).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit receipt: %w", err)
	}

	r.logger.Info("Receipt created",
		zap.String("receipt_id", rec.ID.String()),
		zap.String("intent", string(rec.Intent)),
	)
	return nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	query, args, err := r.sb.Select(receiptColumns...).
		From("receipts").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rec, err := scanReceipt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt: %w", err)
	}
	return rec, nil
}

// ListAll returns every receipt, oldest first.
func (r *ReceiptRepository) ListAll(ctx context.Context) ([]*models.Receipt, error) {
	return r.list(ctx, r.sb.Select(receiptColumns...).From("receipts").OrderBy("created_at ASC"))
}

// ListRecent returns the newest receipts first, at most limit of them.
func (r *ReceiptRepository) ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	q := r.sb.Select(receiptColumns...).From("receipts").OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.list(ctx, q)
}

// UpdateReview applies a terminal status and review record to a pending
// receipt. It fails with ErrNotFound for unknown ids and ErrInvalidTransition
// when the receipt has already been reviewed; the guard and the write share
// a transaction.
func (r *ReceiptRepository) UpdateReview(ctx context.Context, id uuid.UUID, status models.Status, reviewer, notes string) error {
	review := models.Review{
		Reviewer:   reviewer,
		Notes:      notes,
		ReviewedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to encode review: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statusSQL, args, err := r.sb.Select("status").From("receipts").Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return err
	}
	var current string
	if err := tx.QueryRowContext(ctx, statusSQL, args...).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load receipt status: %w", err)
	}
	if models.Status(current) != models.StatusPending {
		return ErrInvalidTransition
	}

	updateSQL, args, err := r.sb.Update("receipts").
		Set("status", string(status)).
		Set("review", string(encoded)).
		Where(squirrel.Eq{"id": id.String(), "status": string(models.StatusPending)}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		return fmt.Errorf("failed to update receipt review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}

	r.logger.Info("Receipt reviewed",
		zap.String("receipt_id", id.String()),
		zap.String("status", string(status)),
		zap.String("reviewer", reviewer),
	)
	return nil
}

func (r *ReceiptRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Receipt, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	return receipts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*models.Receipt, error) {
	var (
		rec      models.Receipt
		id       string
		intent   string
		status   string
		metadata string
		review   sql.NullString
	)
	if err := row.Scan(
		&id, &rec.CreatedAt, &rec.UserInput, &intent, &rec.AIOutput,
		&rec.Reasoning, &rec.Confidence, &status, &metadata, &review,
	); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt id %q: %w", id, err)
	}
	rec.ID = parsed
	rec.Intent = models.Intent(intent)
	rec.Status = models.Status(status)

	if err := json.Unmarshal([]byte(metadata), &rec.Metadata); err != nil {
		return nil, fmt.Errorf("invalid receipt metadata: %w", err)
	}
	if review.Valid {
		var rev models.Review
		if err := json.Unmarshal([]byte(review.String), &rev); err != nil {
			return nil, fmt.Errorf("invalid review record: %w", err)
		}
		rec.Review = &rev
	}
	return &rec, nil
}
