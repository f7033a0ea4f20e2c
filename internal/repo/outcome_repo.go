package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// OutcomeRow — сохранённый результат одной задачи batch'а.
type OutcomeRow struct {
	BatchID     uuid.UUID
	Position    int
	Label       string
	Success     bool
	ErrorKind   string
	ErrorDetail string
	CreatedAt   time.Time
}

// OutcomeRepo — репозиторий результатов batch'ей.
//
// Ожидаемая схема:
//
//	CREATE TABLE batch_outcomes (
//	    batch_id     uuid        NOT NULL,
//	    position     int         NOT NULL,
//	    label        text        NOT NULL DEFAULT '',
//	    success      boolean     NOT NULL,
//	    error_kind   text        NOT NULL DEFAULT '',
//	    error_detail text        NOT NULL DEFAULT '',
//	    created_at   timestamptz NOT NULL,
//	    PRIMARY KEY (batch_id, position)
//	);
type OutcomeRepo struct {
	pool *pgxpool.Pool
}

// NewOutcomeRepo создаёт новый OutcomeRepo.
func NewOutcomeRepo(pool *pgxpool.Pool) *OutcomeRepo {
	return &OutcomeRepo{pool: pool}
}

// SaveBatch сохраняет результаты одного запуска batch'а в одной
// транзакции. Позиция результата — индекс задачи в batch'е.
// Повторное сохранение того же batch_id перезаписывает результаты.
func (r *OutcomeRepo) SaveBatch(ctx context.Context, batchID uuid.UUID, outcomes []pipeline.Outcome) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM batch_outcomes WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("delete previous outcomes: %w", err)
	}

	query := `
		INSERT INTO batch_outcomes (batch_id, position, label, success, error_kind, error_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now().UTC()
	for i, out := range outcomes {
		_, err := tx.Exec(ctx, query,
			batchID,
			i,
			out.Label,
			out.Success,
			string(out.Kind),
			out.Detail,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListBatch возвращает результаты batch'а в порядке позиций.
func (r *OutcomeRepo) ListBatch(ctx context.Context, batchID uuid.UUID) ([]OutcomeRow, error) {
	query := `
		SELECT batch_id, position, label, success, error_kind, error_detail, created_at
		FROM batch_outcomes
		WHERE batch_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var result []OutcomeRow
	for rows.Next() {
		var row OutcomeRow
		err := rows.Scan(
			&row.BatchID,
			&row.Position,
			&row.Label,
			&row.Success,
			&row.ErrorKind,
			&row.ErrorDetail,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return result, nil
}

// GetOutcome возвращает результат одной задачи batch'а.
func (r *OutcomeRepo) GetOutcome(ctx context.Context, batchID uuid.UUID, position int) (*OutcomeRow, error) {
	query := `
		SELECT batch_id, position, label, success, error_kind, error_detail, created_at
		FROM batch_outcomes
		WHERE batch_id = $1 AND position = $2
	`
	var row OutcomeRow
	err := r.pool.QueryRow(ctx, query, batchID, position).Scan(
		&row.BatchID,
		&row.Position,
		&row.Label,
		&row.Success,
		&row.ErrorKind,
		&row.ErrorDetail,
		&row.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query outcome: %w", err)
	}
	return &row, nil
}
