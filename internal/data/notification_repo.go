package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// NotificationRepo provides database operations for the email outbox.
type NotificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNotificationRepo creates a new NotificationRepo with real time provider.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNotificationRepoWithTimeProvider creates a new NotificationRepo with a custom time provider.
func NewNotificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: tp}
}

const (
	notificationColumnsSQL = `id, application_id, recipient, status, state, provider_message_id,
	       error, created_at, delivered_at`

	notificationClaimQuery = `
		SELECT ` + notificationColumnsSQL + `
		FROM email_outbox
		WHERE state = 'pending'
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED`
)

// ProcessPending claims up to limit pending rows with SKIP LOCKED, invokes
// deliver on each, and marks each row delivered or failed inside the
// claiming transaction. Concurrent dispatchers never see the same row.
// Each row gets exactly one delivery attempt; a failed row stays failed
// until an operator requeues the notification.
func (r *NotificationRepo) ProcessPending(
	ctx context.Context,
	limit int,
	deliver core.DeliverFunc,
) (int, error) {
	if deliver == nil {
		return 0, errors.New("deliver func is required")
	}
	if limit <= 0 {
		limit = 10
	}

	processed := 0
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx, notificationClaimQuery, limit)
			if err != nil {
				return err
			}
			claimed, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.EmailNotification])
			rows.Close()
			if err != nil {
				return err
			}

			now := r.timeProvider.Now().UTC()
			for i := range claimed {
				n := &claimed[i]
				msgID, deliverErr := deliver(ctx, n)
				if deliverErr != nil {
					errMsg := deliverErr.Error()
					if _, err := tx.Exec(ctx, `
						UPDATE email_outbox SET state = 'failed', error = $2
						WHERE id = $1`, n.ID, errMsg); err != nil {
						return err
					}
				} else {
					if _, err := tx.Exec(ctx, `
						UPDATE email_outbox
						SET state = 'delivered', provider_message_id = $2, delivered_at = $3, error = NULL
						WHERE id = $1`, n.ID, msgID, now); err != nil {
						return err
					}
				}
				processed++
			}
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("process pending notifications: %w", apperrors.MapDBError(err))
	}
	return processed, nil
}

// GetByID retrieves an outbox row by ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*model.EmailNotification, error) {
	var out model.EmailNotification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+notificationColumnsSQL+` FROM email_outbox WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EmailNotification])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("notification %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByApplication retrieves the outbox history for an application,
// newest first.
func (r *NotificationRepo) ListByApplication(
	ctx context.Context,
	applicationID string,
) ([]*model.EmailNotification, error) {
	var rowsOut []model.EmailNotification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+notificationColumnsSQL+`
			FROM email_outbox
			WHERE application_id = $1
			ORDER BY created_at DESC`, applicationID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.EmailNotification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.EmailNotification, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
