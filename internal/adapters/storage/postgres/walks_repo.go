package postgres

import (
	"context"
	"database/sql"

	"dogwalks/internal/domain/walks"
)

type WalksRepo struct {
	db *sql.DB
}

func NewWalksRepo(db *sql.DB) *WalksRepo {
	return &WalksRepo{db: db}
}

func (r *WalksRepo) Create(ctx context.Context, wr walks.WalkRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO walk_requests (
			id, dog_id, requested_time, duration_minutes, location, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		wr.ID,
		wr.DogID,
		wr.RequestedTime,
		wr.DurationMinutes,
		wr.Location,
		wr.Status,
		wr.CreatedAt,
	)
	return err
}

func (r *WalksRepo) GetByID(ctx context.Context, id string) (walks.WalkRequest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dog_id, requested_time, duration_minutes, location, status, created_at
		FROM walk_requests
		WHERE id = $1
	`, id)

	var wr walks.WalkRequest
	if err := row.Scan(
		&wr.ID,
		&wr.DogID,
		&wr.RequestedTime,
		&wr.DurationMinutes,
		&wr.Location,
		&wr.Status,
		&wr.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return walks.WalkRequest{}, walks.ErrNotFound
		}
		return walks.WalkRequest{}, err
	}
	return wr, nil
}

// Cancel bloquea la fila de la solicitud y en la misma transacción rechaza
// las postulaciones pendientes. O se aplica todo o se revierte.
func (r *WalksRepo) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status walks.Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM walk_requests WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return walks.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !walks.CanTransition(status, walks.StatusCancelled) {
		return walks.ErrBadState
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE walk_requests SET status = 'cancelled' WHERE id = $1
	`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE walk_applications
		SET status = 'rejected'
		WHERE request_id = $1 AND status = 'pending'
	`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Complete es un update condicional: cero filas tocadas significa que la
// solicitud no existe o no estaba accepted.
func (r *WalksRepo) Complete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE walk_requests
		SET status = 'completed'
		WHERE id = $1 AND status = 'accepted'
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM walk_requests WHERE id = $1)
		`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return walks.ErrNotFound
		}
		return walks.ErrBadState
	}
	return nil
}

func (r *WalksRepo) ListFeed(ctx context.Context, ownerID string) ([]walks.FeedItem, error) {
	query := `
		SELECT
			wr.id, d.id, d.name, d.size,
			u.id, u.username,
			wr.requested_time, wr.duration_minutes, wr.location, wr.status, wr.created_at
		FROM walk_requests wr
		JOIN dogs d ON d.id = wr.dog_id
		JOIN users u ON u.id = d.owner_id
		WHERE wr.status IN ('open', 'pending')
	`
	args := []any{}
	if ownerID != "" {
		query += ` AND d.owner_id = $1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY wr.requested_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]walks.FeedItem, 0)
	for rows.Next() {
		var it walks.FeedItem
		if err := rows.Scan(
			&it.RequestID,
			&it.DogID,
			&it.DogName,
			&it.DogSize,
			&it.OwnerID,
			&it.OwnerName,
			&it.RequestedTime,
			&it.DurationMinutes,
			&it.Location,
			&it.Status,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
