package postgres

import (
	"context"
	"database/sql"

	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/walks"
)

type MatchingRepo struct {
	db *sql.DB
}

func NewMatchingRepo(db *sql.DB) *MatchingRepo {
	return &MatchingRepo{db: db}
}

// Apply inserta la postulación y, si hacía falta, pasa la solicitud de open
// a pending en la misma transacción. El FOR UPDATE serializa a los walkers
// que llegan a la vez; el índice único parcial es la red de seguridad contra
// postulaciones duplicadas.
func (r *MatchingRepo) Apply(ctx context.Context, app matching.WalkApplication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status walks.Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM walk_requests WHERE id = $1 FOR UPDATE
	`, app.RequestID).Scan(&status)
	if err == sql.ErrNoRows {
		return matching.ErrNotFound
	}
	if err != nil {
		return err
	}
	if status != walks.StatusOpen && status != walks.StatusPending {
		return matching.ErrBadState
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO walk_applications (id, request_id, walker_id, status, applied_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		app.ID,
		app.RequestID,
		app.WalkerID,
		app.Status,
		app.AppliedAt,
	)
	if isUniqueViolation(err) {
		return matching.ErrConflict
	}
	if err != nil {
		return err
	}

	if status == walks.StatusOpen {
		if _, err := tx.ExecContext(ctx, `
			UPDATE walk_requests SET status = 'pending' WHERE id = $1
		`, app.RequestID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Accept corre entera dentro de una transacción con la fila de la solicitud
// bloqueada: gana exactamente un accept, las hermanas pendientes quedan
// rejected y la solicitud pasa a accepted. Quien encuentre la solicitud ya
// accepted perdió la carrera y recibe ErrConflict.
func (r *MatchingRepo) Accept(ctx context.Context, requestID, applicationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reqStatus walks.Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM walk_requests WHERE id = $1 FOR UPDATE
	`, requestID).Scan(&reqStatus)
	if err == sql.ErrNoRows {
		return matching.ErrNotFound
	}
	if err != nil {
		return err
	}

	var appStatus matching.Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM walk_applications WHERE id = $1 AND request_id = $2
	`, applicationID, requestID).Scan(&appStatus)
	if err == sql.ErrNoRows {
		return matching.ErrNotFound
	}
	if err != nil {
		return err
	}

	if reqStatus == walks.StatusAccepted {
		return matching.ErrConflict
	}
	if reqStatus != walks.StatusPending || appStatus != matching.StatusPending {
		return matching.ErrBadState
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE walk_applications SET status = 'accepted' WHERE id = $1
	`, applicationID); err != nil {
		if isUniqueViolation(err) {
			return matching.ErrConflict
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE walk_applications
		SET status = 'rejected'
		WHERE request_id = $1 AND id <> $2 AND status = 'pending'
	`, requestID, applicationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE walk_requests SET status = 'accepted' WHERE id = $1
	`, requestID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MatchingRepo) GetByID(ctx context.Context, id string) (matching.WalkApplication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, request_id, walker_id, status, applied_at
		FROM walk_applications
		WHERE id = $1
	`, id)
	return scanApplication(row)
}

func (r *MatchingRepo) ListByRequest(ctx context.Context, requestID string) ([]matching.WalkApplication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, walker_id, status, applied_at
		FROM walk_applications
		WHERE request_id = $1
		ORDER BY applied_at ASC
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.WalkApplication, 0)
	for rows.Next() {
		var app matching.WalkApplication
		if err := rows.Scan(&app.ID, &app.RequestID, &app.WalkerID, &app.Status, &app.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *MatchingRepo) AcceptedByRequest(ctx context.Context, requestID string) (matching.WalkApplication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, request_id, walker_id, status, applied_at
		FROM walk_applications
		WHERE request_id = $1 AND status = 'accepted'
	`, requestID)
	return scanApplication(row)
}

func scanApplication(row *sql.Row) (matching.WalkApplication, error) {
	var app matching.WalkApplication
	if err := row.Scan(&app.ID, &app.RequestID, &app.WalkerID, &app.Status, &app.AppliedAt); err != nil {
		if err == sql.ErrNoRows {
			return matching.WalkApplication{}, matching.ErrNotFound
		}
		return matching.WalkApplication{}, err
	}
	return app, nil
}
