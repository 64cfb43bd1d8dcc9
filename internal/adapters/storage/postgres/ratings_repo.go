package postgres

import (
	"context"
	"database/sql"

	"dogwalks/internal/domain/ratings"
)

type RatingsRepo struct {
	db *sql.DB
}

func NewRatingsRepo(db *sql.DB) *RatingsRepo {
	return &RatingsRepo{db: db}
}

func (r *RatingsRepo) Create(ctx context.Context, rating ratings.WalkRating) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO walk_ratings (id, request_id, walker_id, owner_id, rating, comment, rated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rating.ID,
		rating.RequestID,
		rating.WalkerID,
		rating.OwnerID,
		rating.Rating,
		rating.Comment,
		rating.RatedAt,
	)
	if isUniqueViolation(err) {
		return ratings.ErrConflict
	}
	return err
}

func (r *RatingsRepo) GetByRequest(ctx context.Context, requestID string) (ratings.WalkRating, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, request_id, walker_id, owner_id, rating, comment, rated_at
		FROM walk_ratings
		WHERE request_id = $1
	`, requestID)

	var rt ratings.WalkRating
	if err := row.Scan(&rt.ID, &rt.RequestID, &rt.WalkerID, &rt.OwnerID, &rt.Rating, &rt.Comment, &rt.RatedAt); err != nil {
		if err == sql.ErrNoRows {
			return ratings.WalkRating{}, ratings.ErrNotFound
		}
		return ratings.WalkRating{}, err
	}
	return rt, nil
}

// statsQuery junta calificaciones y paseos completados por walker. Los
// paseos completados salen de la postulación accepted, no de la calificación,
// por eso los subselects van separados.
const statsQuery = `
	SELECT
		u.id,
		COALESCE(rt.total, 0),
		COALESCE(rt.sum, 0),
		COALESCE(cw.total, 0)
	FROM users u
	LEFT JOIN (
		SELECT walker_id, COUNT(*) AS total, SUM(rating) AS sum
		FROM walk_ratings
		GROUP BY walker_id
	) rt ON rt.walker_id = u.id
	LEFT JOIN (
		SELECT wa.walker_id, COUNT(*) AS total
		FROM walk_applications wa
		JOIN walk_requests wr ON wr.id = wa.request_id
		WHERE wa.status = 'accepted' AND wr.status = 'completed'
		GROUP BY wa.walker_id
	) cw ON cw.walker_id = u.id
	WHERE u.role = 'walker'
`

func (r *RatingsRepo) StatsByWalker(ctx context.Context, walkerID string) (ratings.WalkerStats, error) {
	row := r.db.QueryRowContext(ctx, statsQuery+` AND u.id = $1`, walkerID)

	var st ratings.WalkerStats
	if err := row.Scan(&st.WalkerID, &st.TotalRatings, &st.RatingSum, &st.CompletedWalks); err != nil {
		if err == sql.ErrNoRows {
			// usuario inexistente o sin rol walker: agregados en cero,
			// el 404 lo decide la capa de arriba
			return ratings.WalkerStats{WalkerID: walkerID}, nil
		}
		return ratings.WalkerStats{}, err
	}
	return st, nil
}

func (r *RatingsRepo) ListStats(ctx context.Context) ([]ratings.WalkerStats, error) {
	rows, err := r.db.QueryContext(ctx, statsQuery+` ORDER BY u.username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ratings.WalkerStats, 0)
	for rows.Next() {
		var st ratings.WalkerStats
		if err := rows.Scan(&st.WalkerID, &st.TotalRatings, &st.RatingSum, &st.CompletedWalks); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
