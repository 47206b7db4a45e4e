package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"campusvolunteer/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{
		DB: db,
	}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (event_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		fb.EventID, fb.UserID, fb.Rating, fb.Comment, fb.CreatedAt,
	).Scan(&fb.ID)
	if err != nil {
		// Unique index on (event_id, user_id) backs the one-feedback-per-event rule.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateFeedback
		}
		return err
	}
	return nil
}

func (r *feedbackRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Feedback, error) {
	query := `
		SELECT id, event_id, user_id, rating, comment, created_at
		FROM feedbacks
		WHERE event_id = $1 AND user_id = $2
	`
	fb := &domain.Feedback{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&fb.ID, &fb.EventID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fb, nil
}

func (r *feedbackRepository) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	whereClauses := []string{}
	args := []any{}
	n := 1
	if filter.UserID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", n))
		args = append(args, filter.UserID)
		n++
	}
	if filter.EventID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("event_id = $%d", n))
		args = append(args, filter.EventID)
		n++
	}
	query := `SELECT id, event_id, user_id, rating, comment, created_at FROM feedbacks`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]*domain.Feedback, 0)
	for rows.Next() {
		fb := &domain.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.EventID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}
