package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusvolunteer/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, event_id, user_id, user_name, user_avatar, joined_at, status,
		event_title, event_date, event_status`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, user_name, user_avatar, joined_at, status,
			event_title, event_date, event_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.UserName, reg.UserAvatar, reg.JoinedAt, reg.Status,
		reg.EventTitle, reg.EventDate, reg.EventStatus,
	).Scan(&reg.ID)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return r.scanRegistration(r.DB.QueryRowContext(ctx, query, id))
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND user_id = $2`
	return r.scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *registrationRepository) scanRegistration(row *sql.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.UserName, &reg.UserAvatar,
		&reg.JoinedAt, &reg.Status, &reg.EventTitle, &reg.EventDate, &reg.EventStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY joined_at ASC`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY joined_at DESC`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.UserName, &reg.UserAvatar,
			&reg.JoinedAt, &reg.Status, &reg.EventTitle, &reg.EventDate, &reg.EventStatus,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) CountConfirmedByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, eventID, domain.RegistrationStatusConfirmed).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatus writes the new status and applies the counter delta atomically.
// The increment is guarded by the event's capacity so the confirmed counter
// can never exceed max_volunteers, even under concurrent confirmations; the
// whole transaction rolls back when the guard fails.
func (r *registrationRepository) UpdateStatus(ctx context.Context, registrationID, eventID, status string, counterDelta int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE registrations SET status = $2 WHERE id = $1`,
		registrationID, status,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	switch counterDelta {
	case 1:
		result, err = tx.ExecContext(ctx,
			`UPDATE events
			 SET current_volunteers = current_volunteers + 1, updated_at = NOW()
			 WHERE id = $1 AND current_volunteers < max_volunteers`,
			eventID,
		)
		if err != nil {
			return err
		}
		rows, _ = result.RowsAffected()
		if rows == 0 {
			return domain.ErrQuotaFull
		}
	case -1:
		result, err = tx.ExecContext(ctx,
			`UPDATE events
			 SET current_volunteers = current_volunteers - 1, updated_at = NOW()
			 WHERE id = $1 AND current_volunteers > 0`,
			eventID,
		)
		if err != nil {
			return err
		}
		rows, _ = result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
	case 0:
		// Status change with no capacity effect (e.g. pending -> rejected).
	default:
		return fmt.Errorf("unsupported counter delta %d", counterDelta)
	}

	return tx.Commit()
}
