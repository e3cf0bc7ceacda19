package storage

import (
	"context"
	"database/sql"
	"errors"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

const sessionColumns = `id, token, table_number, organization_id, branch_id, is_active, created_at, closed_at`

// InsertSession relies on the partial unique index over (branch_id,
// table_number) WHERE is_active; a second open session for the same table
// comes back as ErrConflict.
func (r *SessionRepository) InsertSession(ctx context.Context, session *domain.TableSession, qrPNG []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO table_sessions (id, token, table_number, organization_id, branch_id, is_active, qr_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, session.ID, session.Token, session.TableNumber, session.OrganizationID, session.BranchID,
		session.IsActive, qrPNG, session.CreatedAt)
	return translateErr(err)
}

func (r *SessionRepository) GetSession(ctx context.Context, id, branchID string) (*domain.TableSession, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM table_sessions WHERE id = $1 AND branch_id = $2
	`, id, branchID)
	return scanSession(row)
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, token string) (*domain.TableSession, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM table_sessions WHERE token = $1
	`, token)
	return scanSession(row)
}

// CloseSession only touches active rows, so a racing close cannot rewrite
// closed_at. Zero rows means already closed or missing; the plain read
// disambiguates.
func (r *SessionRepository) CloseSession(ctx context.Context, id, branchID string) (*domain.TableSession, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE table_sessions
		SET is_active = FALSE, closed_at = NOW()
		WHERE id = $1 AND branch_id = $2 AND is_active
		RETURNING `+sessionColumns+`
	`, id, branchID)
	session, err := scanSession(row)
	if errors.Is(err, domain.ErrNotFound) {
		return r.GetSession(ctx, id, branchID)
	}
	return session, err
}

func (r *SessionRepository) ListSessions(ctx context.Context, branchID string, activeOnly *bool) ([]domain.TableSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM table_sessions WHERE branch_id = $1`
	args := []interface{}{branchID}
	if activeOnly != nil {
		args = append(args, *activeOnly)
		query += ` AND is_active = $2`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.TableSession
	for rows.Next() {
		var s domain.TableSession
		if err := rows.Scan(&s.ID, &s.Token, &s.TableNumber, &s.OrganizationID, &s.BranchID, &s.IsActive, &s.CreatedAt, &s.ClosedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) GetSessionQR(ctx context.Context, id, branchID string) ([]byte, error) {
	var png []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT qr_code FROM table_sessions WHERE id = $1 AND branch_id = $2
	`, id, branchID).Scan(&png)
	if err != nil {
		return nil, translateErr(err)
	}
	return png, nil
}

func scanSession(row *sql.Row) (*domain.TableSession, error) {
	var s domain.TableSession
	err := row.Scan(&s.ID, &s.Token, &s.TableNumber, &s.OrganizationID, &s.BranchID, &s.IsActive, &s.CreatedAt, &s.ClosedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &s, nil
}

var _ service.SessionRepository = (*SessionRepository)(nil)
