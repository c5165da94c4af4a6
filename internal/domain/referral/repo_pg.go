package referral

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phu/phu/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type referralRepoPG struct{ pool *pgxpool.Pool }

func NewReferralRepoPG(pool *pgxpool.Pool) ReferralRepository {
	return &referralRepoPG{pool: pool}
}

func (r *referralRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const referralCols = `id, case_id, patient_id, from_facility, to_facility, reason,
	urgency, status, referred_by, note, created_at, updated_at`

func (r *referralRepoPG) scanReferral(row pgx.Row) (*Referral, error) {
	var ref Referral
	err := row.Scan(&ref.ID, &ref.CaseID, &ref.PatientID, &ref.FromFacility, &ref.ToFacility,
		&ref.Reason, &ref.Urgency, &ref.Status, &ref.ReferredBy, &ref.Note,
		&ref.CreatedAt, &ref.UpdatedAt)
	return &ref, err
}

func (r *referralRepoPG) Create(ctx context.Context, ref *Referral) error {
	ref.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO referral (id, case_id, patient_id, from_facility, to_facility, reason,
			urgency, status, referred_by, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		ref.ID, ref.CaseID, ref.PatientID, ref.FromFacility, ref.ToFacility, ref.Reason,
		ref.Urgency, ref.Status, ref.ReferredBy, ref.Note)
	return err
}

func (r *referralRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return r.scanReferral(r.conn(ctx).QueryRow(ctx,
		`SELECT `+referralCols+` FROM referral WHERE id = $1`, id))
}

func (r *referralRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE referral SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *referralRepoPG) List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Referral, int, error) {
	where := ` WHERE ($1::uuid IS NULL OR patient_id = $1)
		AND ($2::text IS NULL OR status = $2)`
	var pid *uuid.UUID
	if patientID != uuid.Nil {
		pid = &patientID
	}
	var st *string
	if status != "" {
		st = &status
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM referral`+where, pid, st).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+referralCols+` FROM referral`+where+
			` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		pid, st, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Referral
	for rows.Next() {
		ref, err := r.scanReferral(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ref)
	}
	return items, total, rows.Err()
}
