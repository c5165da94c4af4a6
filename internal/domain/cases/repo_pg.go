package cases

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

type caseRepoPG struct{ pool *pgxpool.Pool }

func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository {
	return &caseRepoPG{pool: pool}
}

func (r *caseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const caseCols = `id, patient_id, chief_complaint, status, temperature, respiratory_rate,
	weight_kg, muac, follow_up_date, created_by, created_at, updated_at`

func (r *caseRepoPG) scanCase(row pgx.Row) (*Case, error) {
	var cs Case
	err := row.Scan(&cs.ID, &cs.PatientID, &cs.ChiefComplaint, &cs.Status, &cs.Temperature,
		&cs.RespiratoryRate, &cs.WeightKg, &cs.MUAC, &cs.FollowUpDate, &cs.CreatedBy,
		&cs.CreatedAt, &cs.UpdatedAt)
	return &cs, err
}

func (r *caseRepoPG) Create(ctx context.Context, cs *Case) error {
	cs.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinical_case (id, patient_id, chief_complaint, status, temperature,
			respiratory_rate, weight_kg, muac, follow_up_date, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		cs.ID, cs.PatientID, cs.ChiefComplaint, cs.Status, cs.Temperature,
		cs.RespiratoryRate, cs.WeightKg, cs.MUAC, cs.FollowUpDate, cs.CreatedBy)
	return err
}

func (r *caseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return r.scanCase(r.conn(ctx).QueryRow(ctx,
		`SELECT `+caseCols+` FROM clinical_case WHERE id = $1`, id))
}

func (r *caseRepoPG) Update(ctx context.Context, cs *Case) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_case SET chief_complaint=$2, status=$3, temperature=$4,
			respiratory_rate=$5, weight_kg=$6, muac=$7, follow_up_date=$8, updated_at=NOW()
		WHERE id = $1`,
		cs.ID, cs.ChiefComplaint, cs.Status, cs.Temperature,
		cs.RespiratoryRate, cs.WeightKg, cs.MUAC, cs.FollowUpDate)
	return err
}

func (r *caseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinical_case WHERE id = $1`, id)
	return err
}

func (r *caseRepoPG) List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Case, int, error) {
	// Both filters are optional; uuid.Nil and "" mean unfiltered.
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
		`SELECT COUNT(*) FROM clinical_case`+where, pid, st).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+caseCols+` FROM clinical_case`+where+
			` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		pid, st, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Case
	for rows.Next() {
		cs, err := r.scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cs)
	}
	return items, total, rows.Err()
}

func (r *caseRepoPG) AddNote(ctx context.Context, note *CaseNote) error {
	note.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO case_note (id, case_id, author, body)
		VALUES ($1,$2,$3,$4)`,
		note.ID, note.CaseID, note.Author, note.Body)
	return err
}

func (r *caseRepoPG) GetNotes(ctx context.Context, caseID uuid.UUID) ([]*CaseNote, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, case_id, author, body, created_at
		FROM case_note WHERE case_id = $1 ORDER BY created_at`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CaseNote
	for rows.Next() {
		var n CaseNote
		if err := rows.Scan(&n.ID, &n.CaseID, &n.Author, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}
