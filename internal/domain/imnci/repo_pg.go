package imnci

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

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

func (r *assessmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const assessmentCols = `id, case_id, patient_id, assessed_by, age_months, note, created_at, updated_at`

func (r *assessmentRepoPG) scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.CaseID, &a.PatientID, &a.AssessedBy, &a.AgeMonths, &a.Note,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

const resultCols = `id, assessment_id, domain, classification, color, requires_referral,
	urgency, treatment, position, created_at`

func (r *assessmentRepoPG) scanResult(row pgx.Row) (*AssessmentResult, error) {
	var res AssessmentResult
	err := row.Scan(&res.ID, &res.AssessmentID, &res.Domain, &res.Classification, &res.Color,
		&res.RequiresReferral, &res.Urgency, &res.Treatment, &res.Position, &res.CreatedAt)
	return &res, err
}

func (r *assessmentRepoPG) Create(ctx context.Context, a *Assessment, results []*AssessmentResult) error {
	a.ID = uuid.New()
	q := r.conn(ctx)
	_, err := q.Exec(ctx, `
		INSERT INTO assessment (id, case_id, patient_id, assessed_by, age_months, note)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.CaseID, a.PatientID, a.AssessedBy, a.AgeMonths, a.Note)
	if err != nil {
		return err
	}
	for _, res := range results {
		res.ID = uuid.New()
		res.AssessmentID = a.ID
		_, err := q.Exec(ctx, `
			INSERT INTO assessment_result (id, assessment_id, domain, classification, color,
				requires_referral, urgency, treatment, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			res.ID, res.AssessmentID, res.Domain, res.Classification, res.Color,
			res.RequiresReferral, res.Urgency, res.Treatment, res.Position)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *assessmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return r.scanAssessment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM assessment WHERE id = $1`, id))
}

func (r *assessmentRepoPG) GetResults(ctx context.Context, assessmentID uuid.UUID) ([]*AssessmentResult, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM assessment_result WHERE assessment_id = $1 ORDER BY position`,
		assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AssessmentResult
	for rows.Next() {
		res, err := r.scanResult(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, rows.Err()
}

func (r *assessmentRepoPG) ListByCase(ctx context.Context, caseID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment WHERE case_id = $1`, caseID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM assessment WHERE case_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		caseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *assessmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM assessment WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *assessmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM assessment WHERE id = $1`, id)
	return err
}
