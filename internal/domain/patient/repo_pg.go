package patient

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

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, first_name, last_name, sex, date_of_birth, age_months, village,
	guardian_name, guardian_contact, registered_by, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Sex, &p.DateOfBirth, &p.AgeMonths,
		&p.Village, &p.GuardianName, &p.GuardianContact, &p.RegisteredBy, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, first_name, last_name, sex, date_of_birth, age_months,
			village, guardian_name, guardian_contact, registered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.FirstName, p.LastName, p.Sex, p.DateOfBirth, p.AgeMonths,
		p.Village, p.GuardianName, p.GuardianContact, p.RegisteredBy)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, sex=$4, date_of_birth=$5, age_months=$6,
			village=$7, guardian_name=$8, guardian_contact=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Sex, p.DateOfBirth, p.AgeMonths,
		p.Village, p.GuardianName, p.GuardianContact)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	q := r.conn(ctx)
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if name != "" {
		filter := "%" + name + "%"
		if err = q.QueryRow(ctx,
			`SELECT COUNT(*) FROM patient WHERE first_name ILIKE $1 OR last_name ILIKE $1`,
			filter).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+patientCols+` FROM patient
			WHERE first_name ILIKE $1 OR last_name ILIKE $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter, limit, offset)
	} else {
		if err = q.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

const profileCols = `id, patient_id, blood_type, allergies, chronic_conditions,
	immunization_notes, notes, created_at, updated_at`

func (r *patientRepoPG) GetProfile(ctx context.Context, patientID uuid.UUID) (*PatientProfile, error) {
	var pr PatientProfile
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM patient_profile WHERE patient_id = $1`, patientID).
		Scan(&pr.ID, &pr.PatientID, &pr.BloodType, &pr.Allergies, &pr.ChronicConditions,
			&pr.ImmunizationNotes, &pr.Notes, &pr.CreatedAt, &pr.UpdatedAt)
	return &pr, err
}

func (r *patientRepoPG) UpdateProfile(ctx context.Context, profile *PatientProfile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_profile SET blood_type=$2, allergies=$3, chronic_conditions=$4,
			immunization_notes=$5, notes=$6, updated_at=NOW()
		WHERE patient_id = $1`,
		profile.PatientID, profile.BloodType, profile.Allergies, profile.ChronicConditions,
		profile.ImmunizationNotes, profile.Notes)
	return err
}
