package inventory

import (
	"context"
	"fmt"

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

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const medicationCols = `id, name, generic_name, form, strength, unit, stock_quantity,
	reorder_threshold, created_at, updated_at`

func (r *medicationRepoPG) scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.Name, &m.GenericName, &m.Form, &m.Strength, &m.Unit,
		&m.StockQuantity, &m.ReorderThreshold, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication (id, name, generic_name, form, strength, unit,
			stock_quantity, reorder_threshold)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.ID, m.Name, m.GenericName, m.Form, m.Strength, m.Unit,
		m.StockQuantity, m.ReorderThreshold)
	return err
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return r.scanMedication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicationCols+` FROM medication WHERE id = $1`, id))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	// Stock quantity is excluded on purpose: it only moves through
	// IncrementStock and DecrementStock.
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET name=$2, generic_name=$3, form=$4, strength=$5, unit=$6,
			reorder_threshold=$7, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.GenericName, m.Form, m.Strength, m.Unit, m.ReorderThreshold)
	return err
}

func (r *medicationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (r *medicationRepoPG) List(ctx context.Context, query string, limit, offset int) ([]*Medication, int, error) {
	q := r.conn(ctx)
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if query != "" {
		filter := "%" + query + "%"
		if err = q.QueryRow(ctx,
			`SELECT COUNT(*) FROM medication WHERE name ILIKE $1 OR generic_name ILIKE $1`,
			filter).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+medicationCols+` FROM medication
			WHERE name ILIKE $1 OR generic_name ILIKE $1
			ORDER BY name LIMIT $2 OFFSET $3`,
			filter, limit, offset)
	} else {
		if err = q.QueryRow(ctx, `SELECT COUNT(*) FROM medication`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+medicationCols+` FROM medication ORDER BY name LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *medicationRepoPG) ListLowStock(ctx context.Context) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medicationCols+` FROM medication
		WHERE stock_quantity <= reorder_threshold ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *medicationRepoPG) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET stock_quantity = stock_quantity + $2, updated_at=NOW()
		WHERE id = $1`, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("medication not found")
	}
	return nil
}

// DecrementStock refuses to take stock below zero. The guard in the WHERE
// clause makes the check-and-decrement atomic.
func (r *medicationRepoPG) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET stock_quantity = stock_quantity - $2, updated_at=NOW()
		WHERE id = $1 AND stock_quantity >= $2`, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.conn(ctx).QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM medication WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("medication not found")
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *medicationRepoPG) AddReceipt(ctx context.Context, receipt *StockReceipt) error {
	receipt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO stock_receipt (id, medication_id, quantity, batch_number, expiry_date,
			received_by, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		receipt.ID, receipt.MedicationID, receipt.Quantity, receipt.BatchNumber,
		receipt.ExpiryDate, receipt.ReceivedBy, receipt.Note)
	return err
}

func (r *medicationRepoPG) GetReceipts(ctx context.Context, medicationID uuid.UUID) ([]*StockReceipt, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, medication_id, quantity, batch_number, expiry_date, received_by, note, created_at
		FROM stock_receipt WHERE medication_id = $1 ORDER BY created_at DESC`, medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StockReceipt
	for rows.Next() {
		var sr StockReceipt
		if err := rows.Scan(&sr.ID, &sr.MedicationID, &sr.Quantity, &sr.BatchNumber,
			&sr.ExpiryDate, &sr.ReceivedBy, &sr.Note, &sr.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &sr)
	}
	return items, rows.Err()
}

// =========== Dispense Repository ===========

type dispenseRepoPG struct{ pool *pgxpool.Pool }

func NewDispenseRepoPG(pool *pgxpool.Pool) DispenseRepository {
	return &dispenseRepoPG{pool: pool}
}

func (r *dispenseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const dispenseCols = `id, medication_id, patient_id, case_id, quantity,
	dosage_instructions, dispensed_by, created_at`

func (r *dispenseRepoPG) Create(ctx context.Context, d *Dispense) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO dispense (id, medication_id, patient_id, case_id, quantity,
			dosage_instructions, dispensed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.MedicationID, d.PatientID, d.CaseID, d.Quantity,
		d.DosageInstructions, d.DispensedBy)
	return err
}

func (r *dispenseRepoPG) List(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Dispense, int, error) {
	q := r.conn(ctx)
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if patientID != uuid.Nil {
		if err = q.QueryRow(ctx,
			`SELECT COUNT(*) FROM dispense WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+dispenseCols+` FROM dispense WHERE patient_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	} else {
		if err = q.QueryRow(ctx, `SELECT COUNT(*) FROM dispense`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+dispenseCols+` FROM dispense ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Dispense
	for rows.Next() {
		var d Dispense
		if err := rows.Scan(&d.ID, &d.MedicationID, &d.PatientID, &d.CaseID, &d.Quantity,
			&d.DosageInstructions, &d.DispensedBy, &d.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &d)
	}
	return items, total, rows.Err()
}
