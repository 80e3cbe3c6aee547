package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/jask/glossview/internal/database"
)

var (
	ErrNotFound  = errors.New("term not found")
	ErrDuplicate = errors.New("term already exists")
)

// TermRepo handles glossary terms.
type TermRepo struct {
	db *sql.DB
}

func NewTermRepo(db *sql.DB) *TermRepo { return &TermRepo{db: db} }

// Create inserts t unless a term with the same name exists. The assigned id is returned.
func (r *TermRepo) Create(ctx context.Context, t Term) (Term, error) {
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM glossary WHERE name = ?`, t.Name).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrDuplicate
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO glossary(name, description) VALUES (?, ?)`, t.Name, t.Description)
		if err != nil {
			return mapErr(err)
		}
		t.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return Term{}, err
	}
	return t, nil
}

func (r *TermRepo) List(ctx context.Context) ([]Term, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM glossary ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Term{}
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns nil when no term has id.
func (r *TermRepo) Get(ctx context.Context, id int64) (*Term, error) {
	return r.one(ctx, `SELECT id, name, description FROM glossary WHERE id = ?`, id)
}

func (r *TermRepo) ByName(ctx context.Context, name string) (*Term, error) {
	return r.one(ctx, `SELECT id, name, description FROM glossary WHERE name = ?`, name)
}

func (r *TermRepo) one(ctx context.Context, query string, arg any) (*Term, error) {
	var t Term
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Update overwrites name and description of the term with t.ID.
func (r *TermRepo) Update(ctx context.Context, t Term) error {
	res, err := r.db.ExecContext(ctx, `UPDATE glossary SET name = ?, description = ? WHERE id = ?`, t.Name, t.Description, t.ID)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (r *TermRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM glossary WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}
