package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type PassengerRepository struct {
	DB intdb.DBTX
}

func (r PassengerRepository) Insert(ctx context.Context, p models.PassengerDetails) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO passengers (name, age, email, phone) VALUES (?, ?, ?, ?)`,
		p.Name, p.Age, p.Email, p.Phone)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PassengerRepository) GetByID(ctx context.Context, id int64) (models.PassengerDetails, error) {
	var p models.PassengerDetails
	err := r.DB.QueryRowContext(ctx, `SELECT name, age, email, phone FROM passengers WHERE id=?`, id).
		Scan(&p.Name, &p.Age, &p.Email, &p.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "passenger", Err: err}
	}
	return p, err
}
