package db

import (
	"context"
	"errors"
	"fmt"

	"driver-auth/internal/auth-service/core/domain/models"
	"driver-auth/internal/auth-service/core/myerrors"
	"driver-auth/internal/auth-service/core/ports"
	"driver-auth/internal/auth-service/core/ports/driven"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type DriverRepo struct {
	db ports.Querier
}

var _ driven.IDriverRepo = (*DriverRepo)(nil)

func NewDriverRepo(db ports.Querier) *DriverRepo {
	return &DriverRepo{
		db: db,
	}
}

func (dr *DriverRepo) Create(ctx context.Context, driver models.Driver) (int64, error) {
	q := `
		INSERT INTO drivers (nama, email, no_hp, password_hash, alamat, kendaraan, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := dr.db.QueryRow(ctx, q,
		driver.Nama,
		driver.Email,
		driver.NoHP,
		driver.PasswordHash,
		driver.Alamat,
		driver.Kendaraan,
		driver.Status,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, myerrors.ErrEmailRegistered
		}
		return 0, fmt.Errorf("failed to insert driver: %w", err)
	}

	return id, nil
}

func (dr *DriverRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM drivers WHERE email = $1)`

	var exists bool
	if err := dr.db.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (dr *DriverRepo) GetByEmail(ctx context.Context, email string) (models.Driver, error) {
	q := `
		SELECT
			d.id,
			d.nama,
			d.email,
			d.no_hp,
			d.password_hash,
			d.alamat,
			d.kendaraan,
			d.status,
			d.created_at
		FROM
			drivers d
		WHERE
			d.email = $1
	`

	var d models.Driver
	err := dr.db.QueryRow(ctx, q, email).Scan(
		&d.ID,
		&d.Nama,
		&d.Email,
		&d.NoHP,
		&d.PasswordHash,
		&d.Alamat,
		&d.Kendaraan,
		&d.Status,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Driver{}, myerrors.ErrDriverNotFound
		}
		return models.Driver{}, fmt.Errorf("failed to get driver by email: %w", err)
	}

	return d, nil
}

func (dr *DriverRepo) GetProfileByID(ctx context.Context, id int64) (models.Profile, error) {
	q := `
		SELECT
			d.id,
			d.nama,
			d.email,
			d.no_hp,
			d.alamat,
			d.kendaraan,
			d.status
		FROM
			drivers d
		WHERE
			d.id = $1
	`

	var p models.Profile
	err := dr.db.QueryRow(ctx, q, id).Scan(
		&p.ID,
		&p.Nama,
		&p.Email,
		&p.NoHP,
		&p.Alamat,
		&p.Kendaraan,
		&p.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, myerrors.ErrDriverNotFound
		}
		return models.Profile{}, fmt.Errorf("failed to get driver profile: %w", err)
	}

	return p, nil
}
