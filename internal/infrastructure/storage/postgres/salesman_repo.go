package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/catalogs/salesman"
)

// Compile-time check.
var _ salesman.Repository = (*SalesmanRepo)(nil)

var salesmanColumns = ExtractDBColumns[salesman.Salesman]()

// SalesmanRepo is the PostgreSQL salesman repository.
type SalesmanRepo struct {
	txManager *TxManager
}

// NewSalesmanRepo creates a salesman repository.
func NewSalesmanRepo(txManager *TxManager) *SalesmanRepo {
	return &SalesmanRepo{txManager: txManager}
}

// Create inserts a new salesman.
func (r *SalesmanRepo) Create(ctx context.Context, s *salesman.Salesman) error {
	sql, args, err := Builder().
		Insert("salesmen").
		SetMap(StructToMap(s)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("salesman", "username", s.Username)
		}
		return fmt.Errorf("insert salesman: %w", err)
	}
	return nil
}

// GetByID retrieves a salesman by ID.
func (r *SalesmanRepo) GetByID(ctx context.Context, salesmanID id.ID) (*salesman.Salesman, error) {
	sql, args, err := Builder().
		Select(salesmanColumns...).
		From("salesmen").
		Where(squirrel.Eq{"id": salesmanID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s salesman.Salesman
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("salesman", salesmanID)
		}
		return nil, fmt.Errorf("get salesman: %w", err)
	}
	return &s, nil
}

// GetByUsername retrieves a salesman by login name for the identity flow.
func (r *SalesmanRepo) GetByUsername(ctx context.Context, username string) (*salesman.Salesman, error) {
	sql, args, err := Builder().
		Select(salesmanColumns...).
		From("salesmen").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s salesman.Salesman
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("salesman", username)
		}
		return nil, fmt.Errorf("get salesman: %w", err)
	}
	return &s, nil
}
