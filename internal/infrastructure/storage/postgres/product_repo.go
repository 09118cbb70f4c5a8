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
	"storeroom/internal/domain/catalogs/product"
	"storeroom/internal/domain/listing"
)

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

var productColumns = ExtractDBColumns[product.Product]()

var productSpec = listing.Spec{
	Table:        "products",
	Columns:      productColumns,
	SearchFields: []string{"name", "product_id", "sku", "model"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"totalQuantity":      "SUM(quantity)",
		"sumPurchasePrice":   "SUM(purchase_price)",
		"sumSalePrice":       "SUM(sale_price)",
		"totalPurchasePrice": "SUM(purchase_price * quantity)",
		"totalSalePrice":     "SUM(sale_price * quantity)",
	},
}

// ProductRepo is the PostgreSQL product repository.
type ProductRepo struct {
	txManager *TxManager
}

// NewProductRepo creates a product repository.
func NewProductRepo(txManager *TxManager) *ProductRepo {
	return &ProductRepo{txManager: txManager}
}

// Create inserts a new product. A code collision surfaces as Duplicate; it
// indicates a counter store inconsistency rather than normal contention.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	sql, args, err := Builder().
		Insert("products").
		SetMap(StructToMap(p)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("product", "product_id", p.ProductID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"id": productID}, productID.String())
}

// GetByCode retrieves a product by its sequence-assigned code.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"product_id": code}, code)
}

func (r *ProductRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*product.Product, error) {
	sql, args, err := Builder().
		Select(productColumns...).
		From("products").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update modifies descriptive fields and prices. Quantity, the sold counter
// and the assigned code never move through this path.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	data := StructToMap(p)
	delete(data, "id")
	delete(data, "product_id")
	delete(data, "quantity")
	delete(data, "sold_quantity")
	delete(data, "created_at")
	delete(data, "created_at_string")

	sql, args, err := Builder().
		Update("products").
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// Delete removes a product. Ledger entries keep their snapshots, so history
// survives the removal.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	sql, args, err := Builder().
		Delete("products").
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

// List retrieves products with the shared query plan, including the stock
// valuation figures over the filtered set.
func (r *ProductRepo) List(ctx context.Context, q listing.Query) (listing.Result[*product.Product], error) {
	return List[*product.Product](ctx, r.txManager, productSpec, q)
}
