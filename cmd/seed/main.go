// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/catalogs/customer"
	"storeroom/internal/domain/catalogs/product"
	"storeroom/internal/domain/catalogs/salesman"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/infrastructure/storage/postgres"
	"storeroom/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdmin(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedAdmin creates the initial admin account. Existing accounts are left
// untouched.
func seedAdmin(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	repo := postgres.NewSalesmanRepo(txManager)
	admin := &salesman.Salesman{
		ID:           id.New(),
		Name:         envOr("ADMIN_NAME", "Administrator"),
		Username:     username,
		Phone:        os.Getenv("ADMIN_PHONE"),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := repo.Create(ctx, admin); err != nil {
		if isDuplicate(err) {
			log.Infow("admin already exists, skipping", "username", username)
			return nil
		}
		return err
	}

	log.Infow("admin created", "username", username, "id", admin.ID)
	return nil
}

// seedDemoData creates a small demo catalog so the API is usable right away.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	allocator := postgres.NewSequenceAllocator(txManager)
	ledgerService := ledger.NewService(postgres.NewLedgerRepo(txManager))
	productService := product.NewService(postgres.NewProductRepo(txManager), allocator, ledgerService, txManager)
	customerService := customer.NewService(postgres.NewCustomerRepo(txManager))

	demoProducts := []*product.Product{
		{
			Name:          "Wireless Mouse",
			SKU:           "WM-100",
			Quantity:      50,
			MinQuantity:   5,
			PurchasePrice: decimal.NewFromInt(450),
			SalePrice:     decimal.NewFromInt(650),
			Status:        true,
		},
		{
			Name:          "Mechanical Keyboard",
			SKU:           "MK-200",
			Quantity:      30,
			MinQuantity:   3,
			PurchasePrice: decimal.NewFromInt(2200),
			SalePrice:     decimal.NewFromInt(3200),
			Status:        true,
		},
		{
			Name:          "USB-C Cable",
			SKU:           "UC-050",
			Quantity:      200,
			MinQuantity:   20,
			PurchasePrice: decimal.NewFromInt(80),
			SalePrice:     decimal.NewFromInt(150),
			Status:        true,
		},
	}
	for _, p := range demoProducts {
		if err := productService.Create(ctx, p); err != nil {
			if isDuplicate(err) {
				continue
			}
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		log.Infow("demo product created", "name", p.Name, "product_id", p.ProductID)
	}

	demoCustomers := []*customer.Customer{
		customer.New("Walk-in Counter", "01700000000", "", "Dhaka"),
		customer.New("Rahim Traders", "01800000000", "rahim@example.com", "Chattogram"),
	}
	for _, c := range demoCustomers {
		if err := customerService.Create(ctx, c); err != nil {
			if isDuplicate(err) {
				continue
			}
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
		log.Infow("demo customer created", "name", c.Name, "phone", c.Phone)
	}

	return nil
}

func isDuplicate(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeDuplicate
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
