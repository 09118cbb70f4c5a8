package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeroom/internal/core/apperror"
	appcontext "storeroom/internal/core/context"
	"storeroom/internal/core/id"
	"storeroom/internal/core/sequence"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/catalogs/customer"
	"storeroom/internal/domain/catalogs/salesman"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/listing"
)

type mockTxManager struct{}

func (mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockOrderRepo struct {
	created []*Order
	failOn  error
}

func (m *mockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.failOn != nil {
		return m.failOn
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	for _, o := range m.created {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", orderID)
}

func (m *mockOrderRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Order, error) {
	for _, o := range m.created {
		if o.InvoiceNo == invoiceNo {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", invoiceNo)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	for _, o := range m.created {
		if o.ID == orderID {
			o.Status = status
			return nil
		}
	}
	return apperror.NewNotFound("order", orderID)
}

func (m *mockOrderRepo) List(ctx context.Context, kind Kind, q listing.Query) (listing.Result[*Order], error) {
	return listing.Result[*Order]{}, nil
}

type mockResolver struct {
	resolved *customer.Customer
	calls    int
	err      error
}

func (m *mockResolver) Resolve(ctx context.Context, phone string, candidate customer.Candidate) (*customer.Customer, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if phone == "" {
		return nil, nil
	}
	return m.resolved, nil
}

type adjustCall struct {
	productID id.ID
	delta     int64
}

type mockStock struct {
	calls   []adjustCall
	failOn  map[id.ID]error
	balance map[id.ID]int64
}

func (m *mockStock) Trade(ctx context.Context, snap ledger.ProductSnapshot, delta int64) (ledger.Adjustment, error) {
	if err, ok := m.failOn[snap.ID]; ok {
		return ledger.Adjustment{}, err
	}
	m.calls = append(m.calls, adjustCall{productID: snap.ID, delta: delta})
	if m.balance == nil {
		m.balance = make(map[id.ID]int64)
	}
	prev := m.balance[snap.ID]
	m.balance[snap.ID] = prev + delta
	return ledger.Adjustment{ProductID: snap.ID, PreviousQuantity: prev, UpdatedQuantity: prev + delta}, nil
}

type mockSalesmen struct {
	rec *salesman.Salesman
}

func (m *mockSalesmen) Create(ctx context.Context, s *salesman.Salesman) error { return nil }

func (m *mockSalesmen) GetByID(ctx context.Context, salesmanID id.ID) (*salesman.Salesman, error) {
	if m.rec != nil && m.rec.ID == salesmanID {
		return m.rec, nil
	}
	return nil, apperror.NewNotFound("salesman", salesmanID)
}

func identityCtx(adminID id.ID, name string) context.Context {
	return appcontext.WithIdentity(context.Background(), &appcontext.Identity{
		AdminID: adminID.String(),
		Name:    name,
	})
}

func placeInput(productID id.ID, qty int64) PlaceInput {
	return PlaceInput{
		Kind:     KindSales,
		SoldDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Customer: CustomerInput{Name: "Rahim", Phone: "01700000001", Address: "Dhaka"},
		Products: []LineItem{{
			ProductID:     productID,
			Name:          "Keyboard",
			SoldQuantity:  qty,
			SalePrice:     types.MustMoney("1500"),
			PurchasePrice: types.MustMoney("1100"),
		}},
		SubTotal: types.MustMoney("4500"),
		Total:    types.MustMoney("4500"),
	}
}

func TestPlaceDecrementsStockAndFreezesSnapshots(t *testing.T) {
	productID := id.New()
	adminID := id.New()
	cust := customer.New("Rahim", "01700000001", "", "Dhaka")

	repo := &mockOrderRepo{}
	resolver := &mockResolver{resolved: cust}
	stock := &mockStock{balance: map[id.ID]int64{productID: 10}}
	svc := NewService(repo, &sequence.MockAllocator{}, resolver, stock, &mockSalesmen{}, mockTxManager{}, nil)

	res, err := svc.Place(identityCtx(adminID, "Karim"), placeInput(productID, 3))
	require.NoError(t, err)
	assert.Equal(t, "0001", res.InvoiceNo)

	require.Len(t, stock.calls, 1)
	assert.Equal(t, int64(-3), stock.calls[0].delta)
	assert.Equal(t, int64(7), stock.balance[productID])

	require.Len(t, repo.created, 1)
	order := repo.created[0]
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "2025-03-14", order.SoldDateString)
	assert.Equal(t, 3, order.Month)
	assert.Equal(t, 2025, order.Year)
	require.NotNil(t, order.Customer)
	assert.Equal(t, cust.ID, order.Customer.ID)
	assert.Equal(t, adminID, order.Salesman.ID)
	assert.Equal(t, "Karim", order.Salesman.Name)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "Keyboard", order.Products[0].Name)
	assert.True(t, order.Products[0].SalePrice.Equal(types.MustMoney("1500")))
}

func TestPlaceAllocatorFailureAbortsBeforeMutation(t *testing.T) {
	productID := id.New()
	repo := &mockOrderRepo{}
	resolver := &mockResolver{}
	stock := &mockStock{}
	alloc := &sequence.MockAllocator{
		NextFunc: func(ctx context.Context, series string) (int64, error) {
			return 0, errors.New("counter store down")
		},
	}
	svc := NewService(repo, alloc, resolver, stock, &mockSalesmen{}, mockTxManager{}, nil)

	_, err := svc.Place(identityCtx(id.New(), "Karim"), placeInput(productID, 3))
	require.Error(t, err)
	assert.True(t, apperror.IsSequenceExhausted(err))
	assert.Zero(t, resolver.calls)
	assert.Empty(t, stock.calls)
	assert.Empty(t, repo.created)
}

func TestPlaceSequentialInvoiceNumbers(t *testing.T) {
	productID := id.New()
	repo := &mockOrderRepo{}
	svc := NewService(repo, &sequence.MockAllocator{}, &mockResolver{}, &mockStock{}, &mockSalesmen{}, mockTxManager{}, nil)
	ctx := identityCtx(id.New(), "Karim")

	first, err := svc.Place(ctx, placeInput(productID, 1))
	require.NoError(t, err)
	second, err := svc.Place(ctx, placeInput(productID, 1))
	require.NoError(t, err)

	assert.Equal(t, "0001", first.InvoiceNo)
	assert.Equal(t, "0002", second.InvoiceNo)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPlaceAnonymousOrderHasNoCustomer(t *testing.T) {
	productID := id.New()
	repo := &mockOrderRepo{}
	svc := NewService(repo, &sequence.MockAllocator{}, &mockResolver{}, &mockStock{}, &mockSalesmen{}, mockTxManager{}, nil)

	in := placeInput(productID, 1)
	in.Customer = CustomerInput{}
	_, err := svc.Place(identityCtx(id.New(), "Karim"), in)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].Customer)
}

func TestPlaceRejectsInvalidInput(t *testing.T) {
	svc := NewService(&mockOrderRepo{}, &sequence.MockAllocator{}, &mockResolver{}, &mockStock{}, &mockSalesmen{}, mockTxManager{}, nil)
	ctx := identityCtx(id.New(), "Karim")

	in := placeInput(id.New(), 0)
	_, err := svc.Place(ctx, in)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	in = placeInput(id.New(), 1)
	in.Products = nil
	_, err = svc.Place(ctx, in)
	require.Error(t, err)

	in = placeInput(id.New(), 1)
	in.Kind = Kind("wholesale")
	_, err = svc.Place(ctx, in)
	require.Error(t, err)
}

func TestPlaceRequiresIdentity(t *testing.T) {
	stock := &mockStock{}
	svc := NewService(&mockOrderRepo{}, &sequence.MockAllocator{}, &mockResolver{}, stock, &mockSalesmen{}, mockTxManager{}, nil)

	_, err := svc.Place(context.Background(), placeInput(id.New(), 1))
	require.Error(t, err)
	assert.Empty(t, stock.calls)
}

func TestPlaceStockFailureRollsIntoError(t *testing.T) {
	productID := id.New()
	repo := &mockOrderRepo{}
	stock := &mockStock{failOn: map[id.ID]error{productID: errors.New("no row")}}
	svc := NewService(repo, &sequence.MockAllocator{}, &mockResolver{}, stock, &mockSalesmen{}, mockTxManager{}, nil)

	_, err := svc.Place(identityCtx(id.New(), "Karim"), placeInput(productID, 2))
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestUpdateStatusRejectsReturned(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(repo, &sequence.MockAllocator{}, &mockResolver{}, &mockStock{}, &mockSalesmen{}, mockTxManager{}, nil)

	err := svc.UpdateStatus(context.Background(), id.New(), StatusReturned)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	err = svc.UpdateStatus(context.Background(), id.New(), Status("Lost"))
	require.Error(t, err)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	productID := id.New()
	repo := &mockOrderRepo{}
	svc := NewService(repo, &sequence.MockAllocator{}, &mockResolver{}, &mockStock{}, &mockSalesmen{}, mockTxManager{}, nil)

	res, err := svc.Place(identityCtx(id.New(), "Karim"), placeInput(productID, 1))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), res.ID, StatusCompleted))
	got, err := svc.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}
