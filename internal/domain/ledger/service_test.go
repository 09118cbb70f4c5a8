package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/listing"
)

type mockRepo struct {
	quantity  map[id.ID]int64
	sold      map[id.ID]int64
	entries   []*Entry
	appendErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{quantity: make(map[id.ID]int64), sold: make(map[id.ID]int64)}
}

func (m *mockRepo) AdjustQuantity(ctx context.Context, productID id.ID, delta int64) (int64, int64, error) {
	if _, ok := m.quantity[productID]; !ok {
		return 0, 0, apperror.NewNotFound("product", productID)
	}
	prev := m.quantity[productID]
	m.quantity[productID] = prev + delta
	return prev, prev + delta, nil
}

func (m *mockRepo) AdjustTrade(ctx context.Context, productID id.ID, delta int64) (int64, int64, error) {
	prev, updated, err := m.AdjustQuantity(ctx, productID, delta)
	if err != nil {
		return 0, 0, err
	}
	m.sold[productID] -= delta
	return prev, updated, nil
}

func (m *mockRepo) AppendEntry(ctx context.Context, e *Entry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) List(ctx context.Context, q listing.Query) (listing.Result[*Entry], error) {
	return listing.Result[*Entry]{}, nil
}

func snapshot(productID id.ID) ProductSnapshot {
	return ProductSnapshot{
		ID:            productID,
		Name:          "Keyboard",
		SalePrice:     types.MustMoney("1500"),
		PurchasePrice: types.MustMoney("1100"),
	}
}

func TestAdjustAppendsMatchingEntry(t *testing.T) {
	productID := id.New()
	repo := newMockRepo()
	repo.quantity[productID] = 10
	svc := NewService(repo)

	adj, err := svc.Adjust(context.Background(), snapshot(productID), -3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), adj.PreviousQuantity)
	assert.Equal(t, int64(7), adj.UpdatedQuantity)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, int64(10), entry.PreviousQuantity)
	assert.Equal(t, int64(7), entry.UpdatedQuantity)
	assert.Equal(t, "Keyboard", entry.Product.Name)
	assert.NotEmpty(t, entry.CreatedAtString)
	assert.GreaterOrEqual(t, entry.Month, 1)
	assert.LessOrEqual(t, entry.Month, 12)
}

// A sale followed by an equal return restores the starting quantity, and
// both movements leave a trail entry.
func TestAdjustInvertibility(t *testing.T) {
	productID := id.New()
	repo := newMockRepo()
	repo.quantity[productID] = 10
	svc := NewService(repo)

	_, err := svc.Trade(context.Background(), snapshot(productID), -3)
	require.NoError(t, err)
	adj, err := svc.Trade(context.Background(), snapshot(productID), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(10), adj.UpdatedQuantity)
	assert.Equal(t, int64(0), repo.sold[productID])
	assert.Len(t, repo.entries, 2)
}

func TestAdjustAllowsNegativeStock(t *testing.T) {
	productID := id.New()
	repo := newMockRepo()
	repo.quantity[productID] = 2
	svc := NewService(repo)

	adj, err := svc.Trade(context.Background(), snapshot(productID), -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), adj.UpdatedQuantity)
}

func TestAdjustValidation(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Adjust(ctx, ProductSnapshot{}, 1)
	require.Error(t, err)

	_, err = svc.Adjust(ctx, snapshot(id.New()), 0)
	require.Error(t, err)
	assert.Empty(t, repo.entries)
}

func TestAdjustUnknownProduct(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Adjust(context.Background(), snapshot(id.New()), -1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAdjustTrailFailureIsPartialApplication(t *testing.T) {
	productID := id.New()
	repo := newMockRepo()
	repo.quantity[productID] = 10
	repo.appendErr = errors.New("disk full")
	svc := NewService(repo)

	_, err := svc.Adjust(context.Background(), snapshot(productID), -1)
	require.Error(t, err)
	assert.True(t, apperror.IsPartialApplication(err))
}

func TestRecordInitial(t *testing.T) {
	productID := id.New()
	repo := newMockRepo()
	svc := NewService(repo)

	err := svc.RecordInitial(context.Background(), snapshot(productID), 25)
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, int64(0), repo.entries[0].PreviousQuantity)
	assert.Equal(t, int64(25), repo.entries[0].UpdatedQuantity)
}
