package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
)

type mockRepo struct {
	byPhone map[string]*Customer
	creates int
}

func newMockRepo() *mockRepo {
	return &mockRepo{byPhone: make(map[string]*Customer)}
}

func (m *mockRepo) Create(ctx context.Context, c *Customer) error {
	if _, ok := m.byPhone[c.Phone]; ok {
		return apperror.NewDuplicate("customer", "phone", c.Phone)
	}
	m.byPhone[c.Phone] = c
	m.creates++
	return nil
}

func (m *mockRepo) CreateIfAbsent(ctx context.Context, c *Customer) (*Customer, error) {
	if existing, ok := m.byPhone[c.Phone]; ok {
		return existing, nil
	}
	m.byPhone[c.Phone] = c
	m.creates++
	return c, nil
}

func (m *mockRepo) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	for _, c := range m.byPhone {
		if c.ID == customerID {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (m *mockRepo) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	if c, ok := m.byPhone[phone]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("customer", phone)
}

func (m *mockRepo) Update(ctx context.Context, c *Customer) error { return nil }

func (m *mockRepo) Delete(ctx context.Context, customerID id.ID) error { return nil }

func (m *mockRepo) List(ctx context.Context, q listing.Query) (listing.Result[*Customer], error) {
	return listing.Result[*Customer]{}, nil
}

func TestResolveEmptyPhoneIsAnonymous(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.Resolve(context.Background(), "", Candidate{Name: "Walk-in"})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestResolveReturnsStoredRecordUnchanged(t *testing.T) {
	repo := newMockRepo()
	stored := New("Rahim", "01700000001", "", "Dhaka")
	repo.byPhone[stored.Phone] = stored
	svc := NewService(repo)

	// Candidate fields differ from the stored record; they must not win.
	c, err := svc.Resolve(context.Background(), "01700000001", Candidate{
		Name:    "Different Name",
		Phone:   "01700000001",
		Address: "Chittagong",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, c.ID)
	assert.Equal(t, "Rahim", c.Name)
	assert.Equal(t, "Dhaka", c.Address)
	assert.Zero(t, repo.creates)
}

func TestResolveCreatesWhenAbsent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	c, err := svc.Resolve(context.Background(), "01700000002", Candidate{
		Name:    "Karim",
		Phone:   "01700000002",
		Address: "Sylhet",
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Karim", c.Name)
	assert.False(t, id.IsNil(c.ID))
	assert.Equal(t, 1, repo.creates)

	// A second resolve with the same phone reuses the record.
	again, err := svc.Resolve(context.Background(), "01700000002", Candidate{Name: "Someone Else"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Customer{Phone: "017"})
	require.Error(t, err)

	err = svc.Create(context.Background(), &Customer{Name: "Rahim"})
	require.Error(t, err)

	err = svc.Create(context.Background(), New("Rahim", "01700000001", "", ""))
	require.NoError(t, err)
}
