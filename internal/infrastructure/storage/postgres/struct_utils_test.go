package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storeroom/internal/core/id"
)

type timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type mockEntity struct {
	timestamps
	ID     id.ID  `db:"id"`
	Phone  string `db:"phone"`
	Name   string `db:"name"`
	Hidden string `db:"-"`
	NoTag  string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	for _, expected := range []string{"created_at", "updated_at", "id", "phone", "name"} {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, 5)
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	e := mockEntity{
		timestamps: timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id.New(),
		Phone:      "01700000001",
		Name:       "Rahim",
		Hidden:     "secret",
		NoTag:      "ignored",
	}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, "01700000001", m["phone"])
	assert.Equal(t, "Rahim", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 5)

	// Pointer receivers resolve to the same map.
	assert.Equal(t, m, StructToMap(&e))
}
