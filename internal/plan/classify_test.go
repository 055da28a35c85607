package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		phrase string
		kind   Kind
		field  string
	}{
		{"get users by id", KindGetByID, ""},
		{"get users by email", KindGetByField, "email"},
		{"get users", KindGetAll, ""},
		{"get all", KindGetAll, ""},
		{"list widgets", KindGetAll, ""},
		{"fetch orders by customer id", KindGetByField, "customer_id"},
		{"create", KindCreate, ""},
		{"add a new user", KindCreate, ""},
		{"update", KindUpdate, ""},
		{"update by id", KindUpdate, ""},
		{"edit profile", KindUpdate, ""},
		{"delete", KindDelete, ""},
		{"remove by id", KindDelete, ""},
		{"find products by category", KindGetByField, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			op, ok := Classify(tt.phrase)
			require.True(t, ok)
			assert.Equal(t, tt.kind, op.Kind)
			assert.Equal(t, tt.field, op.Field)
		})
	}

	t.Run("unknown phrase classifies to nothing", func(t *testing.T) {
		_, ok := Classify("synchronize with upstream")
		assert.False(t, ok)
	})

	t.Run("by must be a standalone word", func(t *testing.T) {
		op, ok := Classify("get nearby stores")
		require.True(t, ok)
		assert.Equal(t, KindGetAll, op.Kind)
	})
}
