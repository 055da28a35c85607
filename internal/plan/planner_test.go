package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlanOperations(t *testing.T) {
	t.Run("crud phrases plan five ordered steps", func(t *testing.T) {
		phrases := []string{"get all", "get by id", "create", "update", "delete"}

		steps := PlanOperations("widgets", phrases, zap.NewNop())

		require.Len(t, steps, 5)
		assert.Equal(t, []Kind{KindGetAll, KindGetByID, KindCreate, KindUpdate, KindDelete},
			kinds(steps))
		assert.True(t, steps[0].First)
		for _, s := range steps[1:] {
			assert.False(t, s.First)
		}
	})

	t.Run("unclassifiable phrase is dropped, planning continues", func(t *testing.T) {
		phrases := []string{"frobnicate", "get all", "delete"}

		steps := PlanOperations("widgets", phrases, zap.NewNop())

		require.Len(t, steps, 2)
		assert.True(t, steps[0].First)
		assert.Equal(t, KindGetAll, steps[0].Kind)
	})

	t.Run("by-field lookup carries the field", func(t *testing.T) {
		steps := PlanOperations("users", []string{"get by email"}, zap.NewNop())

		require.Len(t, steps, 1)
		assert.Equal(t, KindGetByField, steps[0].Kind)
		assert.Equal(t, "email", steps[0].Field)
		assert.Equal(t, "get users by email", steps[0].DisplayName)
	})
}

func TestPlanQueries(t *testing.T) {
	t.Run("one foreign key yields six join-aware steps in order", func(t *testing.T) {
		tableDef := `CREATE TABLE widgets (
			id INTEGER PRIMARY KEY,
			name TEXT,
			category_id INTEGER REFERENCES categories(id)
		);`

		steps := PlanQueries("widgets", tableDef)

		require.Len(t, steps, 6)
		assert.Equal(t, []string{
			"javascript/express/queries/get-with-joins",
			"javascript/express/queries/get-by-id-with-join",
			"javascript/express/queries/get-by-field-with-join",
			"javascript/express/queries/create",
			"javascript/express/queries/update",
			"javascript/express/queries/delete",
		}, patternKeys(steps))
		assert.Equal(t, "category_id", steps[2].Field)
		assert.True(t, steps[0].First)
	})

	t.Run("no foreign keys yields plain variants", func(t *testing.T) {
		tableDef := "CREATE TABLE categories (id INTEGER PRIMARY KEY, name TEXT);"

		steps := PlanQueries("categories", tableDef)

		require.Len(t, steps, 5)
		assert.Equal(t, []string{
			"javascript/express/queries/get-all",
			"javascript/express/queries/get-by-id",
			"javascript/express/queries/create",
			"javascript/express/queries/update",
			"javascript/express/queries/delete",
		}, patternKeys(steps))
	})

	t.Run("two foreign keys yield one by-field step each", func(t *testing.T) {
		tableDef := `CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			user_id INTEGER REFERENCES users(id),
			product_id INTEGER REFERENCES products(id)
		);`

		steps := PlanQueries("orders", tableDef)

		require.Len(t, steps, 7)
		assert.Equal(t, "user_id", steps[2].Field)
		assert.Equal(t, "product_id", steps[3].Field)
	})
}

func kinds(steps []Step) []Kind {
	out := make([]Kind, len(steps))
	for i, s := range steps {
		out[i] = s.Kind
	}
	return out
}

func patternKeys(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.PatternKey
	}
	return out
}
