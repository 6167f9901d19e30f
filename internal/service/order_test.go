package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smoothies/internal/model"
)

func mustSelection(t *testing.T, names ...string) model.Selection {
	t.Helper()
	sel, err := model.NewSelection(names...)
	require.NoError(t, err)
	return sel
}

func TestSubmitWritesExactlyOneRow(t *testing.T) {
	db := newTestDB(t, exampleOptions()...)
	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())

	order, err := orders.Submit(context.Background(), mustSelection(t, "Apple", "Guava"), "Sam")
	require.NoError(t, err)
	assert.Positive(t, order.ID)
	assert.Equal(t, "Apple, Guava", order.Ingredients)
	assert.Equal(t, "Sam", order.NameOnOrder)

	assert.Equal(t, 1, countOrders(t, db))

	var ingredients, name string
	require.NoError(t, db.QueryRow(`SELECT ingredients, name_on_order FROM orders`).Scan(&ingredients, &name))
	assert.Equal(t, "Apple, Guava", ingredients)
	assert.Equal(t, "Sam", name)
}

func TestSubmitNamePolicy(t *testing.T) {
	t.Run("strict blocks empty name before writing", func(t *testing.T) {
		db := newTestDB(t)
		orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())

		_, err := orders.Submit(context.Background(), mustSelection(t, "Apple"), "   ")
		require.ErrorIs(t, err, ErrEmptyName)
		assert.True(t, IsPrecondition(err))
		assert.Equal(t, 0, countOrders(t, db))
	})

	t.Run("lenient writes empty name", func(t *testing.T) {
		db := newTestDB(t)
		orders := NewOrderService(db, model.NamePolicyLenient, nopLogger())

		_, err := orders.Submit(context.Background(), mustSelection(t, "Apple"), "")
		require.NoError(t, err)
		assert.Equal(t, 1, countOrders(t, db))

		var name string
		require.NoError(t, db.QueryRow(`SELECT name_on_order FROM orders`).Scan(&name))
		assert.Equal(t, "", name)
	})
}

func TestSubmitRequiresSelection(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, model.NamePolicyLenient, nopLogger())

	_, err := orders.Submit(context.Background(), model.Selection{}, "Sam")
	require.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, 0, countOrders(t, db))
}

func TestSubmitBindsValues(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())

	name := "Robert'); DROP TABLE orders;--"
	_, err := orders.Submit(context.Background(), mustSelection(t, "Apple"), name)
	require.NoError(t, err)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT name_on_order FROM orders`).Scan(&stored))
	assert.Equal(t, name, stored)
}

func TestSubmitTwiceWritesTwoRows(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())
	sel := mustSelection(t, "Kiwi")

	first, err := orders.Submit(context.Background(), sel, "Sam")
	require.NoError(t, err)
	second, err := orders.Submit(context.Background(), sel, "Sam")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, countOrders(t, db))
}

func TestSubmitFromIndependentSessions(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())
	sel := mustSelection(t, "Apple")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, name := range []string{"Sam", "Alex"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := orders.Submit(context.Background(), sel, name)
			errs <- err
		}(name)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 2, countOrders(t, db))
}

func TestSubmitWriteFailure(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`DROP TABLE orders`)
	require.NoError(t, err)

	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())
	_, err = orders.Submit(context.Background(), mustSelection(t, "Apple"), "Sam")
	require.ErrorIs(t, err, ErrSubmissionFailed)
	assert.False(t, IsPrecondition(err))
}

func TestListAndMarkFilled(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, model.NamePolicyStrict, nopLogger())
	ctx := context.Background()

	first, err := orders.Submit(ctx, mustSelection(t, "Apple"), "Sam")
	require.NoError(t, err)
	_, err = orders.Submit(ctx, mustSelection(t, "Kiwi", "Guava"), "Alex")
	require.NoError(t, err)

	all, err := orders.List(ctx, false, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Kiwi, Guava", all[0].Ingredients)
	assert.Equal(t, "Alex", all[0].NameOnOrder)
	assert.False(t, all[0].OrderedAt.IsZero())

	require.NoError(t, orders.MarkFilled(ctx, first.ID))

	pending, err := orders.List(ctx, true, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Alex", pending[0].NameOnOrder)

	assert.ErrorIs(t, orders.MarkFilled(ctx, 9999), ErrOrderNotFound)
}
