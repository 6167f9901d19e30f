package tui

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smoothies/internal/database"
	"smoothies/internal/model"
	"smoothies/internal/service"
)

type scriptedPrompter struct {
	name    string
	picks   []string
	confirm bool

	offered []string
	max     int
	asked   bool
}

func (p *scriptedPrompter) Input(ctx context.Context, message string) (string, error) {
	return p.name, nil
}

func (p *scriptedPrompter) MultiSelect(ctx context.Context, message string, options []string, max int) ([]string, error) {
	p.offered = options
	p.max = max
	return p.picks, nil
}

func (p *scriptedPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	p.asked = true
	return p.confirm, nil
}

func newFlowFixture(t *testing.T, policy model.NamePolicy, prompt Prompter) (*Flow, *sql.DB, *bytes.Buffer) {
	t.Helper()
	const uri = "sqlite://:memory:"

	db, err := database.NewDB(uri)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db, uri))
	_, err = database.Seed(context.Background(), db, []model.FruitOption{
		{Name: "Apple", SearchKey: "apple"},
		{Name: "Kiwi", SearchKey: "kiwi"},
		{Name: "Guava", SearchKey: ""},
	})
	require.NoError(t, err)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Apple","nutritions":{"calories":52}}`))
	}))
	t.Cleanup(api.Close)

	logger := zap.NewNop()
	out := &bytes.Buffer{}
	flow := NewFlow(
		service.NewCatalogService(db, logger),
		service.NewEnricher(service.NewFruitClient(api.URL, time.Second), logger),
		service.NewOrderService(db, policy, logger),
		prompt, out, logger,
	)
	return flow, db, out
}

func orderCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n))
	return n
}

func TestFlowSubmitsOrder(t *testing.T) {
	prompt := &scriptedPrompter{name: "Sam", picks: []string{"Apple", "Guava"}, confirm: true}
	flow, db, out := newFlowFixture(t, model.NamePolicyStrict, prompt)

	require.NoError(t, flow.Run(context.Background()))

	assert.Equal(t, []string{"Apple", "Guava", "Kiwi"}, prompt.offered)
	assert.Equal(t, model.MaxSelections, prompt.max)
	assert.True(t, prompt.asked)

	text := out.String()
	assert.Contains(t, text, "The name on your Smoothie will be: Sam")
	assert.Contains(t, text, "No search key found for Guava.")
	assert.Contains(t, text, "nutritions.calories")
	assert.Contains(t, text, "Apple, Guava")
	assert.Contains(t, text, "Your Smoothie is ordered, Sam!")

	var ingredients, name string
	require.NoError(t, db.QueryRow(`SELECT ingredients, name_on_order FROM orders`).Scan(&ingredients, &name))
	assert.Equal(t, "Apple, Guava", ingredients)
	assert.Equal(t, "Sam", name)
}

func TestFlowDeclinedConfirmWritesNothing(t *testing.T) {
	prompt := &scriptedPrompter{name: "Sam", picks: []string{"Kiwi"}, confirm: false}
	flow, db, _ := newFlowFixture(t, model.NamePolicyStrict, prompt)

	require.NoError(t, flow.Run(context.Background()))
	assert.Equal(t, 0, orderCount(t, db))
}

func TestFlowStrictPolicyBlocksBeforeConfirm(t *testing.T) {
	prompt := &scriptedPrompter{name: "  ", picks: []string{"Kiwi"}, confirm: true}
	flow, db, out := newFlowFixture(t, model.NamePolicyStrict, prompt)

	require.NoError(t, flow.Run(context.Background()))
	assert.False(t, prompt.asked)
	assert.Contains(t, out.String(), service.ErrEmptyName.Error())
	assert.Equal(t, 0, orderCount(t, db))
}

func TestFlowRejectsTooManyPicks(t *testing.T) {
	prompt := &scriptedPrompter{name: "Sam", picks: []string{"A", "B", "C", "D", "E", "F"}}
	flow, db, _ := newFlowFixture(t, model.NamePolicyStrict, prompt)

	err := flow.Run(context.Background())
	assert.ErrorIs(t, err, model.ErrTooManySelections)
	assert.Equal(t, 0, orderCount(t, db))
}

func TestFlowNoPicks(t *testing.T) {
	prompt := &scriptedPrompter{name: "Sam"}
	flow, db, out := newFlowFixture(t, model.NamePolicyLenient, prompt)

	require.NoError(t, flow.Run(context.Background()))
	assert.Contains(t, out.String(), "No ingredients chosen.")
	assert.Equal(t, 0, orderCount(t, db))
}
