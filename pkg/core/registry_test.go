package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locbot/pkg/core"
)

// MockRepository implements core.Repository in memory.
type MockRepository struct {
	doc      core.Document
	saves    int
	saveErr  error
	pinSaves int
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func (m *MockRepository) Load(ctx context.Context) (core.Document, error) {
	return m.doc, nil
}

func (m *MockRepository) SaveCategory(ctx context.Context, c core.Category) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	for i, existing := range m.doc.Categories {
		if existing.Name == c.Name {
			m.doc.Categories[i] = c
			return nil
		}
	}
	m.doc.Categories = append(m.doc.Categories, c)
	return nil
}

func (m *MockRepository) SavePin(ctx context.Context, p core.PinRecord) error {
	m.pinSaves++
	m.doc.Pin = p
	return nil
}

func newRegistry(t *testing.T, cats ...core.Category) (*core.Registry, *MockRepository) {
	t.Helper()
	repo := &MockRepository{doc: core.Document{Categories: cats}}
	reg := core.NewRegistry(repo, nil)
	require.NoError(t, reg.Load(context.Background()))
	return reg, repo
}

func towns() core.Category {
	return core.Category{Name: "Towns", Entries: []core.Entry{
		{Name: "Spawn", Text: "0 0"},
		{Name: "Market", Text: "100 200"},
	}}
}

func TestRegistry_SetThenFind(t *testing.T) {
	reg, repo := newRegistry(t, towns(), core.Category{Name: "Farms"})
	ctx := context.Background()

	_, err := reg.Set(ctx, "farms", "Iron", "-300 64 20")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)

	e, ok := reg.Find("iron")
	require.True(t, ok)
	assert.Equal(t, core.Entry{Name: "Iron", Text: "-300 64 20"}, e)

	cat, ok := reg.Category("FARMS")
	require.True(t, ok)
	assert.Equal(t, "Farms", cat.Name, "stored casing is preserved")
}

func TestRegistry_SetOverwritesInPlace(t *testing.T) {
	reg, _ := newRegistry(t, towns())

	_, err := reg.Set(context.Background(), "Towns", "spawn", "10 10")
	require.NoError(t, err)

	cat, _ := reg.Category("Towns")
	require.Len(t, cat.Entries, 2)
	assert.Equal(t, core.Entry{Name: "spawn", Text: "10 10"}, cat.Entries[0])
	assert.Equal(t, "Market", cat.Entries[1].Name)
}

func TestRegistry_SetUnknownCategory(t *testing.T) {
	reg, repo := newRegistry(t, towns())

	_, err := reg.Set(context.Background(), "Nope", "X", "1 2")
	assert.ErrorIs(t, err, core.ErrInvalidCategory)
	assert.Zero(t, repo.saves, "no write on rejected set")
}

func TestRegistry_SetPersistFailureKeepsState(t *testing.T) {
	reg, repo := newRegistry(t, towns())
	repo.saveErr = errors.New("disk full")

	_, err := reg.Set(context.Background(), "Towns", "Farm", "1 2")
	require.Error(t, err)

	_, ok := reg.Find("Farm")
	assert.False(t, ok)
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("Removes Only The Named Entry", func(t *testing.T) {
		reg, _ := newRegistry(t, towns())

		removed, err := reg.Remove(context.Background(), "towns", "SPAWN")
		require.NoError(t, err)
		assert.Equal(t, "Spawn", removed.Name)

		cat, _ := reg.Category("Towns")
		assert.Equal(t, []core.Entry{{Name: "Market", Text: "100 200"}}, cat.Entries)
	})

	t.Run("Unknown Name Leaves Registry Unchanged", func(t *testing.T) {
		reg, repo := newRegistry(t, towns())
		before := reg.Categories()

		_, err := reg.Remove(context.Background(), "Towns", "Castle")
		assert.ErrorIs(t, err, core.ErrInvalidLocation)
		assert.Equal(t, before, reg.Categories())
		assert.Zero(t, repo.saves)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		reg, _ := newRegistry(t, towns())

		_, err := reg.Remove(context.Background(), "Farms", "Spawn")
		assert.ErrorIs(t, err, core.ErrInvalidCategory)
	})
}

func TestRegistry_FindUsesCategoryOrder(t *testing.T) {
	reg, _ := newRegistry(t,
		core.Category{Name: "A", Entries: []core.Entry{{Name: "Base", Text: "first"}}},
		core.Category{Name: "B", Entries: []core.Entry{{Name: "base", Text: "second"}}},
	)

	e, ok := reg.Find("BASE")
	require.True(t, ok)
	assert.Equal(t, "first", e.Text)

	_, ok = reg.Find("missing")
	assert.False(t, ok)
}

func TestRegistry_CategoriesReturnsCopies(t *testing.T) {
	reg, _ := newRegistry(t, towns())

	cats := reg.Categories()
	cats[0].Entries[0].Text = "mutated"

	e, _ := reg.Find("Spawn")
	assert.Equal(t, "0 0", e.Text)
}

func TestRegistry_AddCategory(t *testing.T) {
	reg, _ := newRegistry(t, towns())
	ctx := context.Background()

	_, err := reg.AddCategory(ctx, "Farms")
	require.NoError(t, err)

	_, err = reg.AddCategory(ctx, "farms")
	assert.ErrorIs(t, err, core.ErrCategoryExists)

	cats := reg.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Farms", cats[1].Name)
}

func TestRegistry_Pin(t *testing.T) {
	reg, repo := newRegistry(t)
	ctx := context.Background()

	_, err := reg.Pin()
	assert.ErrorIs(t, err, core.ErrNoPin)

	require.NoError(t, reg.SetPin(ctx, core.PinRecord{ChannelID: "c1", MessageID: "m1"}))
	require.NoError(t, reg.SetPin(ctx, core.PinRecord{ChannelID: "c2", MessageID: "m2"}))

	p, err := reg.Pin()
	require.NoError(t, err)
	assert.Equal(t, core.PinRecord{ChannelID: "c2", MessageID: "m2"}, p)
	assert.Equal(t, 2, repo.pinSaves)

	assert.Error(t, reg.SetPin(ctx, core.PinRecord{ChannelID: "c3"}))
}

func TestRegistry_ClearPin(t *testing.T) {
	reg, repo := newRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.SetPin(ctx, core.PinRecord{ChannelID: "c1", MessageID: "m1"}))

	require.NoError(t, reg.ClearPin(ctx))

	_, err := reg.Pin()
	assert.ErrorIs(t, err, core.ErrNoPin)
	assert.True(t, repo.doc.Pin.IsZero())
}

func TestRegistry_State(t *testing.T) {
	reg, _ := newRegistry(t, towns(), core.Category{Name: "Farms"})

	state, ok := reg.State().(core.RegistryState)
	require.True(t, ok)
	assert.Equal(t, 2, state.Categories)
	assert.Equal(t, 2, state.Entries)
	assert.False(t, state.Pinned)
	assert.Equal(t, "registry", reg.ComponentType())
}
