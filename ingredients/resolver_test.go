package ingredients

import (
	"context"
	"errors"
	"strings"
	"testing"

	"plateful/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory IngredientStore. failLower simulates per-record
// losses inside an unordered bulk insert.
type fakeStore struct {
	byLower     map[string]models.Ingredient
	findCalls   int
	createCalls int
	findErr     error
	createErr   error
	failLower   map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byLower: make(map[string]models.Ingredient)}
}

func (f *fakeStore) seed(name string) models.Ingredient {
	ing := models.Ingredient{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameLower: strings.ToLower(name),
	}
	f.byLower[ing.NameLower] = ing
	return ing
}

func (f *fakeStore) FindByIDsOrNames(_ context.Context, ids []primitive.ObjectID, lowerNames []string) ([]models.Ingredient, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Ingredient
	for _, ing := range f.byLower {
		matched := false
		for _, id := range ids {
			if ing.ID == id {
				matched = true
			}
		}
		for _, name := range lowerNames {
			if ing.NameLower == name {
				matched = true
			}
		}
		if matched {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateMany(_ context.Context, ingredients []models.Ingredient) ([]models.Ingredient, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	var created []models.Ingredient
	for _, ing := range ingredients {
		if f.failLower[ing.NameLower] {
			continue
		}
		f.byLower[ing.NameLower] = ing
		created = append(created, ing)
	}
	return created, nil
}

func TestResolveDedupesNamesCaseInsensitively(t *testing.T) {
	store := newFakeStore()
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "Tomato", Quantity: 2, Unit: "pcs"},
		{Name: "tomato", Quantity: 1, Unit: "pcs"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, lines[0].IngredientID, lines[1].IngredientID)
	assert.Equal(t, 1, store.createCalls)
	assert.Len(t, store.byLower, 1)
	// first spelling becomes canonical; both resolved lines carry it
	assert.Equal(t, "Tomato", lines[0].Name)
	assert.Equal(t, "Tomato", lines[1].Name)
}

func TestResolveByIDAndNameConverge(t *testing.T) {
	store := newFakeStore()
	salt := store.seed("Salt")
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Ingredient: salt.ID.Hex(), Quantity: 1, Unit: "tsp"},
		{Name: "salt", Notes: "to taste"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, salt.ID, lines[0].IngredientID)
	assert.Equal(t, salt.ID, lines[1].IngredientID)
	assert.Equal(t, 0, store.createCalls, "no duplicate creation for an existing name")
}

func TestResolveUsesStoredCanonicalName(t *testing.T) {
	store := newFakeStore()
	store.seed("Basil")
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "BASIL"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Basil", lines[0].Name, "resolved line carries the stored name, never the caller's spelling")
}

func TestResolveDropsUnresolvableLines(t *testing.T) {
	store := newFakeStore()
	rs := NewResolver(store)

	unknownID := primitive.NewObjectID()
	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "Rice"},
		{Name: "   "},
		{},
		{Ingredient: unknownID.Hex()},
		{Name: "Peas"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Rice", lines[0].Name)
	assert.Equal(t, "Peas", lines[1].Name)
}

func TestResolvePreservesInputOrder(t *testing.T) {
	store := newFakeStore()
	store.seed("Onion")
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "Garlic"},
		{Name: "Onion"},
		{Name: "Ginger"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Garlic", lines[0].Name)
	assert.Equal(t, "Onion", lines[1].Name)
	assert.Equal(t, "Ginger", lines[2].Name)
}

func TestResolveIsIdempotentAcrossCalls(t *testing.T) {
	store := newFakeStore()
	rs := NewResolver(store)
	batch := []models.RawIngredientLine{{Name: "Paprika"}, {Name: "Cumin"}}

	first, err := rs.Resolve(context.Background(), batch)
	require.NoError(t, err)
	second, err := rs.Resolve(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].IngredientID, second[0].IngredientID)
	assert.Equal(t, first[1].IngredientID, second[1].IngredientID)
	assert.Equal(t, 1, store.createCalls, "second call reuses the records created by the first")
	assert.Len(t, store.byLower, 2)
}

func TestResolveSingleLookupRoundTrip(t *testing.T) {
	store := newFakeStore()
	existing := store.seed("Flour")
	rs := NewResolver(store)

	_, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Ingredient: existing.ID.Hex()},
		{Name: "Sugar"},
		{Name: "Butter"},
		{Name: "sugar"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.findCalls, "exactly one lookup regardless of batch size")
}

func TestResolveToleratesPartialBulkFailure(t *testing.T) {
	store := newFakeStore()
	store.failLower = map[string]bool{"milk": true}
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "Milk"},
		{Name: "Honey"},
	})
	require.NoError(t, err, "a partial bulk failure is not fatal")
	require.Len(t, lines, 1)
	assert.Equal(t, "Honey", lines[0].Name)
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("connection reset")
	rs := NewResolver(store)

	_, err := rs.Resolve(context.Background(), []models.RawIngredientLine{{Name: "Rice"}})
	require.Error(t, err)

	store = newFakeStore()
	store.createErr = errors.New("write concern failure")
	rs = NewResolver(store)

	_, err = rs.Resolve(context.Background(), []models.RawIngredientLine{{Name: "Rice"}})
	require.Error(t, err)
}

func TestResolveEmptyInput(t *testing.T) {
	store := newFakeStore()
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 0, store.findCalls, "no store access for empty input")

	lines, err = rs.Resolve(context.Background(), []models.RawIngredientLine{{}, {Name: " "}})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestResolveCopiesQuantityUnitNotes(t *testing.T) {
	store := newFakeStore()
	rs := NewResolver(store)

	lines, err := rs.Resolve(context.Background(), []models.RawIngredientLine{
		{Name: "Lentils", Quantity: 1.5, Unit: " cup ", Notes: " rinsed "},
		{Name: "Water"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1.5, lines[0].Quantity)
	assert.Equal(t, "cup", lines[0].Unit)
	assert.Equal(t, "rinsed", lines[0].Notes)
	// absent values stay at their explicit zero defaults, not omitted
	assert.Equal(t, 0.0, lines[1].Quantity)
	assert.Equal(t, "", lines[1].Unit)
	assert.Equal(t, "", lines[1].Notes)
}
