package combo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

var (
	chocolateSlice = domain.ComboProduct{
		ID:         1,
		Name:       "fatia de chocolate",
		CategoryID: domain.ComboCategorySlice,
		Surcharge:  decimal.NewFromFloat(5.00),
	}
	plainSlice = domain.ComboProduct{
		ID:         2,
		Name:       "fatia tradicional",
		CategoryID: domain.ComboCategorySlice,
	}
	juiceSide = domain.ComboProduct{
		ID:         5,
		Name:       "suco",
		CategoryID: domain.ComboCategorySide,
	}
)

func TestBuilder_HappyPath(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, ChoosingSlice, b.Step())

	require.NoError(t, b.SelectSlice(chocolateSlice))
	assert.Equal(t, ChoosingSalad, b.Step())

	require.NoError(t, b.ConfirmSalad())
	assert.Equal(t, ChoosingSide, b.Step())

	require.NoError(t, b.SelectSide(juiceSide))
	assert.Equal(t, Complete, b.Step())

	slice, salad, side := b.Selections()
	require.NotNil(t, slice)
	require.NotNil(t, salad)
	require.NotNil(t, side)
	assert.Equal(t, chocolateSlice.ID, slice.ID)
	assert.Equal(t, juiceSide.ID, side.ID)
}

func TestBuilder_RejectsOutOfOrderSelections(t *testing.T) {
	b := NewBuilder()

	assert.ErrorIs(t, b.SelectSide(juiceSide), ErrWrongStep)
	assert.ErrorIs(t, b.ConfirmSalad(), ErrWrongStep)

	require.NoError(t, b.SelectSlice(plainSlice))
	assert.ErrorIs(t, b.SelectSlice(chocolateSlice), ErrWrongStep)
}

func TestBuilder_RejectsWrongKind(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.SelectSlice(juiceSide), ErrWrongKind)

	require.NoError(t, b.SelectSlice(plainSlice))
	require.NoError(t, b.ConfirmSalad())
	assert.ErrorIs(t, b.SelectSide(chocolateSlice), ErrWrongKind)
}

func TestBuilder_BackDiscardsSelections(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SelectSlice(chocolateSlice))
	require.NoError(t, b.ConfirmSalad())
	require.NoError(t, b.SelectSide(juiceSide))

	require.NoError(t, b.Back())
	assert.Equal(t, ChoosingSide, b.Step())
	_, _, side := b.Selections()
	assert.Nil(t, side)

	require.NoError(t, b.Back())
	assert.Equal(t, ChoosingSalad, b.Step())
	_, salad, _ := b.Selections()
	assert.Nil(t, salad)

	require.NoError(t, b.Back())
	assert.Equal(t, ChoosingSlice, b.Step())
	slice, _, _ := b.Selections()
	assert.Nil(t, slice)

	assert.ErrorIs(t, b.Back(), ErrAtBeginning)
}

func TestBuilder_EstimateTotal(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.EstimateTotal().Equal(decimal.NewFromFloat(53.00)))

	require.NoError(t, b.SelectSlice(chocolateSlice))
	assert.True(t, b.EstimateTotal().Equal(decimal.NewFromFloat(58.00)))

	require.NoError(t, b.ConfirmSalad())
	require.NoError(t, b.SelectSide(juiceSide))
	assert.True(t, b.EstimateTotal().Equal(decimal.NewFromFloat(58.00)))
}

func TestBuilder_SubmitRequiresComplete(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SelectSlice(chocolateSlice))

	err := b.Submit(nil, nil, 1)
	assert.ErrorIs(t, err, ErrIncomplete)
}
