// Package combo implements the build-your-own combo wizard: a linear
// slice → salad → side selection whose only authority on pricing is the
// backend. The client's estimated total is for display alone.
package combo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// Step is the wizard's position.
type Step int

const (
	ChoosingSlice Step = iota + 1
	ChoosingSalad
	ChoosingSide
	Complete
)

func (s Step) String() string {
	switch s {
	case ChoosingSlice:
		return "escolha da fatia"
	case ChoosingSalad:
		return "salada do combo"
	case ChoosingSide:
		return "escolha do acompanhamento"
	case Complete:
		return "completo"
	default:
		return "desconhecido"
	}
}

var (
	ErrWrongStep   = errors.New("combo: selection does not match current step")
	ErrIncomplete  = errors.New("combo: all three selections are required")
	ErrWrongKind   = errors.New("combo: product not valid for this step")
	ErrAtBeginning = errors.New("combo: already at the first step")
)

// saladSelection is the fixed, non-catalog salad entry. Confirming it is the
// whole of step two: there is no real choice and no price contribution.
var saladSelection = domain.ComboProduct{
	ID:   -1,
	Name: "Salada",
}

// Builder walks one combo through the wizard. It is not safe for concurrent
// use; each combo being built gets its own Builder.
type Builder struct {
	step  Step
	slice *domain.ComboProduct
	salad *domain.ComboProduct
	side  *domain.ComboProduct
}

func NewBuilder() *Builder {
	return &Builder{step: ChoosingSlice}
}

func (b *Builder) Step() Step { return b.step }

// SelectSlice picks the slice and advances to the salad step.
func (b *Builder) SelectSlice(p domain.ComboProduct) error {
	if b.step != ChoosingSlice {
		return ErrWrongStep
	}
	if p.CategoryID != domain.ComboCategorySlice {
		return ErrWrongKind
	}
	b.slice = &p
	b.step = ChoosingSalad
	return nil
}

// ConfirmSalad acknowledges the fixed salad and advances to the side step.
func (b *Builder) ConfirmSalad() error {
	if b.step != ChoosingSalad {
		return ErrWrongStep
	}
	salad := saladSelection
	b.salad = &salad
	b.step = ChoosingSide
	return nil
}

// SelectSide picks the side and completes the wizard.
func (b *Builder) SelectSide(p domain.ComboProduct) error {
	if b.step != ChoosingSide {
		return ErrWrongStep
	}
	if p.CategoryID != domain.ComboCategorySide {
		return ErrWrongKind
	}
	b.side = &p
	b.step = Complete
	return nil
}

// Back re-opens the previous step, discarding that step's selection and every
// later one. At the first step it returns ErrAtBeginning so the caller can
// leave the wizard instead.
func (b *Builder) Back() error {
	switch b.step {
	case ChoosingSlice:
		return ErrAtBeginning
	case ChoosingSalad:
		b.slice = nil
		b.step = ChoosingSlice
	case ChoosingSide:
		b.salad = nil
		b.side = nil
		b.step = ChoosingSalad
	case Complete:
		b.side = nil
		b.step = ChoosingSide
	}
	return nil
}

// EstimateTotal is the display-only price preview: base plus the surcharges
// of whatever is selected so far. The salad never contributes.
func (b *Builder) EstimateTotal() decimal.Decimal {
	total := bag.ComboBasePrice
	if b.slice != nil {
		total = total.Add(b.slice.Surcharge)
	}
	if b.side != nil {
		total = total.Add(b.side.Surcharge)
	}
	return total
}

// Selections returns what has been chosen so far; entries are nil until
// their step is done.
func (b *Builder) Selections() (slice, salad, side *domain.ComboProduct) {
	return b.slice, b.salad, b.side
}

// Submit sends the completed combo to the backend. Only the two chosen
// product ids travel: the backend records the authoritative price.
func (b *Builder) Submit(ctx context.Context, svc *bag.Service, sectionID int64) error {
	if b.step != Complete || b.slice == nil || b.salad == nil || b.side == nil {
		return ErrIncomplete
	}
	return svc.AddCombo(ctx, sectionID, b.slice.ID, b.side.ID)
}

// Catalog is the combo product listing split by wizard step.
type Catalog struct {
	Slices []domain.ComboProduct
	Sides  []domain.ComboProduct
}

// LoadCatalog fetches the combo products and splits them into the slice and
// side pools the wizard steps present.
func LoadCatalog(ctx context.Context, client *api.Client) (*Catalog, error) {
	products, err := client.ListComboProducts(ctx)
	if err != nil {
		return nil, err
	}
	cat := &Catalog{}
	for _, p := range products {
		switch p.CategoryID {
		case domain.ComboCategorySlice:
			cat.Slices = append(cat.Slices, p)
		case domain.ComboCategorySide:
			cat.Sides = append(cat.Sides, p)
		}
	}
	return cat, nil
}
