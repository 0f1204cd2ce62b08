package bag

import (
	"context"
	"sync/atomic"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// TopicChanged is published on the bus after every bag mutation. The coupon
// service subscribes to it to drop any active discount.
const TopicChanged = "bag:changed"

// Contents holds the three bag categories fetched independently: one
// category failing reports its own error and leaves the others usable, so a
// retry refetches only what is missing.
type Contents struct {
	Items       []domain.ItemRow
	Combos      []domain.ComboRow
	Redemptions []domain.RedemptionRow

	ItemsErr       error
	CombosErr      error
	RedemptionsErr error
}

// Err returns the first category error, if any.
func (c Contents) Err() error {
	for _, err := range []error{c.ItemsErr, c.CombosErr, c.RedemptionsErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Service orchestrates bag reads and mutations for the current section.
type Service struct {
	api   *api.Client
	bus   EventBus.Bus
	group singleflight.Group
	count atomic.Int64
}

func NewService(client *api.Client, bus EventBus.Bus) *Service {
	return &Service{api: client, bus: bus}
}

// Load fetches the three bag categories for a section. Each category is
// independent: a failure is recorded per category and never discards data
// already fetched.
func (s *Service) Load(ctx context.Context, sectionID int64) Contents {
	var c Contents
	c.Items, c.ItemsErr = s.api.ListBagItems(ctx, sectionID)
	c.Combos, c.CombosErr = s.api.ListBagCombos(ctx, sectionID)
	c.Redemptions, c.RedemptionsErr = s.api.ListBagRedemptions(ctx, sectionID)
	if err := c.Err(); err != nil {
		zap.L().Warn("bag: partial load", zap.Int64("section_id", sectionID), zap.Error(err))
	}
	return c
}

// Summarize loads the bag and aggregates it for display.
func (s *Service) Summarize(ctx context.Context, section *domain.Section, coupon *domain.Coupon) (Summary, Contents) {
	contents := s.Load(ctx, section.ID)
	summary := Summarize(contents.Items, contents.Combos, contents.Redemptions, section.Fulfillment, coupon)
	if contents.Err() == nil {
		s.count.Store(int64(len(contents.Items) + len(contents.Combos)))
	}
	return summary, contents
}

func (s *Service) changed(sectionID int64) {
	s.bus.Publish(TopicChanged, sectionID)
}

// AddItem puts one unit of a product into the bag.
func (s *Service) AddItem(ctx context.Context, sectionID, productID int64) error {
	if err := s.api.AddBagItem(ctx, sectionID, productID); err != nil {
		return err
	}
	s.changed(sectionID)
	return nil
}

// AddUnit increments a grouped line by inserting another row of its product.
func (s *Service) AddUnit(ctx context.Context, group ItemGroup) error {
	return s.AddItem(ctx, group.SectionID, group.ProductID)
}

// RemoveUnit deletes the group's first row, decrementing quantity by one.
func (s *Service) RemoveUnit(ctx context.Context, group ItemGroup) error {
	if len(group.RowIDs) == 0 {
		return nil
	}
	if err := s.api.DeleteBagItem(ctx, group.RowIDs[0]); err != nil {
		return err
	}
	s.changed(group.SectionID)
	return nil
}

// RemoveLine deletes every row of the group, removing the display line.
func (s *Service) RemoveLine(ctx context.Context, group ItemGroup) error {
	for _, id := range group.RowIDs {
		if err := s.api.DeleteBagItem(ctx, id); err != nil {
			return err
		}
	}
	s.changed(group.SectionID)
	return nil
}

// AddCombo records a completed combo in the bag.
func (s *Service) AddCombo(ctx context.Context, sectionID, firstID, secondID int64) error {
	if err := s.api.AddBagCombo(ctx, sectionID, firstID, secondID); err != nil {
		return err
	}
	s.changed(sectionID)
	return nil
}

// RemoveCombo deletes one combo instance.
func (s *Service) RemoveCombo(ctx context.Context, combo domain.ComboRow) error {
	if err := s.api.DeleteBagCombo(ctx, combo.ID); err != nil {
		return err
	}
	s.changed(combo.SectionID)
	return nil
}

// AddRedemption puts a point redemption into the bag.
func (s *Service) AddRedemption(ctx context.Context, sectionID, productID int64) error {
	if err := s.api.AddBagRedemption(ctx, sectionID, productID); err != nil {
		return err
	}
	s.changed(sectionID)
	return nil
}

// RemoveRedemption deletes one redemption row.
func (s *Service) RemoveRedemption(ctx context.Context, row domain.RedemptionRow) error {
	if err := s.api.DeleteBagRedemption(ctx, row.ID); err != nil {
		return err
	}
	s.changed(row.SectionID)
	return nil
}

// Count returns the last known bag badge count (items plus combos).
func (s *Service) Count() int64 {
	return s.count.Load()
}

// RefreshCount recounts the badge for a section. Concurrent refreshes are
// collapsed into one backend round trip. A failed refresh is non-critical:
// it logs, resets the badge to zero and reports no error to the caller.
func (s *Service) RefreshCount(ctx context.Context, sectionID int64) int64 {
	v, _, _ := s.group.Do("bag-count", func() (interface{}, error) {
		items, err := s.api.ListBagItems(ctx, sectionID)
		if err != nil {
			zap.L().Warn("bag: count refresh failed", zap.Error(err))
			s.count.Store(0)
			return int64(0), nil
		}
		combos, err := s.api.ListBagCombos(ctx, sectionID)
		if err != nil {
			zap.L().Warn("bag: count refresh failed", zap.Error(err))
			s.count.Store(0)
			return int64(0), nil
		}
		n := int64(len(items) + len(combos))
		s.count.Store(n)
		return n, nil
	})
	return v.(int64)
}
