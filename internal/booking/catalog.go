package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyServiceID    = errors.New("service id is required")
	ErrEmptyServiceLabel = errors.New("service label is required")
	ErrDuplicateService  = errors.New("duplicate service id")
	ErrNegativeQuantity  = errors.New("default quantity must not be negative")
)

// ServiceItem is an optional add-on the visitor can tick on the card.
// Label is sent verbatim, so it must match what the receiving side expects.
type ServiceItem struct {
	ID             string `yaml:"id"`
	Label          string `yaml:"label"`
	DefaultChecked bool   `yaml:"default_checked"`
	ShowQuantity   bool   `yaml:"show_quantity"`
	DefaultQty     int    `yaml:"default_qty"`
}

// InitialQuantity is the quantity prefilled in the card's input.
func (s ServiceItem) InitialQuantity() int {
	if s.DefaultQty > 0 {
		return s.DefaultQty
	}
	return 1
}

// Catalog is the read-only, ordered list of services.
type Catalog struct {
	items []ServiceItem
	byID  map[string]int
}

// NewCatalog validates items and freezes them in the given order.
func NewCatalog(items []ServiceItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]ServiceItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		item.Label = strings.TrimSpace(item.Label)
		switch {
		case item.ID == "":
			return nil, fmt.Errorf("service %d: %w", i, ErrEmptyServiceID)
		case item.Label == "":
			return nil, fmt.Errorf("service %q: %w", item.ID, ErrEmptyServiceLabel)
		case item.DefaultQty < 0:
			return nil, fmt.Errorf("service %q: %w", item.ID, ErrNegativeQuantity)
		}
		if _, exists := c.byID[item.ID]; exists {
			return nil, fmt.Errorf("service %q: %w", item.ID, ErrDuplicateService)
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// DefaultCatalog is the card's stock list of camping add-ons.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultServices())
	if err != nil {
		panic("invalid default catalog: " + err.Error())
	}
	return c
}

// DefaultServices returns a fresh copy of the stock service list.
func DefaultServices() []ServiceItem {
	return []ServiceItem{
		{ID: "agua-potable", Label: "agua potable", DefaultChecked: true, ShowQuantity: true},
		{ID: "cafetera", Label: "cafetera para calentar agua (*)"},
		{ID: "anafre", Label: "anafre"},
		{ID: "lenia-atajo", Label: "atajo de leña (*)", ShowQuantity: true, DefaultQty: 1},
		{ID: "asador", Label: "asador de gas portátil (*)", DefaultQty: 1},
		{ID: "camastro", Label: "camastro (*)", ShowQuantity: true, DefaultQty: 1},
		{ID: "casa2p", Label: "casa de campaña para 2 personas (*)", ShowQuantity: true},
		{ID: "carbon", Label: "carbon (*)", ShowQuantity: true},
	}
}

// Items returns a copy of the catalog in display order.
func (c *Catalog) Items() []ServiceItem {
	if c == nil {
		return nil
	}
	out := make([]ServiceItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of services.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Lookup finds a service by ID.
func (c *Catalog) Lookup(id string) (ServiceItem, bool) {
	if c == nil {
		return ServiceItem{}, false
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return ServiceItem{}, false
	}
	return c.items[idx], true
}

// DefaultSelections returns the services that start checked, each with its
// initial quantity.
func (c *Catalog) DefaultSelections() []ServiceSelection {
	if c == nil {
		return nil
	}
	var out []ServiceSelection
	for _, item := range c.items {
		if item.DefaultChecked {
			out = append(out, ServiceSelection{ID: item.ID, Quantity: item.InitialQuantity()})
		}
	}
	return out
}
