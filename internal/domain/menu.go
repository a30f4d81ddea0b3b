package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MenuItem is a purchasable dish owned by the catalog.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags,omitempty"`
	Popular     bool            `json:"popular,omitempty"`
	Available   bool            `json:"available"`
}

// MenuItemFields carries everything needed to create an item except its id.
// Price is a pointer so that a missing price can be told apart from zero.
type MenuItemFields struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags,omitempty"`
	Popular     bool             `json:"popular,omitempty"`
}

// MenuItemPatch is a partial update; nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Popular     *bool            `json:"popular,omitempty"`
	Available   *bool            `json:"available,omitempty"`
}

// NewMenuItem validates fields and builds an available item with the given id.
func NewMenuItem(id string, fields MenuItemFields) (MenuItem, error) {
	if fields.Price == nil {
		return MenuItem{}, ValidationError{Field: "price", Message: "price is required"}
	}

	item := MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(fields.Name),
		Description: fields.Description,
		Price:       *fields.Price,
		Image:       fields.Image,
		Category:    strings.TrimSpace(fields.Category),
		Tags:        append([]string(nil), fields.Tags...),
		Popular:     fields.Popular,
		Available:   true,
	}

	if err := item.Validate(); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

// Validate applies the catalog rules for name, price and category.
func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if m.Price.IsNegative() {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if strings.TrimSpace(m.Category) == "" {
		return ValidationError{Field: "category", Message: "category is required"}
	}
	return nil
}

// Apply returns a copy of m with the patch merged in. The receiver is not modified.
func (m MenuItem) Apply(p MenuItemPatch) MenuItem {
	out := m.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Category != nil {
		out.Category = strings.TrimSpace(*p.Category)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Popular != nil {
		out.Popular = *p.Popular
	}
	if p.Available != nil {
		out.Available = *p.Available
	}
	return out
}

// Clone returns a deep copy so callers never alias catalog state.
func (m MenuItem) Clone() MenuItem {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	return out
}

func init() {
	// Prices travel as JSON numbers, the way the menu has always been stored.
	// This is a process-wide decimal setting: every package linked with domain
	// (HTTP responses, stored documents, queue messages) encodes decimals
	// without quotes.
	decimal.MarshalJSONWithoutQuotes = true
}
