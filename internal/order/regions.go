package order

import (
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/pkg/enums"
)

// Region is one delivery fee tier. The table is small and fixed; it is not
// persisted per order.
type Region struct {
	Key    string          `json:"key"`
	NameEN string          `json:"nameEn"`
	NameAR string          `json:"nameAr"`
	Fee    decimal.Decimal `json:"fee"`
}

// Name returns the localized region name, defaulting to Arabic.
func (r Region) Name(locale enums.Locale) string {
	if locale == enums.LocaleEN && r.NameEN != "" {
		return r.NameEN
	}
	if r.NameAR != "" {
		return r.NameAR
	}
	return r.NameEN
}

// RegionSet is the lookup table the composer and cart service consult.
type RegionSet struct {
	ordered []Region
	byKey   map[string]Region
}

// NewRegionSet builds a set preserving the given display order.
func NewRegionSet(regions []Region) *RegionSet {
	set := &RegionSet{
		ordered: append([]Region{}, regions...),
		byKey:   make(map[string]Region, len(regions)),
	}
	for _, region := range regions {
		set.byKey[region.Key] = region
	}
	return set
}

// DefaultRegionSet returns the shop's delivery tiers.
func DefaultRegionSet() *RegionSet {
	return NewRegionSet([]Region{
		{Key: "wb", NameEN: "West Bank", NameAR: "الضفة الغربية", Fee: decimal.NewFromInt(20)},
		{Key: "jrs", NameEN: "Jerusalem", NameAR: "القدس", Fee: decimal.NewFromInt(30)},
		{Key: "in48", NameEN: "48 Areas", NameAR: "الداخل", Fee: decimal.NewFromInt(60)},
	})
}

// IsValid reports whether the key names a known region.
func (s *RegionSet) IsValid(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Get returns the region for the key.
func (s *RegionSet) Get(key string) (Region, bool) {
	region, ok := s.byKey[key]
	return region, ok
}

// List returns the regions in display order.
func (s *RegionSet) List() []Region {
	return append([]Region{}, s.ordered...)
}
