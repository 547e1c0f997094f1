// Package rates - Immutable rate snapshots
package rates

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
)

// Snapshot is an immutable, point-in-time capture of trade data.
// It implements Provider for tests, the CLI and any deployment that ships
// its rate tables with the binary.
type Snapshot struct {
	timestamp  time.Time
	freight    map[string]FreightRate
	tariffs    map[string]decimal.Decimal
	vat        map[string]decimal.Decimal
	additional map[string][]AdditionalTariff
	valuation  map[string]ValuationConfig
}

func freightKey(lane Lane, method types.ShippingMethod) string {
	return lane.String() + "/" + string(method)
}

func tariffKey(hsCode string, lane Lane) string {
	return hsChapterHeading(hsCode) + "@" + lane.String()
}

// hsChapterHeading normalizes an HS code to its first six digits so rates
// keyed at heading level match more specific national codes.
func hsChapterHeading(hsCode string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(hsCode), ".", "")
	if len(digits) > 6 {
		digits = digits[:6]
	}
	return digits
}

// Timestamp reports when the snapshot's data was current
func (s *Snapshot) Timestamp() time.Time {
	return s.timestamp
}

// ValidateHSCode checks HS code format: 6 to 10 digits (dots allowed),
// chapter between 01 and 97.
func (s *Snapshot) ValidateHSCode(hsCode string) error {
	digits := strings.ReplaceAll(strings.TrimSpace(hsCode), ".", "")
	if len(digits) < 6 || len(digits) > 10 {
		return errors.Classification("HS code must be 6-10 digits: "+hsCode, nil)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errors.Classification("HS code contains non-digit characters: "+hsCode, nil)
		}
	}
	chapter := digits[:2]
	if chapter == "00" || chapter > "97" {
		return errors.Classification("HS chapter out of range: "+hsCode, nil)
	}
	return nil
}

// TariffRate returns the base duty rate for an HS code on a lane
func (s *Snapshot) TariffRate(hsCode string, lane Lane) (decimal.Decimal, bool) {
	rate, ok := s.tariffs[tariffKey(hsCode, lane)]
	return rate, ok
}

// VATRate returns the destination's VAT/GST rate
func (s *Snapshot) VATRate(destination string) (decimal.Decimal, bool) {
	rate, ok := s.vat[destination]
	return rate, ok
}

// AdditionalTariffs returns trade-remedy tariffs for an HS code on a lane
func (s *Snapshot) AdditionalTariffs(hsCode string, lane Lane) []AdditionalTariff {
	return s.additional[tariffKey(hsCode, lane)]
}

// ValuationConfig returns the destination's customs valuation configuration
func (s *Snapshot) ValuationConfig(destination string) (ValuationConfig, bool) {
	cfg, ok := s.valuation[destination]
	return cfg, ok
}

// FreightRate returns the lane's rate card for a shipping method
func (s *Snapshot) FreightRate(lane Lane, method types.ShippingMethod) (FreightRate, bool) {
	rate, ok := s.freight[freightKey(lane, method)]
	return rate, ok
}

// SnapshotBuilder builds a rate snapshot
type SnapshotBuilder struct {
	timestamp  time.Time
	freight    map[string]FreightRate
	tariffs    map[string]decimal.Decimal
	vat        map[string]decimal.Decimal
	additional map[string][]AdditionalTariff
	valuation  map[string]ValuationConfig
}

// NewSnapshotBuilder creates a new builder
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		timestamp:  time.Now().UTC(),
		freight:    make(map[string]FreightRate),
		tariffs:    make(map[string]decimal.Decimal),
		vat:        make(map[string]decimal.Decimal),
		additional: make(map[string][]AdditionalTariff),
		valuation:  make(map[string]ValuationConfig),
	}
}

// WithTimestamp sets the data snapshot timestamp
func (b *SnapshotBuilder) WithTimestamp(t time.Time) *SnapshotBuilder {
	b.timestamp = t
	return b
}

// AddFreightRate adds a lane rate card
func (b *SnapshotBuilder) AddFreightRate(lane Lane, rate FreightRate) *SnapshotBuilder {
	b.freight[freightKey(lane, rate.Method)] = rate
	return b
}

// AddTariff adds a base duty rate for an HS code on a lane
func (b *SnapshotBuilder) AddTariff(hsCode string, lane Lane, rate decimal.Decimal) *SnapshotBuilder {
	b.tariffs[tariffKey(hsCode, lane)] = rate
	return b
}

// AddVAT adds a destination VAT/GST rate
func (b *SnapshotBuilder) AddVAT(destination string, rate decimal.Decimal) *SnapshotBuilder {
	b.vat[destination] = rate
	return b
}

// AddAdditionalTariff adds a trade-remedy tariff for an HS code on a lane
func (b *SnapshotBuilder) AddAdditionalTariff(hsCode string, lane Lane, tariff AdditionalTariff) *SnapshotBuilder {
	key := tariffKey(hsCode, lane)
	b.additional[key] = append(b.additional[key], tariff)
	return b
}

// AddValuation adds a destination valuation configuration
func (b *SnapshotBuilder) AddValuation(destination string, cfg ValuationConfig) *SnapshotBuilder {
	b.valuation[destination] = cfg
	return b
}

// Build creates an immutable snapshot
func (b *SnapshotBuilder) Build() *Snapshot {
	return &Snapshot{
		timestamp:  b.timestamp,
		freight:    b.freight,
		tariffs:    b.tariffs,
		vat:        b.vat,
		additional: b.additional,
		valuation:  b.valuation,
	}
}
