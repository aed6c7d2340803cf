package models

import (
	"time"
)

type MarketSector string

const (
	SectorHousing       MarketSector = "housing"
	SectorAgriculture   MarketSector = "agriculture"
	SectorMining        MarketSector = "mining"
	SectorCrypto        MarketSector = "cryptocurrency"
	SectorGreenHydrogen MarketSector = "green_hydrogen"
)

// Sectors lists every sector served by the dashboard.
var Sectors = []MarketSector{
	SectorHousing,
	SectorAgriculture,
	SectorMining,
	SectorCrypto,
	SectorGreenHydrogen,
}

// SectorRequiredRole returns the minimum tier needed to read a sector's data.
// Crypto and green hydrogen feeds are reserved for the investor tier.
func SectorRequiredRole(sector MarketSector) Role {
	switch sector {
	case SectorCrypto, SectorGreenHydrogen:
		return InvestorRole
	default:
		return ProRole
	}
}

// ValidSector reports whether the string names a known sector.
func ValidSector(s string) bool {
	for _, sector := range Sectors {
		if string(sector) == s {
			return true
		}
	}
	return false
}

type MarketDataPoint struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Sector     MarketSector `json:"sector" gorm:"type:varchar(30);index;not null"`
	MetricName string       `json:"metricName" gorm:"not null"`
	Value      float64      `json:"value"`
	Unit       string       `json:"unit"`
	Source     string       `json:"source"`
	RecordedAt time.Time    `json:"recordedAt"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// MarketDataPointCreate is the expected payload for data ingestion
type MarketDataPointCreate struct {
	MetricName string    `json:"metricName" binding:"required"`
	Value      float64   `json:"value" binding:"required"`
	Unit       string    `json:"unit"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recordedAt"`
}
