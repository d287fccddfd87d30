package query

import "jobinsight-engine/internal/domain"

// MarketReport bundles the three keyword reports the market analysis renders.
type MarketReport struct {
	Keyword  string     `json:"keyword"`
	Stats    Statistics `json:"stats"`
	Benefits []Count    `json:"benefits"`
	Titles   []Count    `json:"titles"`
}

type LocationReport struct {
	Location string             `json:"location"`
	Stats    LocationStatistics `json:"stats"`
}

// Market filters records by keyword once and runs every keyword report on the
// matches.
func Market(records []domain.Record, keyword string) MarketReport {
	matched := FilterByKeyword(records, keyword)
	return MarketReport{
		Keyword:  keyword,
		Stats:    JobStatistics(matched),
		Benefits: CommonBenefits(matched),
		Titles:   TrendingTitles(matched),
	}
}

func Location(records []domain.Record, location string) LocationReport {
	return LocationReport{
		Location: location,
		Stats:    LocationStats(FilterByLocation(records, location)),
	}
}
