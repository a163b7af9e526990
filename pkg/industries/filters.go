package industries

import (
	"regexp"
	"strings"

	"github.com/jordanlanch/industrycatalog/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Each filter exists twice: as a predicate over a record for the fallback
// dataset and as a bson query for the document store. Both forms must select
// the same records for the same input.

// MatchesFilters reports whether ind satisfies every supplied equality filter
func MatchesFilters(ind models.Industry, f models.IndustryFilters) bool {
	if f.Sector != "" && ind.Sector != f.Sector {
		return false
	}
	if f.Country != "" && ind.Country != f.Country {
		return false
	}
	if f.Status != "" && ind.Status != f.Status {
		return false
	}
	return true
}

// FilterQuery builds the store query equivalent to MatchesFilters
func FilterQuery(f models.IndustryFilters) bson.D {
	query := bson.D{}
	if f.Sector != "" {
		query = append(query, bson.E{Key: "sector", Value: f.Sector})
	}
	if f.Country != "" {
		query = append(query, bson.E{Key: "country", Value: f.Country})
	}
	if f.Status != "" {
		query = append(query, bson.E{Key: "status", Value: f.Status})
	}
	return query
}

// MatchesSearch reports whether ind satisfies the text, sector and region
// criteria of q. The criteria combine with AND; the text matches name OR
// description OR any product.
func MatchesSearch(ind models.Industry, q models.SearchQuery, regions Regions) bool {
	if q.Query != "" && !matchesText(ind, q.Query) {
		return false
	}
	if sector := q.SectorFilter(); sector != "" && ind.Sector != sector {
		return false
	}
	if region := q.RegionFilter(); region != "" {
		if _, known := regions.Countries(region); known && !regions.Contains(region, ind.Country) {
			return false
		}
	}
	return true
}

// SearchFilter builds the store query equivalent to MatchesSearch
func SearchFilter(q models.SearchQuery, regions Regions) bson.D {
	filter := bson.D{}

	if q.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Query), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
			bson.D{{Key: "products", Value: pattern}}, // matches when any element matches
		}})
	}

	if sector := q.SectorFilter(); sector != "" {
		filter = append(filter, bson.E{Key: "sector", Value: sector})
	}

	if region := q.RegionFilter(); region != "" {
		if countries, known := regions.Countries(region); known {
			filter = append(filter, bson.E{Key: "country", Value: bson.D{{Key: "$in", Value: countries}}})
		}
	}

	return filter
}

func matchesText(ind models.Industry, query string) bool {
	if containsFold(ind.Name, query) || containsFold(ind.Description, query) {
		return true
	}
	for _, product := range ind.Products {
		if containsFold(product, query) {
			return true
		}
	}
	return false
}

// containsFold is a case-insensitive substring test. Both sides are lowered
// rather than folded so that ß never matches ss, as with the store's regex.
// A Caser is stateful, so one is created per call.
func containsFold(s, substr string) bool {
	lower := cases.Lower(language.Und)
	return strings.Contains(lower.String(s), lower.String(substr))
}
