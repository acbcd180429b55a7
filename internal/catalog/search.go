package catalog

import (
	"context"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/search/query"
	"golang.org/x/text/unicode/norm"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// campDoc is the shape indexed per camp. Only text fields are indexed;
// numeric filters run against the in-memory camp map after the text query.
type campDoc struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Address  string `json:"address"`
}

func buildIndex(camps map[string]*domain.Camp) (bleve.Index, error) {
	docMapping := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = en.AnalyzerName
	docMapping.AddFieldMappingsAt("name", nameField)

	categoryField := bleve.NewTextFieldMapping()
	categoryField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("category", categoryField)

	addressField := bleve.NewTextFieldMapping()
	addressField.Analyzer = en.AnalyzerName
	docMapping.AddFieldMappingsAt("address", addressField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName
	indexMapping.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, errors.Internal("failed to create camp search index", err)
	}

	batch := index.NewBatch()
	for id, camp := range camps {
		doc := campDoc{
			Name:     camp.Name,
			Category: normalizeCategory(camp.Category),
			Address:  camp.Address,
		}
		if err := batch.Index(id, doc); err != nil {
			index.Close()
			return nil, errors.Internal("failed to index camp", err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, errors.Internal("failed to commit camp index batch", err)
	}
	return index, nil
}

// normalizeCategory folds a free-text category to a stable lowercase ASCII
// token, so "Arts & Crafts" and "arts-crafts" filter the same way.
func normalizeCategory(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// SearchParams filters a catalog search. Zero values mean "no filter".
type SearchParams struct {
	Query    string
	Category string
	Age      int
	MaxPrice int
	Limit    int
}

// Search runs a relevance-ranked text query over the catalog, then applies
// age and price filters. An empty query with filters set scans the whole
// directory in name order.
func (c *Catalog) Search(ctx context.Context, params SearchParams) ([]*domain.Camp, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}

	if params.Query == "" {
		return c.scanAll(params), nil
	}

	c.mu.RLock()
	index := c.index
	c.mu.RUnlock()

	req := bleve.NewSearchRequest(buildSearchQuery(params))
	req.Size = params.Limit * 2 // headroom for post-filtering

	result, err := index.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.Internal("camp search failed", err)
	}

	out := make([]*domain.Camp, 0, len(result.Hits))
	for _, hit := range result.Hits {
		camp, err := c.Get(hit.ID)
		if err != nil {
			continue
		}
		if !matchesFilters(camp, params) {
			continue
		}
		out = append(out, camp)
		if len(out) == params.Limit {
			break
		}
	}
	return out, nil
}

func (c *Catalog) scanAll(params SearchParams) []*domain.Camp {
	var out []*domain.Camp
	for _, camp := range c.All() {
		if !matchesFilters(camp, params) {
			continue
		}
		out = append(out, camp)
		if len(out) == params.Limit {
			break
		}
	}
	return out
}

func matchesFilters(camp *domain.Camp, params SearchParams) bool {
	if params.Category != "" && normalizeCategory(camp.Category) != normalizeCategory(params.Category) {
		return false
	}
	if params.Age > 0 && !camp.FitsAge(params.Age) {
		return false
	}
	if params.MaxPrice > 0 && camp.MinPrice > params.MaxPrice {
		return false
	}
	return true
}

func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Name match carries the most weight, with fuzzy and prefix variants
	// for typo tolerance and autocomplete.
	nameMatch := bleve.NewMatchQuery(params.Query)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	queries = append(queries, nameMatch)

	addressMatch := bleve.NewMatchQuery(params.Query)
	addressMatch.SetField("address")
	queries = append(queries, addressMatch)

	fuzzy := bleve.NewFuzzyQuery(params.Query)
	fuzzy.SetFuzziness(1)
	fuzzy.SetField("name")
	fuzzy.SetBoost(0.8)
	queries = append(queries, fuzzy)

	if len(params.Query) >= 2 {
		prefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
		prefix.SetField("name")
		prefix.SetBoost(0.5)
		queries = append(queries, prefix)
	}

	return bleve.NewDisjunctionQuery(queries...)
}
