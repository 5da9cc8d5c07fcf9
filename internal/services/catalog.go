package services

import (
	"sort"
	"strings"

	"vitrine3d_back_end/internal/models"
)

// Clés de tri acceptées par GET /api/products.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// ProductQuery est la version typée du document de filtre : chaque champ optionnel
// est traduit de façon déterministe, sans accumulation de maps non typées.
type ProductQuery struct {
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// PageResult est le résultat paginé d'ApplyProductQuery.
type PageResult struct {
	Products    []models.Product
	Total       int
	Pages       int
	CurrentPage int
}

// ApplyProductQuery applique filtre, tri et pagination sur la liste complète.
// Category est un match exact ; Search un substring insensible à la casse sur
// le nom OU la description ; le total est compté avant pagination et
// Pages = ceil(Total/Limit).
func ApplyProductQuery(products []models.Product, q ProductQuery) PageResult {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Search != "" && !matchesSearch(p, q.Search) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	total := len(filtered)
	pages := (total + q.Limit - 1) / q.Limit

	offset := (q.Page - 1) * q.Limit
	if offset > total {
		offset = total
	}
	end := offset + q.Limit
	if end > total {
		end = total
	}

	return PageResult{
		Products:    filtered[offset:end],
		Total:       total,
		Pages:       pages,
		CurrentPage: q.Page,
	}
}

func matchesSearch(p models.Product, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
