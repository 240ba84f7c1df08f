package repositories

import (
	"strings"

	"storefront/internal/apperrors"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when no valid limit is requested.
	DefaultPageSize = 12
	// MaxPageSize caps the limit query parameter.
	MaxPageSize = 1000
)

// ErrInvalidPage is returned for a page number outside the result range.
var ErrInvalidPage = apperrors.NotFound("Invalid page.")

// ProductQuery describes a filtered, ordered and paginated product listing.
// It is a value type; every With method returns a modified copy.
type ProductQuery struct {
	name           string
	popular        bool
	priceOrder     bool
	priceDesc      bool
	subCategoryID  uint
	mainCategoryID uint
	page           int
	limit          int
}

// NewProductQuery returns the unfiltered listing, newest first, page 1.
func NewProductQuery() ProductQuery {
	return ProductQuery{page: 1, limit: DefaultPageSize}
}

// WithName keeps products whose name contains name, ignoring case.
func (q ProductQuery) WithName(name string) ProductQuery {
	q.name = strings.TrimSpace(name)
	return q
}

// WithPopular keeps only products that have been ordered at least once.
func (q ProductQuery) WithPopular(popular bool) ProductQuery {
	q.popular = popular
	return q
}

// OrderByPrice sorts by price, descending when desc is set.
func (q ProductQuery) OrderByPrice(desc bool) ProductQuery {
	q.priceOrder = true
	q.priceDesc = desc
	return q
}

// InSubCategory keeps products attached directly to the sub-category.
func (q ProductQuery) InSubCategory(id uint) ProductQuery {
	q.subCategoryID = id
	return q
}

// InMainCategory keeps products of every sub-category under the main category.
func (q ProductQuery) InMainCategory(id uint) ProductQuery {
	q.mainCategoryID = id
	return q
}

// Paginate selects a 1-based page. Non-positive limits fall back to the
// default and limits above MaxPageSize are clamped.
func (q ProductQuery) Paginate(page, limit int) ProductQuery {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	q.page = page
	q.limit = limit
	return q
}

// Page returns the requested page number.
func (q ProductQuery) Page() int { return q.page }

// Limit returns the page size.
func (q ProductQuery) Limit() int { return q.limit }

// Popular reports whether the popularity filter is on.
func (q ProductQuery) Popular() bool { return q.popular }

// Name returns the name filter.
func (q ProductQuery) Name() string { return q.name }

func (q ProductQuery) filters() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if q.name != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.name)) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern)
		})
	}
	if q.popular {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("id IN (SELECT product_id FROM product_cards WHERE product_id IS NOT NULL GROUP BY product_id HAVING SUM(quantity) > 0)")
		})
	}
	if q.subCategoryID != 0 {
		id := q.subCategoryID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("sub_category_id = ?", id)
		})
	}
	if q.mainCategoryID != 0 {
		id := q.mainCategoryID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("sub_category_id IN (SELECT id FROM sub_categories WHERE main_category_id = ?)", id)
		})
	}
	return scopes
}

func (q ProductQuery) orderClause() string {
	if !q.priceOrder {
		return "id DESC"
	}
	if q.priceDesc {
		return "price DESC, id DESC"
	}
	return "price ASC, id DESC"
}

// offset validates the page against count and returns the row offset.
// An empty result still has a valid first page.
func (q ProductQuery) offset(count int64) (int, error) {
	if q.page < 1 {
		return 0, ErrInvalidPage
	}
	pages := int((count + int64(q.limit) - 1) / int64(q.limit))
	if pages == 0 {
		pages = 1
	}
	if q.page > pages {
		return 0, ErrInvalidPage
	}
	return (q.page - 1) * q.limit, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Page is one page of a listing.
type Page[T any] struct {
	Items  []T
	Count  int64
	Number int
	Size   int
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return int64(p.Number*p.Size) < p.Count
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}
