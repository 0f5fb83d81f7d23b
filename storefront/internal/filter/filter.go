package filter

import (
	"strings"

	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

// AllCategories disables the category filter.
const AllCategories = "all"

// Products returns the products matching category and a case-insensitive search of name or
// description, keeping input order. An empty search or AllCategories skips that filter.
func Products(products []response.Product, category string, search string) []response.Product {
	term := strings.ToLower(search)
	filtered := make([]response.Product, 0, len(products))
	for _, product := range products {
		if category != AllCategories && product.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(product.Name), term) &&
			!strings.Contains(strings.ToLower(product.Description), term) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}
