package cache

const (
	KeyProducts         = "products"
	KeyCategories       = "categories"
	KeyProductPrefix    = "product:"
	KeyCategoryProducts = "products:category:"
)
