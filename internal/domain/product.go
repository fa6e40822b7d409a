package domain

// Category is the furniture type a product belongs to
type Category string

const (
	CategorySofa  Category = "Sofa"
	CategoryChair Category = "Chair"
	CategoryTable Category = "Table"
	CategoryDesk  Category = "Desk"
	CategoryBed   Category = "Bed"

	// CategoryAll is the wildcard accepted by FilterCriteria; no product carries it
	CategoryAll Category = "All"
)

// Categories lists the concrete categories in display order
var Categories = []Category{CategorySofa, CategoryChair, CategoryTable, CategoryDesk, CategoryBed}

// Valid reports whether c is a concrete category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Style is the design style of a product
type Style string

const (
	StyleModern       Style = "Modern"
	StyleScandinavian Style = "Scandinavian"
	StyleIndustrial   Style = "Industrial"
	StyleRustic       Style = "Rustic"
	StyleMidCentury   Style = "Mid-Century"
)

// Color is the dominant color of a product
type Color string

const (
	ColorGray  Color = "Gray"
	ColorWhite Color = "White"
	ColorBlack Color = "Black"
	ColorBrown Color = "Brown"
	ColorBlue  Color = "Blue"
	ColorBeige Color = "Beige"
)

// Material is the primary material of a product
type Material string

const (
	MaterialWood    Material = "Wood"
	MaterialMetal   Material = "Metal"
	MaterialFabric  Material = "Fabric"
	MaterialLeather Material = "Leather"
	MaterialVelvet  Material = "Velvet"
)

// Product is an immutable catalog entry.
// MatchPercentage is only set on copies handed out while an analysis is active.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Store           Store    `json:"store"`
	Category        Category `json:"category"`
	Style           Style    `json:"style"`
	Color           Color    `json:"color"`
	Material        Material `json:"material"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"reviewCount"`
	ImageURL        string   `json:"imageUrl"`
	ProductURL      string   `json:"productUrl"` // affiliate link, opaque
	Tags            []string `json:"tags"`
	MatchPercentage *int     `json:"matchPercentage,omitempty"`
}
