package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/furnifind/backend/internal/domain"
)

// Static is the hardcoded, read-only product catalog.
// Callers receive copies, so handing out slices never exposes the backing data.
type Static struct {
	products []domain.Product
	brands   []domain.Brand
}

// NewStatic creates the catalog with the built-in products and partner brands
func NewStatic() *Static {
	brands := make([]domain.Brand, 0, len(awinBrands)+len(cjBrands))
	brands = append(brands, awinBrands...)
	brands = append(brands, cjBrands...)
	return &Static{products: builtinProducts, brands: brands}
}

// Products returns a copy of the catalog in its fixed order
func (s *Static) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Brands returns a copy of the partner directory
func (s *Static) Brands() []domain.Brand {
	out := make([]domain.Brand, len(s.brands))
	for i, b := range s.brands {
		if b.Countries != nil {
			b.Countries = append([]string(nil), b.Countries...)
		}
		out[i] = b
	}
	return out
}

// ProductByID looks up one product
func (s *Static) ProductByID(id string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return cloneProduct(p), true
		}
	}
	return domain.Product{}, false
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	p.MatchPercentage = nil
	return p
}

// storeDomains maps each retailer to the host used for outbound links
var storeDomains = map[domain.Store]string{
	domain.StoreWayfair:        "www.wayfair.com",
	domain.StoreJossAndMain:    "www.jossandmain.com",
	domain.StoreAllModern:      "www.allmodern.com",
	domain.StoreBirchLane:      "www.birchlane.com",
	domain.StoreMaisonsDuMonde: "www.maisonsdumonde.com",
	domain.StoreLaRedoute:      "www.laredoute.fr",
	domain.StoreEtsy:           "www.etsy.com",
	domain.StoreHoffmann:       "www.hoffmann-germany.de",
	domain.StoreMeinewand:      "www.meinewand.de",
	domain.StoreSeltmann:       "www.seltmann-weiden.com",
	domain.StoreOttoOffice:     "www.otto-office.com",
	domain.StoreOxfam:          "onlineshop.oxfam.org.uk",
	domain.StoreBusyB:          "www.busyb.co.uk",
	domain.StoreHappyLamps:     "www.happylamps.de",
}

func item(id, name string, price float64, store domain.Store, cat domain.Category, style domain.Style, color domain.Color, mat domain.Material, rating float64, reviews int, tags ...string) domain.Product {
	slug := strings.ToLower(strings.NewReplacer(" ", "-", "'", "").Replace(name))
	return domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Store:       store,
		Category:    cat,
		Style:       style,
		Color:       color,
		Material:    mat,
		Rating:      rating,
		ReviewCount: reviews,
		ImageURL:    fmt.Sprintf("/images/products/%s.jpg", id),
		ProductURL:  (&url.URL{Scheme: "https", Host: storeDomains[store], Path: "/p/" + slug}).String(),
		Tags:        tags,
	}
}

var builtinProducts = []domain.Product{
	item("sofa-001", "Harlow Modern Sectional", 1899, domain.StoreWayfair, domain.CategorySofa, domain.StyleModern, domain.ColorGray, domain.MaterialFabric, 4.6, 1284, "sectional", "modular", "living room"),
	item("sofa-002", "Oslo Three-Seat Sofa", 1249, domain.StoreMaisonsDuMonde, domain.CategorySofa, domain.StyleScandinavian, domain.ColorBeige, domain.MaterialFabric, 4.4, 312, "three-seat", "oak legs"),
	item("sofa-003", "Brooklyn Leather Chesterfield", 2599, domain.StoreJossAndMain, domain.CategorySofa, domain.StyleIndustrial, domain.ColorBrown, domain.MaterialLeather, 4.8, 207, "chesterfield", "tufted"),
	item("sofa-004", "Velvet Cloud Loveseat", 899, domain.StoreLaRedoute, domain.CategorySofa, domain.StyleMidCentury, domain.ColorBlue, domain.MaterialVelvet, 4.3, 158, "loveseat", "compact"),
	item("sofa-005", "Farmhouse Slipcover Sofa", 1399, domain.StoreBirchLane, domain.CategorySofa, domain.StyleRustic, domain.ColorWhite, domain.MaterialFabric, 4.5, 641, "slipcover", "washable"),
	item("sofa-006", "Nordic Sleeper Sofa", 1099, domain.StoreAllModern, domain.CategorySofa, domain.StyleModern, domain.ColorGray, domain.MaterialFabric, 4.1, 389, "sleeper", "guest room"),
	item("chair-001", "Eames-Style Lounge Chair", 1299, domain.StoreAllModern, domain.CategoryChair, domain.StyleMidCentury, domain.ColorBrown, domain.MaterialLeather, 4.7, 932, "lounge", "ottoman"),
	item("chair-002", "Loft Metal Bar Stool", 149, domain.StoreWayfair, domain.CategoryChair, domain.StyleIndustrial, domain.ColorBlack, domain.MaterialMetal, 4.2, 1750, "bar stool", "stackable"),
	item("chair-003", "Hygge Wishbone Chair", 329, domain.StoreMaisonsDuMonde, domain.CategoryChair, domain.StyleScandinavian, domain.ColorBeige, domain.MaterialWood, 4.6, 284, "dining", "paper cord"),
	item("chair-004", "Contour Accent Chair", 459, domain.StoreLaRedoute, domain.CategoryChair, domain.StyleModern, domain.ColorGray, domain.MaterialVelvet, 4.4, 173, "accent", "swivel"),
	item("chair-005", "Reclaimed Pine Rocking Chair", 389, domain.StoreEtsy, domain.CategoryChair, domain.StyleRustic, domain.ColorBrown, domain.MaterialWood, 4.9, 96, "rocking", "handmade"),
	item("chair-006", "ErgoPro Office Chair", 549, domain.StoreOttoOffice, domain.CategoryChair, domain.StyleModern, domain.ColorBlack, domain.MaterialFabric, 4.5, 2210, "office", "ergonomic"),
	item("chair-007", "Vintage Velvet Armchair", 279, domain.StoreOxfam, domain.CategoryChair, domain.StyleMidCentury, domain.ColorBlue, domain.MaterialVelvet, 4.0, 41, "armchair", "second hand"),
	item("table-001", "Nordic Oak Dining Table", 1199, domain.StoreMaisonsDuMonde, domain.CategoryTable, domain.StyleScandinavian, domain.ColorBeige, domain.MaterialWood, 4.7, 455, "dining", "extendable"),
	item("table-002", "Foundry Coffee Table", 429, domain.StoreWayfair, domain.CategoryTable, domain.StyleIndustrial, domain.ColorBlack, domain.MaterialMetal, 4.3, 867, "coffee table", "storage shelf"),
	item("table-003", "Tulip Marble Side Table", 349, domain.StoreAllModern, domain.CategoryTable, domain.StyleMidCentury, domain.ColorWhite, domain.MaterialMetal, 4.5, 302, "side table", "marble top"),
	item("table-004", "Harvest Farm Table", 1699, domain.StoreBirchLane, domain.CategoryTable, domain.StyleRustic, domain.ColorBrown, domain.MaterialWood, 4.8, 219, "dining", "solid wood"),
	item("table-005", "Arc Glass Console", 589, domain.StoreJossAndMain, domain.CategoryTable, domain.StyleModern, domain.ColorWhite, domain.MaterialMetal, 4.2, 118, "console", "entryway"),
	item("table-006", "Hand-Thrown Ceramic Nesting Tables", 259, domain.StoreSeltmann, domain.CategoryTable, domain.StyleScandinavian, domain.ColorWhite, domain.MaterialWood, 4.4, 64, "nesting", "set of two"),
	item("desk-001", "Forge Industrial Writing Desk", 499, domain.StoreWayfair, domain.CategoryDesk, domain.StyleIndustrial, domain.ColorBlack, domain.MaterialMetal, 4.4, 1320, "writing desk", "home office"),
	item("desk-002", "Lift Standing Desk", 799, domain.StoreOttoOffice, domain.CategoryDesk, domain.StyleModern, domain.ColorWhite, domain.MaterialMetal, 4.6, 988, "standing", "height adjustable"),
	item("desk-003", "Walnut Mid-Century Desk", 949, domain.StoreAllModern, domain.CategoryDesk, domain.StyleMidCentury, domain.ColorBrown, domain.MaterialWood, 4.7, 276, "walnut", "drawers"),
	item("desk-004", "Birch Compact Desk", 289, domain.StoreHoffmann, domain.CategoryDesk, domain.StyleScandinavian, domain.ColorBeige, domain.MaterialWood, 4.3, 143, "compact", "small space"),
	item("desk-005", "Barnwood Secretary Desk", 679, domain.StoreEtsy, domain.CategoryDesk, domain.StyleRustic, domain.ColorBrown, domain.MaterialWood, 4.8, 57, "secretary", "handmade"),
	item("desk-006", "Gallery Wall Desk Shelf", 189, domain.StoreMeinewand, domain.CategoryDesk, domain.StyleModern, domain.ColorGray, domain.MaterialWood, 4.1, 38, "wall mounted", "floating"),
	item("bed-001", "Timber Lodge King Bed", 1899, domain.StoreBirchLane, domain.CategoryBed, domain.StyleRustic, domain.ColorBrown, domain.MaterialWood, 4.7, 334, "king", "solid wood"),
	item("bed-002", "Aurora Upholstered Bed", 1199, domain.StoreJossAndMain, domain.CategoryBed, domain.StyleModern, domain.ColorGray, domain.MaterialVelvet, 4.5, 512, "queen", "upholstered"),
	item("bed-003", "Fjord Platform Bed", 899, domain.StoreLaRedoute, domain.CategoryBed, domain.StyleScandinavian, domain.ColorWhite, domain.MaterialWood, 4.4, 201, "platform", "low profile"),
	item("bed-004", "Iron Works Canopy Bed", 1349, domain.StoreWayfair, domain.CategoryBed, domain.StyleIndustrial, domain.ColorBlack, domain.MaterialMetal, 4.3, 689, "canopy", "four poster"),
	item("bed-005", "Retro Walnut Daybed", 2799, domain.StoreBusyB, domain.CategoryBed, domain.StyleMidCentury, domain.ColorBrown, domain.MaterialWood, 4.6, 47, "daybed", "trundle"),
	item("bed-006", "Lumen Headboard with Reading Lights", 649, domain.StoreHappyLamps, domain.CategoryBed, domain.StyleModern, domain.ColorBlue, domain.MaterialFabric, 4.2, 73, "headboard", "integrated lighting"),
}
