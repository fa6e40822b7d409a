package domain

// Store is the name of an affiliate retailer
type Store string

const (
	StoreWayfair        Store = "Wayfair"
	StoreJossAndMain    Store = "Joss & Main"
	StoreAllModern      Store = "AllModern"
	StoreBirchLane      Store = "Birch Lane"
	StoreMaisonsDuMonde Store = "Maisons du Monde"
	StoreLaRedoute      Store = "La Redoute"
	StoreEtsy           Store = "Etsy"
	StoreHoffmann       Store = "Hoffmann Germany"
	StoreMeinewand      Store = "Meinewand"
	StoreSeltmann       Store = "Seltmann Weiden"
	StoreOttoOffice     Store = "OTTO Office"
	StoreOxfam          Store = "Oxfam Online Shop"
	StoreBusyB          Store = "Busy B"
	StoreHappyLamps     Store = "Happy Lamps"
)

// Stores lists every retailer
var Stores = []Store{
	StoreWayfair, StoreJossAndMain, StoreAllModern, StoreBirchLane,
	StoreMaisonsDuMonde, StoreLaRedoute, StoreEtsy, StoreHoffmann,
	StoreMeinewand, StoreSeltmann, StoreOttoOffice, StoreOxfam,
	StoreBusyB, StoreHappyLamps,
}

// Network is the affiliate network a brand is contracted through
type Network string

const (
	NetworkAWIN Network = "AWIN"
	NetworkCJ   Network = "CJ"
)

// BrandTier groups brands for display
type BrandTier string

const (
	TierMajor     BrandTier = "major"
	TierSpecialty BrandTier = "specialty"
)

// Brand describes an affiliate partner
type Brand struct {
	Name         Store     `json:"name"`
	Network      Network   `json:"network"`
	Commission   float64   `json:"commission"` // percent
	ProductCount string    `json:"productCount"`
	Available    bool      `json:"available"`
	Countries    []string  `json:"countries"`
	Tier         BrandTier `json:"category"`
}

// BrandByName looks up a partner by store name
func BrandByName(brands []Brand, name Store) (Brand, bool) {
	for _, b := range brands {
		if b.Name == name {
			return b, true
		}
	}
	return Brand{}, false
}

// BrandsByNetwork returns the partners of one affiliate network, keeping order
func BrandsByNetwork(brands []Brand, network Network) []Brand {
	out := make([]Brand, 0, len(brands))
	for _, b := range brands {
		if b.Network == network {
			out = append(out, b)
		}
	}
	return out
}

// BrandsByTier returns the partners of one display tier, keeping order
func BrandsByTier(brands []Brand, tier BrandTier) []Brand {
	out := make([]Brand, 0, len(brands))
	for _, b := range brands {
		if b.Tier == tier {
			out = append(out, b)
		}
	}
	return out
}
