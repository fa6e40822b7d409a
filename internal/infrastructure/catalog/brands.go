package catalog

import "github.com/furnifind/backend/internal/domain"

// awinBrands are partners contracted through the AWIN network
var awinBrands = []domain.Brand{
	{Name: domain.StoreMaisonsDuMonde, Network: domain.NetworkAWIN, Commission: 8, ProductCount: "11K+", Available: true, Countries: []string{"FR", "DE", "NL", "BE", "ES", "IT"}, Tier: domain.TierMajor},
	{Name: domain.StoreLaRedoute, Network: domain.NetworkAWIN, Commission: 7, ProductCount: "40K+", Available: true, Countries: []string{"FR", "BE", "CH"}, Tier: domain.TierMajor},
	{Name: domain.StoreEtsy, Network: domain.NetworkAWIN, Commission: 13, ProductCount: "1M+", Available: true, Countries: []string{"UK", "US", "EU"}, Tier: domain.TierMajor},
	{Name: domain.StoreHoffmann, Network: domain.NetworkAWIN, Commission: 12, ProductCount: "5K+", Available: true, Countries: []string{"DE", "AT"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreMeinewand, Network: domain.NetworkAWIN, Commission: 14, ProductCount: "3K+", Available: true, Countries: []string{"DE"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreSeltmann, Network: domain.NetworkAWIN, Commission: 12, ProductCount: "2K+", Available: true, Countries: []string{"DE", "AT", "CH"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreOttoOffice, Network: domain.NetworkAWIN, Commission: 8, ProductCount: "10K+", Available: true, Countries: []string{"DE"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreOxfam, Network: domain.NetworkAWIN, Commission: 10, ProductCount: "5K+", Available: true, Countries: []string{"UK"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreBusyB, Network: domain.NetworkAWIN, Commission: 11, ProductCount: "1K+", Available: true, Countries: []string{"UK", "EU"}, Tier: domain.TierSpecialty},
	{Name: domain.StoreHappyLamps, Network: domain.NetworkAWIN, Commission: 6, ProductCount: "2K+", Available: true, Countries: []string{"DE", "AT"}, Tier: domain.TierSpecialty},
}

// cjBrands are partners contracted through CJ Affiliate
var cjBrands = []domain.Brand{
	{Name: domain.StoreWayfair, Network: domain.NetworkCJ, Commission: 7, ProductCount: "14M+", Available: true, Countries: []string{"US", "UK", "DE", "CA"}, Tier: domain.TierMajor},
	{Name: domain.StoreJossAndMain, Network: domain.NetworkCJ, Commission: 7, ProductCount: "2M+", Available: true, Countries: []string{"US"}, Tier: domain.TierMajor},
	{Name: domain.StoreAllModern, Network: domain.NetworkCJ, Commission: 7, ProductCount: "1M+", Available: true, Countries: []string{"US"}, Tier: domain.TierMajor},
	{Name: domain.StoreBirchLane, Network: domain.NetworkCJ, Commission: 7, ProductCount: "1M+", Available: true, Countries: []string{"US"}, Tier: domain.TierMajor},
}
