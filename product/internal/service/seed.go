package service

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/pharmacy/product/pkg/request"
)

// SampleProducts is the catalog written on the first start against an empty database.
var SampleProducts = []request.Product{
	{
		Name:        "Paracétamol 500mg",
		Category:    "Médicaments",
		Description: "Antalgique et antipyrétique pour soulager la douleur et réduire la fièvre",
		Price:       decimal.NewFromInt(150),
		ImageURL:    "https://images.unsplash.com/photo-1471864190281-a93a3070b6de",
		InStock:     true,
	},
	{
		Name:        "Ibuprofène 400mg",
		Category:    "Médicaments",
		Description: "Anti-inflammatoire non stéroïdien pour douleurs et inflammations",
		Price:       decimal.NewFromInt(200),
		ImageURL:    "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae",
		InStock:     true,
	},
	{
		Name:        "Vitamines C 1000mg",
		Category:    "Compléments",
		Description: "Complément alimentaire pour renforcer le système immunitaire",
		Price:       decimal.NewFromInt(800),
		ImageURL:    "https://images.pexels.com/photos/159211/headache-pain-pills-medication-159211.jpeg",
		InStock:     true,
	},
	{
		Name:        "Crème Hydratante",
		Category:    "Cosmétiques",
		Description: "Crème hydratante pour peaux sèches et sensibles",
		Price:       decimal.NewFromInt(1200),
		ImageURL:    "https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9",
		InStock:     true,
	},
	{
		Name:        "Sérum Anti-Âge",
		Category:    "Cosmétiques",
		Description: "Sérum anti-âge avec acide hyaluronique",
		Price:       decimal.NewFromInt(2500),
		ImageURL:    "https://images.pexels.com/photos/3018845/pexels-photo-3018845.jpeg",
		InStock:     true,
	},
	{
		Name:        "Sirop pour la Toux",
		Category:    "Médicaments",
		Description: "Sirop expectorant pour soulager la toux",
		Price:       decimal.NewFromInt(300),
		ImageURL:    "https://images.unsplash.com/photo-1471864190281-a93a3070b6de",
		InStock:     true,
	},
}
