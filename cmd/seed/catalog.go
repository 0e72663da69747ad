package main

import (
	"bookit-platform/internal/models"

	"github.com/shopspring/decimal"
)

const imageQuery = "?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&q=80"

func unsplash(photo, width string) []string {
	return []string{"https://images.unsplash.com/" + photo + imageQuery + "&w=" + width}
}

var sampleExperiences = []*models.ExperienceCreateRequest{
	{
		Title:       "Kayaking in the Mangroves",
		Description: "Curated small-group experience. Certified guide. Safety first with gear included. Helmet and Life jackets along with an expert will accompany in kayaking.",
		Price:       decimal.NewFromInt(999),
		Location:    "Udupi, Karnataka",
		ImageURLs:   unsplash("photo-1721329816998-9fee1247d095", "1740"),
	},
	{
		Title:       "Forest Trek & Waterfall Visit",
		Description: "Explore the hidden trails of the Western Ghats. A 3-hour guided trek to a pristine waterfall. Packed lunch included.",
		Price:       decimal.NewFromInt(1250),
		Location:    "Coorg, Karnataka",
		ImageURLs:   unsplash("photo-1551632811-561732d1e306", "1740"),
	},
	{
		Title:       "Coastal Surfing Lessons",
		Description: "Learn to ride the waves with our expert instructors. 2-hour beginner lesson with all equipment provided. Suitable for all ages.",
		Price:       decimal.NewFromInt(2500),
		Location:    "Kovalam, Kerala",
		ImageURLs:   unsplash("photo-1455264745730-cb3b76250ae8", "1688"),
	},
	{
		Title:       "Old Goa Heritage Walk",
		Description: "Step back in time and explore the historic churches and cathedrals of Old Goa. A 2-hour guided walk with a local historian.",
		Price:       decimal.NewFromInt(800),
		Location:    "Goa, India",
		ImageURLs:   unsplash("photo-1667797478659-9a054263c4a7", "1905"),
	},
	{
		Title:       "Jaipur Block Printing Workshop",
		Description: "Learn the traditional art of Rajasthani block printing. Create your own scarf or tote bag to take home. All materials provided.",
		Price:       decimal.NewFromInt(1500),
		Location:    "Jaipur, Rajasthan",
		ImageURLs:   unsplash("photo-1755408007655-9ac329cfa145", "1738"),
	},
	{
		Title:       "Paragliding in Bir Billing",
		Description: "Experience the thrill of flying over the Himalayas. A 30-minute tandem paragliding flight with a certified pilot. Includes video recording.",
		Price:       decimal.NewFromInt(3500),
		Location:    "Bir, Himachal Pradesh",
		ImageURLs:   unsplash("photo-1724081549788-740e87e42a38", "1744"),
	},
	{
		Title:       "Scuba Diving (Beginner)",
		Description: "Discover the underwater world of the Andaman Islands. A PADI-certified discover scuba dive with one-on-one instructor guidance. No swimming skills required.",
		Price:       decimal.NewFromInt(4800),
		Location:    "Havelock Island, Andaman",
		ImageURLs:   unsplash("photo-1682687982360-3fbab65f9d50", "1740"),
	},
	{
		Title:       "Mumbai Street Food Tour",
		Description: "Taste the iconic flavors of Mumbai. A 3-hour guided evening tour sampling 8-10 classic street food dishes. Hygienic and safe.",
		Price:       decimal.NewFromInt(1800),
		Location:    "Mumbai, Maharashtra",
		ImageURLs:   unsplash("photo-1665206221363-568ea2f7b195", "1740"),
	},
}

var samplePromoCodes = []*models.PromoCode{
	{CodeText: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true},
	{CodeText: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(100), IsActive: true},
}
