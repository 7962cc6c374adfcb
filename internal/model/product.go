package model

import "time"

// Product is a single catalog item. The catalog is read-only: products are
// immutable for the lifetime of a session.
type Product struct {
	ID                     string    `json:"id" yaml:"id"`
	Name                   string    `json:"name" yaml:"name"`
	Description            string    `json:"description" yaml:"description"`
	Price                  float64   `json:"price" yaml:"price"`
	ImageURL               string    `json:"imageUrl" yaml:"imageUrl"`
	Category               string    `json:"category" yaml:"category"`
	Tags                   []string  `json:"tags" yaml:"tags"`
	SellerID               string    `json:"sellerId" yaml:"sellerId"`
	SellerName             string    `json:"sellerName" yaml:"sellerName"`
	Stock                  int       `json:"stock" yaml:"stock"`
	Rating                 float64   `json:"rating" yaml:"rating"`
	ReviewCount            int       `json:"reviewCount" yaml:"reviewCount"`
	CreatedAt              time.Time `json:"createdAt" yaml:"createdAt"`
	SustainabilityFeatures []string  `json:"sustainabilityFeatures" yaml:"sustainabilityFeatures"`
	Materials              []string  `json:"materials" yaml:"materials"`
	Featured               bool      `json:"featured" yaml:"featured"`
}
