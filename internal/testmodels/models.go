/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds the entity types shared by the EntityMap tests.
package testmodels

import "github.com/go-openapi/strfmt"

// Entity is the common base of the other models.
type Entity struct {
	// Unique identifier.
	ID int64 `json:"Id"`

	// Format: date-time
	CreatedAt strfmt.DateTime `json:"CreatedAt"`

	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

// Customer embeds Entity, so ID, CreatedAt and UpdatedAt are promoted properties.
type Customer struct {
	Entity

	Name   string `json:"Name"`
	Email  string `json:"Email"`
	Region string `json:"Region,omitempty"`
}

// Order references a Customer.
type Order struct {
	// Format: uuid
	OrderID strfmt.UUID `json:"OrderId"`

	CustomerID int64   `json:"CustomerId"`
	Total      float64 `json:"Total"`
	Status     string  `json:"Status"`

	// Format: date
	PlacedOn strfmt.Date `json:"PlacedOn"`
}

// RatingSystem is a model with optional (pointer) fields.
type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty"`
}
