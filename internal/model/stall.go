package model

import "time"

// Stall represents a food stall inside a hawker centre. Stalls are
// browseable catalog entries; photo uploads that earn loyalty points
// reference a stall. This struct corresponds to a row in the `stalls`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – hawker centre the stall trades in.
//  Name      – stall name, unique per venue.
//  Cuisine   – cuisine tag (e.g. "chicken rice", "laksa").
//  UnitNo    – unit number within the centre (nil if unknown).
//  IsActive  – whether the stall is currently trading.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Stall struct {
	ID        uint64    // stalls.id
	VenueID   uint64    // stalls.venue_id
	Name      string    // stalls.name
	Cuisine   string    // stalls.cuisine
	UnitNo    *string   // stalls.unit_no (nullable)
	IsActive  bool      // stalls.is_active
	CreatedAt time.Time // stalls.created_at
	UpdatedAt time.Time // stalls.updated_at
}
