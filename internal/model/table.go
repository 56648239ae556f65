package model

import "time"

// Table describes a physical bookable table at a hawker centre.
// Tables are identified by a label such as "A12" that is printed on
// the table itself. Reservations always target a single table.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – hawker centre the table belongs to.
//  Label     – printed table label, unique per venue.
//  Capacity  – number of seats at the table.
//  IsActive  – whether the table can be booked.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Table struct {
	ID        uint64    // tables.id
	VenueID   uint64    // tables.venue_id
	Label     string    // tables.label
	Capacity  uint32    // tables.capacity
	IsActive  bool      // tables.is_active
	CreatedAt time.Time // tables.created_at
	UpdatedAt time.Time // tables.updated_at
}
