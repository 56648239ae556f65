package model

import "time"

// Venue represents a hawker centre. A venue hosts food stalls and
// bookable tables. This struct corresponds to a row in the `venues`
// table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique name of the hawker centre.
//  Address     – street address shown to customers.
//  Description – optional blurb about the centre.
//  IsActive    – whether the venue is listed publicly.
//  CreatedAt   – timestamp when the venue was created.
//  UpdatedAt   – timestamp of last update.
type Venue struct {
	ID          uint64    // venues.id
	Name        string    // venues.name
	Address     string    // venues.address
	Description *string   // venues.description (nullable)
	IsActive    bool      // venues.is_active
	CreatedAt   time.Time // venues.created_at
	UpdatedAt   time.Time // venues.updated_at
}
