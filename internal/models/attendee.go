package models

import (
	"github.com/uptrace/bun"
)

// Attendee is one row of the registration roster. The roster is loaded
// from registration exports and is read-only to this service.
type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	Barcode string `bun:"barcode,pk" json:"barcode"`
	Name    string `bun:"name" json:"name"`
	ArnCode string `bun:"arn_code" json:"arn_code"`
	Mobile  string `bun:"mobile" json:"mobile"`
	Email   string `bun:"email" json:"email"`
	City    string `bun:"city" json:"city"`
}
