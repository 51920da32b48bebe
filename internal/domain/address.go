package domain

import "strings"

// Address is an embedded value type shared by members and deliveries.
type Address struct {
	City    string `gorm:"column:city" json:"city"`
	Street  string `gorm:"column:street" json:"street"`
	Zipcode string `gorm:"column:zipcode" json:"zipcode"`
}

func (a Address) IsZero() bool {
	return strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.Zipcode) == ""
}
