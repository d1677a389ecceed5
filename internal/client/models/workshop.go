package models

import "fmt"

// Workshop is an accredited service workshop shown on the dashboard.
// It is never persisted.
type Workshop struct {
	Name    string
	Address string
	Phone   string
}

func (w Workshop) String() string {
	return fmt.Sprintf("%s\n  %s\n  tel: %s", w.Name, w.Address, w.Phone)
}
