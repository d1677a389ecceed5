package kv

import "github.com/dmitrijs2005/revisapp/internal/common"

// Storage keys. Values are kept identical to the browser client so data
// exported from it stays readable.
const (
	KeySession    = "revisapp_user"
	KeyLastUser   = "revisapp_last_user"
	KeyFirstVisit = "revisapp_first_visit"
	KeyLogs       = "revisapp_logs"

	registrationPrefix = "revisapp_reg_"
)

// RegistrationKey is the pending-registration key for email. The address
// is normalised so lookups ignore case.
func RegistrationKey(email string) string {
	return registrationPrefix + common.NormalizeEmail(email)
}
