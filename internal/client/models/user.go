// Package models defines client-side data models used by the RevisApp CLI.
package models

import "strings"

// User is the driver profile kept in the local session and in pending
// registration records. JSON keys match records written by earlier clients.
type User struct {
	Name  string `json:"name"`
	Placa string `json:"placa"`
	Cep   string `json:"cep"`
	Email string `json:"email"`
}

// DirectoryUser is one element of the remote user list.
// CepUsuario is nil when the directory has no postal code on file.
type DirectoryUser struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	CepUsuario *string `json:"cep_usuario"`
}

// Cep returns the directory postal code or "" when it is unset.
func (d DirectoryUser) Cep() string {
	if d.CepUsuario == nil {
		return ""
	}
	return *d.CepUsuario
}

// SameEmail compares two addresses ignoring case and surrounding spaces.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
