// File: model/identities.go
package model

import "time"

// RegistryInfo is the singleton document written when a registry is initialized.
type RegistryInfo struct {
	ObjectType    string    `json:"objectType"`    // Set to the composite key object type (RegistryInfo)
	Registry      string    `json:"registry"`      // Registry namespace, e.g. EmployeeId or BusinessCard
	Owner         string    `json:"owner"`         // Full X.509 identity of the owner, fixed at initialization
	InitializedAt time.Time `json:"initializedAt"` // Transaction timestamp of initialization
}

// AdminEntry records a single member of a registry's admin allow-list.
type AdminEntry struct {
	ObjectType string    `json:"objectType"` // Set to the composite key object type (AdminEntry)
	Registry   string    `json:"registry"`
	FullID     string    `json:"fullId"`  // Full X.509 identity of the admin
	AddedBy    string    `json:"addedBy"` // Always the registry owner
	AddedAt    time.Time `json:"addedAt"`
}
