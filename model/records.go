package model

import "time"

// Record holds the descriptive fields shared by employee IDs and business cards.
type Record struct {
	SubjectName string `json:"subjectName"`
	Group       string `json:"group"`
	Message     string `json:"message"`
}

// EmployeeID is a single-holder identity token. A holder owns at most one.
type EmployeeID struct {
	ObjectType    string    `json:"objectType"` // EmployeeID
	ID            uint64    `json:"id"`
	Owner         string    `json:"owner"` // Holder identity
	Record        Record    `json:"record"`
	MintedBy      string    `json:"mintedBy"`
	MintedAt      time.Time `json:"mintedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Card is a multi-holder business card anchored on an employee ID.
// Cards are immutable once minted.
type Card struct {
	ObjectType string    `json:"objectType"` // Card
	ID         uint64    `json:"id"`
	AnchorID   uint64    `json:"anchorId"` // EmployeeID token id; opaque to the card registry
	Owner      string    `json:"owner"`    // Primary holder, the only identity allowed to distribute copies
	Record     Record    `json:"record"`
	MintedBy   string    `json:"mintedBy"`
	MintedAt   time.Time `json:"mintedAt"`
}
