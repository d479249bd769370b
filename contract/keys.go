package contract

import (
	"fmt"
	"strconv"
)

// Registry namespaces. Each registry keeps its own access list and records.
const (
	EmployeeIDRegistry   = "EmployeeId"
	BusinessCardRegistry = "BusinessCard"
)

// Object types for composite keys. The first attribute is always the registry namespace.
const (
	registryObjectType    = "RegistryInfo" // Singleton RegistryInfo. No further attributes.
	adminObjectType       = "AdminEntry"   // AdminEntry. Attribute: FullID.
	counterObjectType     = "Counter"      // Decimal counter. Attributes: name, scope...
	tokenObjectType       = "Token"        // EmployeeID or Card document. Attribute: padded id.
	holderTokenObjectType = "HolderToken"  // Uniqueness index holder -> token id. Attribute: holder.
	balanceObjectType     = "Balance"      // Decimal balance. Attributes: holder, padded card id.
	setMemberObjectType   = "SetMember"    // Ordered-set membership marker. Attributes: set, scope..., member.
	setIndexObjectType    = "SetIndex"     // Ordered-set position -> member. Attributes: set, scope..., padded position.
)

// Ordered-set and counter names.
const (
	tokenCounter   = "tokens"
	mintersSet     = "minters"     // Every holder that ever received a token, first-mint order
	holderCardsSet = "holderCards" // scope: holder. Card ids held, first-receipt order
	cardHoldersSet = "cardHolders" // scope: padded card id. Holders of a card, first-receipt order
)

// padID renders ids with a fixed width so composite-key range scans return them in numeric order.
func padID(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed id '%s' in ledger: %w", s, err)
	}
	return id, nil
}
