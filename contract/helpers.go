package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/google/uuid"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Constants for input validation and limits
const (
	maxStringInputLength = 256
	maxIdentityLength    = maxStringInputLength * 4 // Full X.509 IDs carry subject and issuer DNs
	maxRecipients        = 50
)

// getCurrentTxTimestamp retrieves the current transaction timestamp from the stub.
func getCurrentTxTimestamp(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}

// --- Validation Helper Functions ---

func validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return invalidArgument(fmt.Sprintf("%s cannot be empty", field))
	}
	if len(input) > max {
		return invalidArgument(fmt.Sprintf("%s exceeds max length %d", field, max))
	}
	return nil
}

func validateOptionalString(input, field string, max int) error {
	if input != "" && len(input) > max {
		return invalidArgument(fmt.Sprintf("%s exceeds max length %d", field, max))
	}
	return nil
}

func validateIdentity(id, field string) error {
	return validateRequiredString(id, field, maxIdentityLength)
}

// validateRecord checks record fields. Only the subject name is required.
func validateRecord(rec model.Record) error {
	if err := validateRequiredString(rec.SubjectName, "name", maxStringInputLength); err != nil {
		return err
	}
	if err := validateOptionalString(rec.Group, "group", maxStringInputLength); err != nil {
		return err
	}
	return validateOptionalString(rec.Message, "message", maxStringInputLength)
}

func validateRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return invalidArgument("recipients cannot be empty")
	}
	if len(recipients) > maxRecipients {
		return invalidArgument(fmt.Sprintf("recipients has %d items, exceeding maximum of %d", len(recipients), maxRecipients))
	}
	for i, r := range recipients {
		if err := validateIdentity(r, fmt.Sprintf("recipients[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalDoc(b []byte, v interface{}) error {
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to unmarshal ledger document: %w", err)
	}
	return nil
}

// --- Events ---

// eventNamespace seeds the name-based event ids.
var eventNamespace = uuid.MustParse("5b0f1c8e-3d7a-4f2e-9a61-0c2e8d4b7f13")

// eventID derives a stable id for an event so every endorsing peer computes the same value.
func eventID(txID, eventName string) string {
	return uuid.NewSHA1(eventNamespace, []byte(txID+"/"+eventName)).String()
}

// emitRegistryEvent sends a chaincode event. Fabric keeps only the last event
// set in a transaction, so each operation emits exactly one.
func emitRegistryEvent(ctx contractapi.TransactionContextInterface, eventName string, payload map[string]interface{}) {
	payload["eventId"] = eventID(ctx.GetStub().GetTxID(), eventName)
	now, err := getCurrentTxTimestamp(ctx)
	if err == nil {
		payload["transactionTimestamp"] = now.Format(time.RFC3339)
	}
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitRegistryEvent: Failed to marshal event payload for event '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitRegistryEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}
