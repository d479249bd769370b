package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Access-list operations shared by both contracts. Each contract exposes thin
// wrappers bound to its own registry namespace.

func initializeRegistry(ctx contractapi.TransactionContextInterface, registry string) error {
	ac := NewAccessControl(ctx, registry)
	caller, err := ac.GetCurrentIdentityFullID()
	if err != nil {
		return fmt.Errorf("Initialize: failed to get caller identity: %w", err)
	}
	if err := ac.Initialize(caller); err != nil {
		return err
	}
	emitRegistryEvent(ctx, "RegistryInitialized", map[string]interface{}{
		"registry": registry,
		"owner":    caller,
	})
	return nil
}

func addRegistryAdmin(ctx contractapi.TransactionContextInterface, registry, subject string) error {
	ac := NewAccessControl(ctx, registry)
	caller, err := ac.GetCurrentIdentityFullID()
	if err != nil {
		return fmt.Errorf("AddAdmin: failed to get caller identity: %w", err)
	}
	if err := ac.AddAdmin(caller, subject); err != nil {
		return err
	}
	emitRegistryEvent(ctx, "AdminAdded", map[string]interface{}{
		"registry": registry,
		"admin":    subject,
		"addedBy":  caller,
	})
	return nil
}

func removeRegistryAdmin(ctx contractapi.TransactionContextInterface, registry, subject string) error {
	ac := NewAccessControl(ctx, registry)
	caller, err := ac.GetCurrentIdentityFullID()
	if err != nil {
		return fmt.Errorf("RemoveAdmin: failed to get caller identity: %w", err)
	}
	if err := ac.RemoveAdmin(caller, subject); err != nil {
		return err
	}
	emitRegistryEvent(ctx, "AdminRemoved", map[string]interface{}{
		"registry":  registry,
		"admin":     subject,
		"removedBy": caller,
	})
	return nil
}

// callerOf resolves the invoking identity for a registry operation.
func callerOf(ctx contractapi.TransactionContextInterface, registry, op string) (string, error) {
	caller, err := NewAccessControl(ctx, registry).GetCurrentIdentityFullID()
	if err != nil {
		return "", fmt.Errorf("%s: failed to get caller identity: %w", op, err)
	}
	return caller, nil
}
