package contract

import (
	"github.com/TakuGaiax/Employee-NFT/metadata"
	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("employeenft.contract")

// EmployeeIDContract exposes the employee ID registry.
// @contract:EmployeeId
type EmployeeIDContract struct {
	contractapi.Contract
}

// NewEmployeeIDContract returns the contract registered under the EmployeeId name.
func NewEmployeeIDContract() *EmployeeIDContract {
	return &EmployeeIDContract{Contract: contractapi.Contract{Name: EmployeeIDRegistry}}
}

// --- Access list ---

// Initialize makes the caller the owner of the registry. It can be called once.
func (c *EmployeeIDContract) Initialize(ctx contractapi.TransactionContextInterface) error {
	logger.Infof("Chaincode Call: EmployeeId.Initialize by '%s'", MustGetCallerFullID(ctx))
	return initializeRegistry(ctx, EmployeeIDRegistry)
}

func (c *EmployeeIDContract) AddAdmin(ctx contractapi.TransactionContextInterface, subject string) error {
	logger.Infof("Chaincode Call: EmployeeId.AddAdmin for '%s' by '%s'", subject, MustGetCallerFullID(ctx))
	return addRegistryAdmin(ctx, EmployeeIDRegistry, subject)
}

func (c *EmployeeIDContract) RemoveAdmin(ctx contractapi.TransactionContextInterface, subject string) error {
	logger.Infof("Chaincode Call: EmployeeId.RemoveAdmin for '%s' by '%s'", subject, MustGetCallerFullID(ctx))
	return removeRegistryAdmin(ctx, EmployeeIDRegistry, subject)
}

func (c *EmployeeIDContract) IsAdmin(ctx contractapi.TransactionContextInterface, subject string) (bool, error) {
	return NewAccessControl(ctx, EmployeeIDRegistry).IsAdmin(subject)
}

func (c *EmployeeIDContract) GetOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewAccessControl(ctx, EmployeeIDRegistry).Owner()
}

func (c *EmployeeIDContract) GetAdmins(ctx contractapi.TransactionContextInterface) ([]string, error) {
	return NewAccessControl(ctx, EmployeeIDRegistry).GetAdmins()
}

// --- Mutations ---

// MintEmployeeID issues an employee ID to holder. Admins and the owner only.
func (c *EmployeeIDContract) MintEmployeeID(ctx contractapi.TransactionContextInterface, holder, name, group, message string) (uint64, error) {
	logger.Infof("Chaincode Call: EmployeeId.MintEmployeeID for '%s' by '%s'", holder, MustGetCallerFullID(ctx))
	caller, err := callerOf(ctx, EmployeeIDRegistry, "MintEmployeeID")
	if err != nil {
		return 0, err
	}
	reg := NewIdentityRegistry(ctx)
	id, err := reg.Mint(caller, holder, model.Record{SubjectName: name, Group: group, Message: message})
	if err != nil {
		return 0, err
	}
	emitRegistryEvent(ctx, "EmployeeIdMinted", map[string]interface{}{
		"tokenId":  id,
		"holder":   holder,
		"mintedBy": caller,
	})
	return id, nil
}

// UpdateEmployeeInfo rewrites the name, group and message of an employee ID.
func (c *EmployeeIDContract) UpdateEmployeeInfo(ctx contractapi.TransactionContextInterface, tokenID uint64, name, group, message string) error {
	logger.Infof("Chaincode Call: EmployeeId.UpdateEmployeeInfo for token %d by '%s'", tokenID, MustGetCallerFullID(ctx))
	caller, err := callerOf(ctx, EmployeeIDRegistry, "UpdateEmployeeInfo")
	if err != nil {
		return err
	}
	if err := NewIdentityRegistry(ctx).Update(caller, tokenID, model.Record{SubjectName: name, Group: group, Message: message}); err != nil {
		return err
	}
	emitRegistryEvent(ctx, "EmployeeIdUpdated", map[string]interface{}{
		"tokenId":   tokenID,
		"updatedBy": caller,
	})
	return nil
}

// --- Metadata ---

// TokenURI returns the token metadata as a base64 JSON data URI.
func (c *EmployeeIDContract) TokenURI(ctx contractapi.TransactionContextInterface, tokenID uint64) (string, error) {
	desc, err := NewIdentityRegistry(ctx).Descriptor(tokenID)
	if err != nil {
		return "", err
	}
	return desc.TokenURI()
}

func (c *EmployeeIDContract) GetDescriptor(ctx contractapi.TransactionContextInterface, tokenID uint64) (*metadata.Descriptor, error) {
	return NewIdentityRegistry(ctx).Descriptor(tokenID)
}

// GetSVGData returns the card image of the token as a base64 SVG data URI.
func (c *EmployeeIDContract) GetSVGData(ctx contractapi.TransactionContextInterface, tokenID uint64) (string, error) {
	desc, err := NewIdentityRegistry(ctx).Descriptor(tokenID)
	if err != nil {
		return "", err
	}
	return desc.Image, nil
}

// GetMetadataCID returns the IPFS CID of the token's current descriptor.
func (c *EmployeeIDContract) GetMetadataCID(ctx contractapi.TransactionContextInterface, tokenID uint64) (string, error) {
	desc, err := NewIdentityRegistry(ctx).Descriptor(tokenID)
	if err != nil {
		return "", err
	}
	return desc.CID()
}

// --- Queries ---

func (c *EmployeeIDContract) GetAllMinters(ctx contractapi.TransactionContextInterface) ([]string, error) {
	return NewIdentityRegistry(ctx).AllMinters()
}

func (c *EmployeeIDContract) OwnerOf(ctx contractapi.TransactionContextInterface, tokenID uint64) (string, error) {
	return NewIdentityRegistry(ctx).OwnerOf(tokenID)
}

func (c *EmployeeIDContract) TokenOf(ctx contractapi.TransactionContextInterface, holder string) (uint64, error) {
	return NewIdentityRegistry(ctx).TokenOf(holder)
}

func (c *EmployeeIDContract) HasToken(ctx contractapi.TransactionContextInterface, holder string) (bool, error) {
	return NewIdentityRegistry(ctx).HasToken(holder)
}

func (c *EmployeeIDContract) TotalSupply(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return NewIdentityRegistry(ctx).TotalSupply()
}
