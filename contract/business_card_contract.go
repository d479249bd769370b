package contract

import (
	"github.com/TakuGaiax/Employee-NFT/metadata"
	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// BusinessCardContract exposes the business card registry.
// @contract:BusinessCard
type BusinessCardContract struct {
	contractapi.Contract
}

// NewBusinessCardContract returns the contract registered under the BusinessCard name.
func NewBusinessCardContract() *BusinessCardContract {
	return &BusinessCardContract{Contract: contractapi.Contract{Name: BusinessCardRegistry}}
}

// --- Access list ---

func (c *BusinessCardContract) Initialize(ctx contractapi.TransactionContextInterface) error {
	logger.Infof("Chaincode Call: BusinessCard.Initialize by '%s'", MustGetCallerFullID(ctx))
	return initializeRegistry(ctx, BusinessCardRegistry)
}

func (c *BusinessCardContract) AddAdmin(ctx contractapi.TransactionContextInterface, subject string) error {
	logger.Infof("Chaincode Call: BusinessCard.AddAdmin for '%s' by '%s'", subject, MustGetCallerFullID(ctx))
	return addRegistryAdmin(ctx, BusinessCardRegistry, subject)
}

func (c *BusinessCardContract) RemoveAdmin(ctx contractapi.TransactionContextInterface, subject string) error {
	logger.Infof("Chaincode Call: BusinessCard.RemoveAdmin for '%s' by '%s'", subject, MustGetCallerFullID(ctx))
	return removeRegistryAdmin(ctx, BusinessCardRegistry, subject)
}

func (c *BusinessCardContract) IsAdmin(ctx contractapi.TransactionContextInterface, subject string) (bool, error) {
	return NewAccessControl(ctx, BusinessCardRegistry).IsAdmin(subject)
}

func (c *BusinessCardContract) GetOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewAccessControl(ctx, BusinessCardRegistry).Owner()
}

func (c *BusinessCardContract) GetAdmins(ctx contractapi.TransactionContextInterface) ([]string, error) {
	return NewAccessControl(ctx, BusinessCardRegistry).GetAdmins()
}

// --- Mutations ---

// MintNewBusinessCard creates a card for holder anchored on employee ID anchorID.
func (c *BusinessCardContract) MintNewBusinessCard(ctx contractapi.TransactionContextInterface, holder string, anchorID uint64, name, group, message string) (uint64, error) {
	logger.Infof("Chaincode Call: BusinessCard.MintNewBusinessCard for '%s' anchored on %d by '%s'", holder, anchorID, MustGetCallerFullID(ctx))
	caller, err := callerOf(ctx, BusinessCardRegistry, "MintNewBusinessCard")
	if err != nil {
		return 0, err
	}
	id, err := NewCredentialRegistry(ctx).MintNew(caller, holder, anchorID, model.Record{SubjectName: name, Group: group, Message: message})
	if err != nil {
		return 0, err
	}
	emitRegistryEvent(ctx, "BusinessCardMinted", map[string]interface{}{
		"cardId":   id,
		"anchorId": anchorID,
		"holder":   holder,
		"mintedBy": caller,
	})
	return id, nil
}

// MintExistingBusinessCard hands one unit of cardID to each recipient. Only
// the card's primary holder may call it.
func (c *BusinessCardContract) MintExistingBusinessCard(ctx contractapi.TransactionContextInterface, cardID uint64, recipients []string) error {
	logger.Infof("Chaincode Call: BusinessCard.MintExistingBusinessCard for card %d to %d recipient(s) by '%s'", cardID, len(recipients), MustGetCallerFullID(ctx))
	caller, err := callerOf(ctx, BusinessCardRegistry, "MintExistingBusinessCard")
	if err != nil {
		return err
	}
	if err := NewCredentialRegistry(ctx).MintExisting(caller, cardID, recipients); err != nil {
		return err
	}
	emitRegistryEvent(ctx, "BusinessCardDistributed", map[string]interface{}{
		"cardId":     cardID,
		"from":       caller,
		"recipients": recipients,
	})
	return nil
}

// --- Metadata ---

func (c *BusinessCardContract) TokenURI(ctx contractapi.TransactionContextInterface, cardID uint64) (string, error) {
	desc, err := NewCredentialRegistry(ctx).Descriptor(cardID)
	if err != nil {
		return "", err
	}
	return desc.TokenURI()
}

func (c *BusinessCardContract) GetDescriptor(ctx contractapi.TransactionContextInterface, cardID uint64) (*metadata.Descriptor, error) {
	return NewCredentialRegistry(ctx).Descriptor(cardID)
}

func (c *BusinessCardContract) GetSVGData(ctx contractapi.TransactionContextInterface, cardID uint64) (string, error) {
	desc, err := NewCredentialRegistry(ctx).Descriptor(cardID)
	if err != nil {
		return "", err
	}
	return desc.Image, nil
}

func (c *BusinessCardContract) GetMetadataCID(ctx contractapi.TransactionContextInterface, cardID uint64) (string, error) {
	desc, err := NewCredentialRegistry(ctx).Descriptor(cardID)
	if err != nil {
		return "", err
	}
	return desc.CID()
}

// --- Queries ---

func (c *BusinessCardContract) BalanceOf(ctx contractapi.TransactionContextInterface, holder string, cardID uint64) (uint64, error) {
	return NewCredentialRegistry(ctx).BalanceOf(holder, cardID)
}

func (c *BusinessCardContract) GetTokenCount(ctx contractapi.TransactionContextInterface, holder string) (uint64, error) {
	return NewCredentialRegistry(ctx).TokenCount(holder)
}

func (c *BusinessCardContract) GetTokenIds(ctx contractapi.TransactionContextInterface, holder string) ([]uint64, error) {
	return NewCredentialRegistry(ctx).TokenIDs(holder)
}

func (c *BusinessCardContract) GetCardHolders(ctx contractapi.TransactionContextInterface, cardID uint64) ([]string, error) {
	return NewCredentialRegistry(ctx).CardHolders(cardID)
}

func (c *BusinessCardContract) CardOwner(ctx contractapi.TransactionContextInterface, cardID uint64) (string, error) {
	return NewCredentialRegistry(ctx).CardOwner(cardID)
}

func (c *BusinessCardContract) GetAllMinters(ctx contractapi.TransactionContextInterface) ([]string, error) {
	return NewCredentialRegistry(ctx).AllMinters()
}

func (c *BusinessCardContract) TotalSupply(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return NewCredentialRegistry(ctx).TotalSupply()
}
