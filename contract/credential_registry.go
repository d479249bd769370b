package contract

import (
	"fmt"

	"github.com/TakuGaiax/Employee-NFT/metadata"
	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var cardLogger = flogging.MustGetLogger("employeenft.businesscard")

const cardObjectType = "Card"

// CredentialRegistry holds multi-holder business cards. Each card is minted to
// a primary holder, who alone may distribute further units of it.
type CredentialRegistry struct {
	Ctx    contractapi.TransactionContextInterface
	Access *AccessControl
	store  *recordStore
}

// NewCredentialRegistry creates the business card registry view within ctx.
func NewCredentialRegistry(ctx contractapi.TransactionContextInterface) *CredentialRegistry {
	return &CredentialRegistry{
		Ctx:    ctx,
		Access: NewAccessControl(ctx, BusinessCardRegistry),
		store:  newRecordStore(ctx.GetStub(), BusinessCardRegistry),
	}
}

func (r *CredentialRegistry) balanceKey(holder string, cardID uint64) (string, error) {
	return r.store.key(balanceObjectType, holder, padID(cardID))
}

// credit adds one unit of cardID to holder and records the holder in the
// per-card, per-holder and global audit sets.
func (r *CredentialRegistry) credit(holder string, cardID uint64) error {
	bk, err := r.balanceKey(holder, cardID)
	if err != nil {
		return err
	}
	bal, err := r.store.getUint(bk)
	if err != nil {
		return err
	}
	r.store.putUint(bk, bal+1)
	if _, err := r.store.set(holderCardsSet, holder).Add(padID(cardID)); err != nil {
		return err
	}
	if _, err := r.store.set(cardHoldersSet, padID(cardID)).Add(holder); err != nil {
		return err
	}
	_, err = r.store.set(mintersSet).Add(holder)
	return err
}

// MintNew creates a card for holder anchored on an employee ID token and
// returns the card id. The anchor is stored as given; callers validate it
// against the identity registry.
func (r *CredentialRegistry) MintNew(caller, holder string, anchorID uint64, rec model.Record) (uint64, error) {
	if err := r.Access.RequireAdminOrOwner(caller); err != nil {
		return 0, err
	}
	if err := validateIdentity(holder, "holder"); err != nil {
		return 0, err
	}
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	now, err := getCurrentTxTimestamp(r.Ctx)
	if err != nil {
		return 0, err
	}
	id, err := r.store.nextID()
	if err != nil {
		return 0, err
	}
	card := model.Card{
		ObjectType: cardObjectType,
		ID:         id,
		AnchorID:   anchorID,
		Owner:      holder,
		Record:     rec,
		MintedBy:   caller,
		MintedAt:   now,
	}
	if err := r.store.putToken(id, card); err != nil {
		return 0, err
	}
	if err := r.credit(holder, id); err != nil {
		return 0, err
	}
	if err := r.store.commit(); err != nil {
		return 0, fmt.Errorf("failed to save business card %d for '%s': %w", id, holder, err)
	}
	cardLogger.Infof("Business card %d (anchor %d) minted to '%s' by '%s'.", id, anchorID, holder, caller)
	return id, nil
}

// MintExisting distributes one unit of cardID to every recipient, in order.
// Only the card's primary holder may distribute. A recipient listed twice, or
// one who already holds the card, receives another unit. The batch is
// validated in full before anything is written.
func (r *CredentialRegistry) MintExisting(caller string, cardID uint64, recipients []string) error {
	var card model.Card
	found, err := r.store.getToken(cardID, &card)
	if err != nil {
		return fmt.Errorf("failed to read business card %d: %w", cardID, err)
	}
	// A card that does not exist has no owner, so nobody may distribute it.
	if !found || card.Owner != caller {
		return ErrNotTokenOwner
	}
	if err := validateRecipients(recipients); err != nil {
		return err
	}
	for _, recipient := range recipients {
		if err := r.credit(recipient, cardID); err != nil {
			return err
		}
	}
	if err := r.store.commit(); err != nil {
		return fmt.Errorf("failed to save distribution of business card %d: %w", cardID, err)
	}
	cardLogger.Infof("Business card %d distributed by '%s' to %d recipient(s).", cardID, caller, len(recipients))
	return nil
}

// Get returns card cardID or ErrInvalidToken.
func (r *CredentialRegistry) Get(cardID uint64) (*model.Card, error) {
	var card model.Card
	found, err := r.store.getToken(cardID, &card)
	if err != nil {
		return nil, fmt.Errorf("failed to read business card %d: %w", cardID, err)
	}
	if !found {
		return nil, ErrInvalidToken
	}
	return &card, nil
}

// Descriptor renders the metadata of card cardID.
func (r *CredentialRegistry) Descriptor(cardID uint64) (*metadata.Descriptor, error) {
	card, err := r.Get(cardID)
	if err != nil {
		return nil, err
	}
	return metadata.Render(metadata.BusinessCardTemplate, card.Record), nil
}

// BalanceOf returns how many units of cardID holder owns. Unknown pairs are 0.
func (r *CredentialRegistry) BalanceOf(holder string, cardID uint64) (uint64, error) {
	bk, err := r.balanceKey(holder, cardID)
	if err != nil {
		return 0, err
	}
	return r.store.getUint(bk)
}

// TokenCount returns the number of distinct cards holder has received.
func (r *CredentialRegistry) TokenCount(holder string) (uint64, error) {
	return r.store.set(holderCardsSet, holder).Len()
}

// TokenIDs lists the distinct cards holder has received, in first-receipt order.
func (r *CredentialRegistry) TokenIDs(holder string) ([]uint64, error) {
	members, err := r.store.set(holderCardsSet, holder).Members()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := parseID(m)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CardHolders lists the holders of cardID, primary holder first.
func (r *CredentialRegistry) CardHolders(cardID uint64) ([]string, error) {
	if _, err := r.Get(cardID); err != nil {
		return nil, err
	}
	return r.store.set(cardHoldersSet, padID(cardID)).Members()
}

// CardOwner returns the primary holder of cardID.
func (r *CredentialRegistry) CardOwner(cardID uint64) (string, error) {
	card, err := r.Get(cardID)
	if err != nil {
		return "", err
	}
	return card.Owner, nil
}

// AllMinters lists every identity that ever held a card, in first-receipt order.
func (r *CredentialRegistry) AllMinters() ([]string, error) {
	return r.store.set(mintersSet).Members()
}

// TotalSupply is the number of distinct cards ever minted.
func (r *CredentialRegistry) TotalSupply() (uint64, error) {
	return r.store.totalSupply()
}
