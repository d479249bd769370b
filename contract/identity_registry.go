package contract

import (
	"fmt"

	"github.com/TakuGaiax/Employee-NFT/metadata"
	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var idLogger = flogging.MustGetLogger("employeenft.employeeid")

const employeeIDObjectType = "EmployeeID"

// IdentityRegistry holds single-holder employee ID tokens. A holder may own at
// most one token at any time.
type IdentityRegistry struct {
	Ctx    contractapi.TransactionContextInterface
	Access *AccessControl
	store  *recordStore
}

// NewIdentityRegistry creates the employee ID registry view within ctx.
func NewIdentityRegistry(ctx contractapi.TransactionContextInterface) *IdentityRegistry {
	return &IdentityRegistry{
		Ctx:    ctx,
		Access: NewAccessControl(ctx, EmployeeIDRegistry),
		store:  newRecordStore(ctx.GetStub(), EmployeeIDRegistry),
	}
}

func (r *IdentityRegistry) holderTokenKey(holder string) (string, error) {
	return r.store.key(holderTokenObjectType, holder)
}

// Mint issues a new employee ID to holder and returns its id.
func (r *IdentityRegistry) Mint(caller, holder string, rec model.Record) (uint64, error) {
	if err := r.Access.RequireAdminOrOwner(caller); err != nil {
		return 0, err
	}
	if err := validateIdentity(holder, "holder"); err != nil {
		return 0, err
	}
	has, err := r.HasToken(holder)
	if err != nil {
		return 0, err
	}
	if has {
		return 0, ErrDuplicateSubject
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
	doc := model.EmployeeID{
		ObjectType:    employeeIDObjectType,
		ID:            id,
		Owner:         holder,
		Record:        rec,
		MintedBy:      caller,
		MintedAt:      now,
		LastUpdatedBy: caller,
		LastUpdatedAt: now,
	}
	if err := r.store.putToken(id, doc); err != nil {
		return 0, err
	}
	hk, err := r.holderTokenKey(holder)
	if err != nil {
		return 0, err
	}
	r.store.put(hk, []byte(padID(id)))
	if _, err := r.store.set(mintersSet).Add(holder); err != nil {
		return 0, err
	}
	if err := r.store.commit(); err != nil {
		return 0, fmt.Errorf("failed to save employee ID %d for '%s': %w", id, holder, err)
	}
	idLogger.Infof("Employee ID %d minted to '%s' by '%s'.", id, holder, caller)
	return id, nil
}

// Update overwrites the descriptive fields of token id. Owner and id never change.
func (r *IdentityRegistry) Update(caller string, id uint64, rec model.Record) error {
	if err := r.Access.RequireAdminOrOwner(caller); err != nil {
		return err
	}
	doc, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := validateRecord(rec); err != nil {
		return err
	}
	now, err := getCurrentTxTimestamp(r.Ctx)
	if err != nil {
		return err
	}
	doc.Record = rec
	doc.LastUpdatedBy = caller
	doc.LastUpdatedAt = now
	if err := r.store.putToken(id, doc); err != nil {
		return err
	}
	if err := r.store.commit(); err != nil {
		return fmt.Errorf("failed to save employee ID %d: %w", id, err)
	}
	idLogger.Infof("Employee ID %d updated by '%s'.", id, caller)
	return nil
}

// Get returns token id or ErrInvalidToken.
func (r *IdentityRegistry) Get(id uint64) (*model.EmployeeID, error) {
	var doc model.EmployeeID
	found, err := r.store.getToken(id, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read employee ID %d: %w", id, err)
	}
	if !found {
		return nil, ErrInvalidToken
	}
	return &doc, nil
}

// Descriptor renders the metadata of token id from its current record.
func (r *IdentityRegistry) Descriptor(id uint64) (*metadata.Descriptor, error) {
	doc, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return metadata.Render(metadata.EmployeeIDTemplate, doc.Record), nil
}

// OwnerOf returns the holder of token id.
func (r *IdentityRegistry) OwnerOf(id uint64) (string, error) {
	doc, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return doc.Owner, nil
}

// HasToken reports whether holder owns an employee ID.
func (r *IdentityRegistry) HasToken(holder string) (bool, error) {
	hk, err := r.holderTokenKey(holder)
	if err != nil {
		return false, err
	}
	b, err := r.store.get(hk)
	if err != nil {
		return false, fmt.Errorf("failed to check employee ID of '%s': %w", holder, err)
	}
	return b != nil, nil
}

// TokenOf returns the id of the employee ID owned by holder.
func (r *IdentityRegistry) TokenOf(holder string) (uint64, error) {
	hk, err := r.holderTokenKey(holder)
	if err != nil {
		return 0, err
	}
	b, err := r.store.get(hk)
	if err != nil {
		return 0, fmt.Errorf("failed to read employee ID of '%s': %w", holder, err)
	}
	if b == nil {
		return 0, ErrInvalidToken
	}
	return parseID(string(b))
}

// AllMinters lists every holder that was ever issued an employee ID, in first-mint order.
func (r *IdentityRegistry) AllMinters() ([]string, error) {
	return r.store.set(mintersSet).Members()
}

// TotalSupply is the number of employee IDs ever minted.
func (r *IdentityRegistry) TotalSupply() (uint64, error) {
	return r.store.totalSupply()
}
