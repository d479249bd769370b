package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TakuGaiax/Employee-NFT/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var accessLogger = flogging.MustGetLogger("employeenft.access")

// Role is the privilege a caller holds on a registry.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// AccessControl is the owner + admin allow-list of a single registry.
type AccessControl struct {
	Ctx      contractapi.TransactionContextInterface
	registry string
	store    *recordStore
}

// NewAccessControl creates the access list view for registry within ctx.
func NewAccessControl(ctx contractapi.TransactionContextInterface, registry string) *AccessControl {
	return &AccessControl{Ctx: ctx, registry: registry, store: newRecordStore(ctx.GetStub(), registry)}
}

// --- Internal Helper Functions ---

func isValidX509ID(id string) bool {
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6") // "eDUwOTo6" is "x509::" base64 encoded
}

func (ac *AccessControl) registryInfo() (*model.RegistryInfo, error) {
	k, err := ac.store.key(registryObjectType)
	if err != nil {
		return nil, err
	}
	var info model.RegistryInfo
	found, err := ac.store.getJSON(k, &info)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s registry info: %w", ac.registry, err)
	}
	if !found {
		return nil, nil
	}
	return &info, nil
}

// --- Caller identity ---

// GetCurrentIdentityFullID retrieves the full X.509 ID of the current transactor.
func (ac *AccessControl) GetCurrentIdentityFullID() (string, error) {
	clientIdentity := ac.Ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return "", errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		accessLogger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	return id, nil
}

// MustGetCallerFullID returns the caller's ID, or a placeholder on error. For logging only.
func MustGetCallerFullID(ctx contractapi.TransactionContextInterface) string {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		accessLogger.Error("MustGetCallerFullID: Client identity is nil from context. Returning placeholder.")
		return "ERROR_NIL_CLIENT_IDENTITY"
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		accessLogger.Errorf("MustGetCallerFullID: Failed to get client identity ID: %v. Returning placeholder.", err)
		return "ERROR_GETTING_CALLER_ID"
	}
	if id == "" {
		accessLogger.Error("MustGetCallerFullID: Client identity ID from context is empty. Returning placeholder.")
		return "ERROR_EMPTY_CALLER_ID"
	}
	return id
}

// --- Lifecycle ---

// Initialize makes caller the registry owner. It can succeed only once.
func (ac *AccessControl) Initialize(caller string) error {
	info, err := ac.registryInfo()
	if err != nil {
		return err
	}
	if info != nil {
		return ErrAlreadyInitialized
	}
	now, err := getCurrentTxTimestamp(ac.Ctx)
	if err != nil {
		return err
	}
	k, err := ac.store.key(registryObjectType)
	if err != nil {
		return err
	}
	if err := ac.store.putJSON(k, model.RegistryInfo{
		ObjectType:    registryObjectType,
		Registry:      ac.registry,
		Owner:         caller,
		InitializedAt: now,
	}); err != nil {
		return err
	}
	if err := ac.store.commit(); err != nil {
		return err
	}
	accessLogger.Infof("Registry '%s' initialized. Owner is '%s'.", ac.registry, caller)
	return nil
}

// Owner returns the registry owner.
func (ac *AccessControl) Owner() (string, error) {
	info, err := ac.registryInfo()
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", fmt.Errorf("registry '%s' is not initialized", ac.registry)
	}
	return info.Owner, nil
}

// --- Role checks ---

// RoleOf resolves the privilege of caller. An uninitialized registry has no owner.
func (ac *AccessControl) RoleOf(caller string) (Role, error) {
	info, err := ac.registryInfo()
	if err != nil {
		return RoleNone, err
	}
	if info != nil && info.Owner == caller {
		return RoleOwner, nil
	}
	isAdmin, err := ac.IsAdmin(caller)
	if err != nil {
		return RoleNone, err
	}
	if isAdmin {
		return RoleAdmin, nil
	}
	return RoleNone, nil
}

// IsOwner reports whether caller is the registry owner.
func (ac *AccessControl) IsOwner(caller string) (bool, error) {
	role, err := ac.RoleOf(caller)
	return role == RoleOwner, err
}

// IsAdmin reports membership of the admin set. The owner is not a member
// unless explicitly added.
func (ac *AccessControl) IsAdmin(subject string) (bool, error) {
	k, err := ac.store.key(adminObjectType, subject)
	if err != nil {
		return false, err
	}
	b, err := ac.store.get(k)
	if err != nil {
		return false, fmt.Errorf("ledger error checking admin entry for '%s': %w", subject, err)
	}
	return b != nil, nil
}

// RequireAdminOrOwner fails with ErrUnauthorized unless caller is the owner or an admin.
func (ac *AccessControl) RequireAdminOrOwner(caller string) error {
	role, err := ac.RoleOf(caller)
	if err != nil {
		return fmt.Errorf("failed to verify caller role: %w", err)
	}
	if role == RoleNone {
		return ErrUnauthorized
	}
	accessLogger.Debugf("Caller '%s' authorized on '%s' as %s.", caller, ac.registry, role)
	return nil
}

func (ac *AccessControl) requireOwner(caller string) error {
	isOwner, err := ac.IsOwner(caller)
	if err != nil {
		return fmt.Errorf("failed to verify caller ownership: %w", err)
	}
	if !isOwner {
		return ErrUnauthorized
	}
	return nil
}

// --- Admin set management ---

// AddAdmin adds subject to the admin set. Only the owner may do so. Adding an
// existing admin succeeds without changes.
func (ac *AccessControl) AddAdmin(caller, subject string) error {
	if err := ac.requireOwner(caller); err != nil {
		return err
	}
	if err := validateIdentity(subject, "admin"); err != nil {
		return err
	}
	already, err := ac.IsAdmin(subject)
	if err != nil {
		return err
	}
	if already {
		accessLogger.Infof("Identity '%s' is already an admin of '%s'. No action needed.", subject, ac.registry)
		return nil
	}
	now, err := getCurrentTxTimestamp(ac.Ctx)
	if err != nil {
		return err
	}
	k, err := ac.store.key(adminObjectType, subject)
	if err != nil {
		return err
	}
	if err := ac.store.putJSON(k, model.AdminEntry{
		ObjectType: adminObjectType,
		Registry:   ac.registry,
		FullID:     subject,
		AddedBy:    caller,
		AddedAt:    now,
	}); err != nil {
		return err
	}
	if err := ac.store.commit(); err != nil {
		return err
	}
	accessLogger.Infof("Identity '%s' has been made an admin of '%s' by '%s'.", subject, ac.registry, caller)
	return nil
}

// RemoveAdmin removes subject from the admin set. Only the owner may do so,
// and the owner itself can never be removed.
func (ac *AccessControl) RemoveAdmin(caller, subject string) error {
	if err := ac.requireOwner(caller); err != nil {
		return err
	}
	if subject == caller {
		return invalidArgument("owner cannot be removed from the admin set")
	}
	isAdmin, err := ac.IsAdmin(subject)
	if err != nil {
		return err
	}
	if !isAdmin {
		accessLogger.Infof("Identity '%s' is not an admin of '%s'. No action taken for removal.", subject, ac.registry)
		return nil
	}
	k, err := ac.store.key(adminObjectType, subject)
	if err != nil {
		return err
	}
	ac.store.del(k)
	if err := ac.store.commit(); err != nil {
		return err
	}
	accessLogger.Infof("Admin privileges removed from '%s' on '%s' by '%s'.", subject, ac.registry, caller)
	return nil
}

// GetAdmins lists the admin set, ordered by identity.
func (ac *AccessControl) GetAdmins() ([]string, error) {
	values, err := ac.store.scan(adminObjectType)
	if err != nil {
		return nil, err
	}
	admins := []string{}
	for _, v := range values {
		var entry model.AdminEntry
		if err := unmarshalDoc(v, &entry); err != nil {
			return nil, fmt.Errorf("failed to read %s admin entry: %w", ac.registry, err)
		}
		admins = append(admins, entry.FullID)
	}
	return admins, nil
}
