package contract

import "errors"

// ErrorKind classifies a registry failure. The peer only relays the error
// string to clients, so each kind also has a fixed, stable message.
type ErrorKind string

const (
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindDuplicateSubject   ErrorKind = "DuplicateSubject"
	KindInvalidToken       ErrorKind = "InvalidToken"
	KindNotTokenOwner      ErrorKind = "NotTokenOwner"
	KindInvalidArgument    ErrorKind = "InvalidArgument"
	KindAlreadyInitialized ErrorKind = "AlreadyInitialized"
)

// Client-visible failure messages.
const (
	msgNonOwner           = "non-owner"
	msgDuplicateSubject   = "Employee already has an ID NFT"
	msgInvalidToken       = "Invalid token"
	msgNotTokenOwner      = "You are not token owner"
	msgAlreadyInitialized = "registry already initialized"
)

// RegistryError is returned for every rule violation. Error() is the message
// alone, with no prefixes, so clients can match it exactly.
type RegistryError struct {
	Kind    ErrorKind
	Message string
}

func (e *RegistryError) Error() string { return e.Message }

// Is reports whether target is a RegistryError of the same kind, so that
// errors.Is(err, ErrUnauthorized) works regardless of message.
func (e *RegistryError) Is(target error) bool {
	var re *RegistryError
	if !errors.As(target, &re) {
		return false
	}
	return re.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthorized       = &RegistryError{Kind: KindUnauthorized, Message: msgNonOwner}
	ErrDuplicateSubject   = &RegistryError{Kind: KindDuplicateSubject, Message: msgDuplicateSubject}
	ErrInvalidToken       = &RegistryError{Kind: KindInvalidToken, Message: msgInvalidToken}
	ErrNotTokenOwner      = &RegistryError{Kind: KindNotTokenOwner, Message: msgNotTokenOwner}
	ErrInvalidArgument    = &RegistryError{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrAlreadyInitialized = &RegistryError{Kind: KindAlreadyInitialized, Message: msgAlreadyInitialized}
)

func invalidArgument(msg string) error {
	return &RegistryError{Kind: KindInvalidArgument, Message: msg}
}

// KindOf returns the kind of a registry error, or "" for anything else
// (ledger failures, encoding errors).
func KindOf(err error) ErrorKind {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
