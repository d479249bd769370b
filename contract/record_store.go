package contract

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// recordStore is the ledger-backed state of one registry.
//
// Writes are buffered and only reach the stub on commit, after every check of
// an operation has passed. Reads see buffered writes first, which gives
// read-your-writes inside a transaction (Fabric itself does not) and makes
// every operation all-or-nothing.
type recordStore struct {
	stub     shim.ChaincodeStubInterface
	registry string
	pending  map[string][]byte
	order    []string
}

func newRecordStore(stub shim.ChaincodeStubInterface, registry string) *recordStore {
	return &recordStore{stub: stub, registry: registry, pending: map[string][]byte{}}
}

func (rs *recordStore) key(objectType string, attrs ...string) (string, error) {
	k, err := rs.stub.CreateCompositeKey(objectType, append([]string{rs.registry}, attrs...))
	if err != nil {
		return "", fmt.Errorf("failed to create %s composite key: %w", objectType, err)
	}
	return k, nil
}

func (rs *recordStore) get(key string) ([]byte, error) {
	if v, ok := rs.pending[key]; ok {
		return v, nil
	}
	v, err := rs.stub.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("ledger error reading key: %w", err)
	}
	return v, nil
}

func (rs *recordStore) put(key string, value []byte) {
	if _, ok := rs.pending[key]; !ok {
		rs.order = append(rs.order, key)
	}
	rs.pending[key] = value
}

func (rs *recordStore) getJSON(key string, v interface{}) (bool, error) {
	b, err := rs.get(key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal ledger document: %w", err)
	}
	return true, nil
}

func (rs *recordStore) putJSON(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger document: %w", err)
	}
	rs.put(key, b)
	return nil
}

func (rs *recordStore) getUint(key string) (uint64, error) {
	b, err := rs.get(key)
	if err != nil || b == nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed counter in ledger: %w", err)
	}
	return n, nil
}

func (rs *recordStore) putUint(key string, n uint64) {
	rs.put(key, []byte(strconv.FormatUint(n, 10)))
}

func (rs *recordStore) del(key string) {
	rs.put(key, nil)
}

// commit flushes buffered writes in first-write order. A nil value deletes the key.
func (rs *recordStore) commit() error {
	for _, k := range rs.order {
		v := rs.pending[k]
		if v == nil {
			if err := rs.stub.DelState(k); err != nil {
				return fmt.Errorf("failed to delete ledger state: %w", err)
			}
			continue
		}
		if err := rs.stub.PutState(k, v); err != nil {
			return fmt.Errorf("failed to write ledger state: %w", err)
		}
	}
	rs.pending = map[string][]byte{}
	rs.order = nil
	return nil
}

// scan returns committed values under a partial composite key, in key order.
func (rs *recordStore) scan(objectType string, attrs ...string) ([][]byte, error) {
	it, err := rs.stub.GetStateByPartialCompositeKey(objectType, append([]string{rs.registry}, attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", objectType, err)
	}
	defer it.Close()

	values := [][]byte{}
	for it.HasNext() {
		kv, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s records: %w", objectType, err)
		}
		values = append(values, kv.Value)
	}
	return values, nil
}

// --- Token documents ---

// nextID reserves the next sequential token id. Ids start at 0 and are never reused.
func (rs *recordStore) nextID() (uint64, error) {
	k, err := rs.key(counterObjectType, tokenCounter)
	if err != nil {
		return 0, err
	}
	id, err := rs.getUint(k)
	if err != nil {
		return 0, err
	}
	rs.putUint(k, id+1)
	return id, nil
}

func (rs *recordStore) totalSupply() (uint64, error) {
	k, err := rs.key(counterObjectType, tokenCounter)
	if err != nil {
		return 0, err
	}
	return rs.getUint(k)
}

func (rs *recordStore) getToken(id uint64, v interface{}) (bool, error) {
	k, err := rs.key(tokenObjectType, padID(id))
	if err != nil {
		return false, err
	}
	return rs.getJSON(k, v)
}

func (rs *recordStore) putToken(id uint64, v interface{}) error {
	k, err := rs.key(tokenObjectType, padID(id))
	if err != nil {
		return err
	}
	return rs.putJSON(k, v)
}

// --- Ordered sets ---

// orderedSet is an append-only set of strings that remembers insertion order.
// Membership is a marker key; order is a zero-padded position index.
type orderedSet struct {
	rs    *recordStore
	name  string
	scope []string
}

func (rs *recordStore) set(name string, scope ...string) orderedSet {
	return orderedSet{rs: rs, name: name, scope: scope}
}

func (s orderedSet) attrs(extra ...string) []string {
	out := append([]string{s.name}, s.scope...)
	return append(out, extra...)
}

func (s orderedSet) Contains(member string) (bool, error) {
	k, err := s.rs.key(setMemberObjectType, s.attrs(member)...)
	if err != nil {
		return false, err
	}
	b, err := s.rs.get(k)
	return b != nil, err
}

func (s orderedSet) Len() (uint64, error) {
	k, err := s.rs.key(counterObjectType, s.attrs()...)
	if err != nil {
		return 0, err
	}
	return s.rs.getUint(k)
}

// Add appends member if absent and reports whether it was added.
func (s orderedSet) Add(member string) (bool, error) {
	present, err := s.Contains(member)
	if err != nil || present {
		return false, err
	}
	n, err := s.Len()
	if err != nil {
		return false, err
	}
	markerKey, err := s.rs.key(setMemberObjectType, s.attrs(member)...)
	if err != nil {
		return false, err
	}
	indexKey, err := s.rs.key(setIndexObjectType, s.attrs(padID(n))...)
	if err != nil {
		return false, err
	}
	lenKey, err := s.rs.key(counterObjectType, s.attrs()...)
	if err != nil {
		return false, err
	}
	s.rs.put(markerKey, []byte{1})
	s.rs.put(indexKey, []byte(member))
	s.rs.putUint(lenKey, n+1)
	return true, nil
}

// Members lists committed members in insertion order.
func (s orderedSet) Members() ([]string, error) {
	values, err := s.rs.scan(setIndexObjectType, s.attrs()...)
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(values))
	for _, v := range values {
		members = append(members, string(v))
	}
	return members, nil
}
