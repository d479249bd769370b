package contract

import (
	"crypto/x509"
	"fmt"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/require"
)

// Test identities, in the shape the peer reports them.
const (
	ownerID = "x509::CN=owner,OU=client::CN=ca.org1.example.com"
	adminID = "x509::CN=admin,OU=client::CN=ca.org1.example.com"
	addr1   = "x509::CN=addr1,OU=client::CN=ca.org1.example.com"
	addr2   = "x509::CN=addr2,OU=client::CN=ca.org1.example.com"
	addr3   = "x509::CN=addr3,OU=client::CN=ca.org1.example.com"
)

// fakeIdentity implements cid.ClientIdentity with a fixed ID.
type fakeIdentity struct {
	id string
}

func (f fakeIdentity) GetID() (string, error) { return f.id, nil }
func (f fakeIdentity) GetMSPID() (string, error) { return "Org1MSP", nil }
func (f fakeIdentity) GetAttributeValue(string) (string, bool, error) { return "", false, nil }
func (f fakeIdentity) AssertAttributeValue(string, string) error { return fmt.Errorf("no attributes") }
func (f fakeIdentity) GetX509Certificate() (*x509.Certificate, error) { return nil, nil }

// testLedger is a MockStub shared by every caller of a test.
type testLedger struct {
	t    *testing.T
	stub *shimtest.MockStub
	tx   int
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()
	return &testLedger{t: t, stub: shimtest.NewMockStub("employeenft", nil)}
}

// as starts a new transaction invoked by caller and returns its context.
func (l *testLedger) as(caller string) *contractapi.TransactionContext {
	l.tx++
	l.stub.MockTransactionStart(fmt.Sprintf("tx%d", l.tx))
	ctx := new(contractapi.TransactionContext)
	ctx.SetStub(l.stub)
	ctx.SetClientIdentity(fakeIdentity{id: caller})
	l.drainEvents()
	return ctx
}

// snapshot copies the world state so tests can assert that nothing changed.
func (l *testLedger) snapshot() map[string]string {
	out := make(map[string]string, len(l.stub.State))
	for k, v := range l.stub.State {
		out[k] = string(v)
	}
	return out
}

// drainEvents empties the mock event channel and returns the names seen.
func (l *testLedger) drainEvents() []string {
	var names []string
	for {
		select {
		case ev := <-l.stub.ChaincodeEventsChannel:
			names = append(names, ev.EventName)
		default:
			return names
		}
	}
}

// bootstrap initializes both registries with ownerID as owner and adminID as admin.
func (l *testLedger) bootstrap() {
	l.t.Helper()
	require.NoError(l.t, NewAccessControl(l.as(ownerID), EmployeeIDRegistry).Initialize(ownerID))
	require.NoError(l.t, NewAccessControl(l.as(ownerID), EmployeeIDRegistry).AddAdmin(ownerID, adminID))
	require.NoError(l.t, NewAccessControl(l.as(ownerID), BusinessCardRegistry).Initialize(ownerID))
	require.NoError(l.t, NewAccessControl(l.as(ownerID), BusinessCardRegistry).AddAdmin(ownerID, adminID))
}
