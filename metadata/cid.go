package metadata

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CID returns an IPFS-compatible CIDv1 (raw + sha2-256) of the descriptor's
// canonical JSON, suitable for pinning the metadata off-ledger.
func (d *Descriptor) CID() (string, error) {
	b, err := d.JSON()
	if err != nil {
		return "", err
	}
	c, err := cidV1RawSHA256(b)
	if err != nil {
		return "", fmt.Errorf("failed to derive descriptor CID: %w", err)
	}
	return c.String(), nil
}

func cidV1RawSHA256(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
