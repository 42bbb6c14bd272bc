package consensus

import (
	"encoding/hex"
	"fmt"
)

// SubnetworkID identifies the subnetwork a transaction belongs to.
type SubnetworkID [SubnetworkIDSize]byte

var (
	SubnetworkIDNative   = SubnetworkID{}
	SubnetworkIDCoinbase = SubnetworkID{1}
	SubnetworkIDRegistry = SubnetworkID{2}
)

// SubnetworkIDFromBytes copies b into a SubnetworkID. b must be exactly
// SubnetworkIDSize bytes long.
func SubnetworkIDFromBytes(b []byte) (SubnetworkID, error) {
	var id SubnetworkID
	if len(b) != SubnetworkIDSize {
		return id, fmt.Errorf("subnetwork id must be %d bytes long, got %d", SubnetworkIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id SubnetworkID) String() string {
	return hex.EncodeToString(id[:])
}

// IsBuiltIn reports whether id is the coinbase or registry subnetwork.
func (id SubnetworkID) IsBuiltIn() bool {
	return id == SubnetworkIDCoinbase || id == SubnetworkIDRegistry
}
