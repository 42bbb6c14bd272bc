package tx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Network address prefixes.
const (
	PrefixMainnet = "kaspa"
	PrefixTestnet = "kaspatest"
	PrefixSimnet  = "kaspasim"
	PrefixDevnet  = "kaspadev"
)

type AddressVersion uint8

const (
	AddressVersionPubKey      AddressVersion = 0
	AddressVersionPubKeyECDSA AddressVersion = 1
	AddressVersionScriptHash  AddressVersion = 8
)

// Script opcodes used by the standard payment scripts.
const (
	opData32              = 0x20
	opData33              = 0x21
	opCheckSig            = 0xac
	opCheckSigECDSA       = 0xab
	opBlake2b             = 0xaa
	opEqual               = 0x87
	standardScriptVersion = 0
)

var (
	ErrUnknownPrefix  = errors.New("unknown address prefix")
	ErrUnknownVersion = errors.New("unknown address version")
)

func (v AddressVersion) payloadSize() (int, error) {
	switch v {
	case AddressVersionPubKey, AddressVersionScriptHash:
		return 32, nil
	case AddressVersionPubKeyECDSA:
		return 33, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
}

// Address is a payment address: a network prefix, a version and a public
// key or script hash.
type Address struct {
	Prefix  string
	Version AddressVersion
	Payload []byte
}

// NewAddress validates prefix and payload length.
func NewAddress(prefix string, version AddressVersion, payload []byte) (Address, error) {
	if !validPrefix(prefix) {
		return Address{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	size, err := version.payloadSize()
	if err != nil {
		return Address{}, err
	}
	if len(payload) != size {
		return Address{}, fmt.Errorf("version %d address payload must be %d bytes, got %d", version, size, len(payload))
	}
	return Address{Prefix: prefix, Version: version, Payload: slices.Clone(payload)}, nil
}

// DecodeAddress parses a bech32 encoded address.
func DecodeAddress(s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("decode address: %w", err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("decode address: %w", err)
	}
	if len(raw) == 0 {
		return Address{}, errors.New("decode address: empty payload")
	}
	return NewAddress(hrp, AddressVersion(raw[0]), raw[1:])
}

func (a Address) String() string {
	conv, err := bech32.ConvertBits(append([]byte{byte(a.Version)}, a.Payload...), 8, 5, true)
	if err != nil {
		return ""
	}
	s, err := bech32.Encode(a.Prefix, conv)
	if err != nil {
		return ""
	}
	return s
}

// ScriptPublicKey returns the standard script paying to a.
func (a Address) ScriptPublicKey() ScriptPublicKey {
	var script []byte
	switch a.Version {
	case AddressVersionPubKey:
		script = append([]byte{opData32}, a.Payload...)
		script = append(script, opCheckSig)
	case AddressVersionPubKeyECDSA:
		script = append([]byte{opData33}, a.Payload...)
		script = append(script, opCheckSigECDSA)
	case AddressVersionScriptHash:
		script = append([]byte{opBlake2b, opData32}, a.Payload...)
		script = append(script, opEqual)
	}
	return ScriptPublicKey{Version: standardScriptVersion, Script: script}
}

func validPrefix(p string) bool {
	switch p {
	case PrefixMainnet, PrefixTestnet, PrefixSimnet, PrefixDevnet:
		return true
	}
	return false
}

// PaymentOutput pays Amount to Address.
type PaymentOutput struct {
	Address Address
	Amount  uint64
}

// PaymentOutputs expands payments into transaction outputs.
func PaymentOutputs(payments []PaymentOutput) []Output {
	out := make([]Output, 0, len(payments))
	for _, p := range payments {
		out = append(out, Output{Value: p.Amount, ScriptPublicKey: p.Address.ScriptPublicKey()})
	}
	return out
}
