package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/walletcore/internal/consensus"
)

// rawObject is a decoded JSON object whose values are parsed field by field.
type rawObject map[string]json.RawMessage

// decodeObject decodes data as an object with exactly the required keys plus
// any of the optional ones.
func decodeObject(field string, data []byte, required, optional []string) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, fieldErr(field, errors.New("must be an object"))
	}
	for k := range obj {
		if !slices.Contains(required, k) && !slices.Contains(optional, k) {
			return nil, fieldErr(join(field, k), errUnknownKey)
		}
	}
	for _, k := range required {
		if _, ok := obj[k]; !ok {
			return nil, fieldErr(join(field, k), errMissing)
		}
	}
	return obj, nil
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// parseUint accepts a JSON number or a decimal string.
func parseUint(field string, raw json.RawMessage, bits int) (uint64, error) {
	raw = bytes.TrimSpace(raw)
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fieldErr(field, err)
		}
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fieldErr(field, fmt.Errorf("not an unsigned %d-bit integer: %s", bits, raw))
	}
	return v, nil
}

// parseBytes accepts a hex string or an array of byte values.
func parseBytes(field string, raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fieldErr(field, errMissing)
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fieldErr(field, err)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fieldErr(field, fmt.Errorf("bad hex: %w", err))
		}
		return b, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fieldErr(field, err)
		}
		b := make([]byte, len(items))
		for i, item := range items {
			v, err := parseUint(index(field, i), item, 8)
			if err != nil {
				return nil, err
			}
			b[i] = byte(v)
		}
		return b, nil
	}
	return nil, fieldErr(field, errors.New("must be a hex string or an array of bytes"))
}

func parseArray(field string, raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, fieldErr(field, errors.New("must be an array"))
	}
	return items, nil
}

func parseOutpoint(field string, raw json.RawMessage) (Outpoint, error) {
	obj, err := decodeObject(field, raw, []string{"transactionId", "index"}, nil)
	if err != nil {
		return Outpoint{}, err
	}
	var op Outpoint
	b, err := parseBytes(join(field, "transactionId"), obj["transactionId"])
	if err != nil {
		return op, err
	}
	if len(b) != consensus.TransactionIDSize {
		return op, fieldErr(join(field, "transactionId"),
			fmt.Errorf("must be %d bytes long, got %d", consensus.TransactionIDSize, len(b)))
	}
	copy(op.TransactionID[:], b)

	idx, err := parseUint(join(field, "index"), obj["index"], 32)
	if err != nil {
		return op, err
	}
	op.Index = uint32(idx)
	return op, nil
}

func parseInput(field string, raw json.RawMessage) (Input, error) {
	obj, err := decodeObject(field, raw,
		[]string{"previousOutpoint", "sequence"},
		[]string{"signatureScript", "sigOpCount"})
	if err != nil {
		return Input{}, err
	}
	var in Input
	if in.PreviousOutpoint, err = parseOutpoint(join(field, "previousOutpoint"), obj["previousOutpoint"]); err != nil {
		return in, err
	}
	if in.Sequence, err = parseUint(join(field, "sequence"), obj["sequence"], 64); err != nil {
		return in, err
	}
	if v, ok := obj["signatureScript"]; ok {
		if in.SignatureScript, err = parseBytes(join(field, "signatureScript"), v); err != nil {
			return in, err
		}
	}
	if v, ok := obj["sigOpCount"]; ok {
		n, err := parseUint(join(field, "sigOpCount"), v, 8)
		if err != nil {
			return in, err
		}
		in.SigOpCount = uint8(n)
	}
	return in, nil
}

// parseScriptPublicKey accepts {"version","script"} or a hex string whose
// first two bytes are the big-endian script version.
func parseScriptPublicKey(field string, raw json.RawMessage) (ScriptPublicKey, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		b, err := parseBytes(field, raw)
		if err != nil {
			return ScriptPublicKey{}, err
		}
		if len(b) < 2 {
			return ScriptPublicKey{}, fieldErr(field, errors.New("missing script version"))
		}
		return ScriptPublicKey{Version: binary.BigEndian.Uint16(b), Script: b[2:]}, nil
	}

	obj, err := decodeObject(field, raw, []string{"version", "script"}, nil)
	if err != nil {
		return ScriptPublicKey{}, err
	}
	v, err := parseUint(join(field, "version"), obj["version"], 16)
	if err != nil {
		return ScriptPublicKey{}, err
	}
	script, err := parseBytes(join(field, "script"), obj["script"])
	if err != nil {
		return ScriptPublicKey{}, err
	}
	return ScriptPublicKey{Version: uint16(v), Script: script}, nil
}

func parseOutput(field string, raw json.RawMessage) (Output, error) {
	obj, err := decodeObject(field, raw, []string{"value", "scriptPublicKey"}, nil)
	if err != nil {
		return Output{}, err
	}
	var out Output
	if out.Value, err = parseUint(join(field, "value"), obj["value"], 64); err != nil {
		return out, err
	}
	if out.ScriptPublicKey, err = parseScriptPublicKey(join(field, "scriptPublicKey"), obj["scriptPublicKey"]); err != nil {
		return out, err
	}
	return out, nil
}

func parsePaymentOutputs(field string, raw json.RawMessage) ([]Output, error) {
	obj, err := decodeObject(field, raw, []string{"outputs"}, nil)
	if err != nil {
		return nil, err
	}
	field = join(field, "outputs")
	items, err := parseArray(field, obj["outputs"])
	if err != nil {
		return nil, err
	}
	payments := make([]PaymentOutput, len(items))
	for i, item := range items {
		f := index(field, i)
		p, err := decodeObject(f, item, []string{"address", "amount"}, nil)
		if err != nil {
			return nil, err
		}
		var s string
		if err := json.Unmarshal(p["address"], &s); err != nil {
			return nil, fieldErr(join(f, "address"), errors.New("must be a string"))
		}
		addr, err := DecodeAddress(s)
		if err != nil {
			return nil, fieldErr(join(f, "address"), err)
		}
		amount, err := parseUint(join(f, "amount"), p["amount"], 64)
		if err != nil {
			return nil, err
		}
		payments[i] = PaymentOutput{Address: addr, Amount: amount}
	}
	return PaymentOutputs(payments), nil
}

func parseOutputs(field string, raw json.RawMessage) ([]Output, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		return parsePaymentOutputs(field, raw)
	}
	items, err := parseArray(field, raw)
	if err != nil {
		return nil, err
	}
	outputs := make([]Output, len(items))
	for i, item := range items {
		if outputs[i], err = parseOutput(index(field, i), item); err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// ParseJSON builds a finalized transaction from its generic JSON
// representation. Any "id" key is ignored and recomputed.
func ParseJSON(data []byte) (*Transaction, error) {
	obj, err := decodeObject("", data,
		[]string{"version", "lockTime", "gas", "payload", "subnetworkId", "inputs", "outputs"},
		[]string{"id"})
	if err != nil {
		return nil, err
	}

	version, err := parseUint("version", obj["version"], 16)
	if err != nil {
		return nil, err
	}
	lockTime, err := parseUint("lockTime", obj["lockTime"], 64)
	if err != nil {
		return nil, err
	}
	gas, err := parseUint("gas", obj["gas"], 64)
	if err != nil {
		return nil, err
	}
	payload, err := parseBytes("payload", obj["payload"])
	if err != nil {
		return nil, err
	}
	subnetworkID, err := parseBytes("subnetworkId", obj["subnetworkId"])
	if err != nil {
		return nil, err
	}
	if len(subnetworkID) != consensus.SubnetworkIDSize {
		return nil, fieldErr("subnetworkId",
			fmt.Errorf("must be %d bytes long, got %d", consensus.SubnetworkIDSize, len(subnetworkID)))
	}

	items, err := parseArray("inputs", obj["inputs"])
	if err != nil {
		return nil, err
	}
	inputs := make([]Input, len(items))
	for i, item := range items {
		if inputs[i], err = parseInput(index("inputs", i), item); err != nil {
			return nil, err
		}
	}

	outputs, err := parseOutputs("outputs", obj["outputs"])
	if err != nil {
		return nil, err
	}

	return New(uint16(version), inputs, outputs, lockTime, subnetworkID, gas, payload)
}

type jsonOutpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

type jsonInput struct {
	PreviousOutpoint jsonOutpoint `json:"previousOutpoint"`
	SignatureScript  string       `json:"signatureScript"`
	Sequence         uint64       `json:"sequence"`
	SigOpCount       uint8        `json:"sigOpCount"`
}

type jsonScriptPublicKey struct {
	Version uint16 `json:"version"`
	Script  string `json:"script"`
}

type jsonOutput struct {
	Value           uint64              `json:"value"`
	ScriptPublicKey jsonScriptPublicKey `json:"scriptPublicKey"`
}

type jsonTransaction struct {
	ID           string       `json:"id"`
	Version      uint16       `json:"version"`
	Inputs       []jsonInput  `json:"inputs"`
	Outputs      []jsonOutput `json:"outputs"`
	LockTime     uint64       `json:"lockTime"`
	SubnetworkID string       `json:"subnetworkId"`
	Gas          uint64       `json:"gas"`
	Payload      string       `json:"payload"`
}

// MarshalJSON writes the generic representation with byte fields as hex and
// the cached id under "id".
func (t *Transaction) MarshalJSON() ([]byte, error) {
	t.mu.Lock()
	out := jsonTransaction{
		ID:           t.id.String(),
		Version:      t.version,
		Inputs:       make([]jsonInput, len(t.inputs)),
		Outputs:      make([]jsonOutput, len(t.outputs)),
		LockTime:     t.lockTime,
		SubnetworkID: t.subnetworkID.String(),
		Gas:          t.gas,
		Payload:      hex.EncodeToString(t.payload),
	}
	for i, in := range t.inputs {
		out.Inputs[i] = jsonInput{
			PreviousOutpoint: jsonOutpoint{
				TransactionID: in.PreviousOutpoint.TransactionID.String(),
				Index:         in.PreviousOutpoint.Index,
			},
			SignatureScript: hex.EncodeToString(in.SignatureScript),
			Sequence:        in.Sequence,
			SigOpCount:      in.SigOpCount,
		}
	}
	for i, o := range t.outputs {
		out.Outputs[i] = jsonOutput{
			Value: o.Value,
			ScriptPublicKey: jsonScriptPublicKey{
				Version: o.ScriptPublicKey.Version,
				Script:  hex.EncodeToString(o.ScriptPublicKey.Script),
			},
		}
	}
	t.mu.Unlock()

	return json.Marshal(out)
}

// UnmarshalJSON replaces t with the parsed transaction, finalized.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.version = parsed.version
	t.inputs = parsed.inputs
	t.outputs = parsed.outputs
	t.lockTime = parsed.lockTime
	t.subnetworkID = parsed.subnetworkID
	t.gas = parsed.gas
	t.payload = parsed.payload
	t.id = parsed.id
	t.finalized = true
	t.gen++
	return nil
}
