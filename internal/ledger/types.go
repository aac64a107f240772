package ledger

import (
	"encoding/json"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
)

// AccountResource is an address-scoped record held by the ledger,
// identified by a structured type tag. Data stays raw; callers decode the
// variants they understand.
type AccountResource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// CoinStoreData is the decoded form of a coin-store resource.
type CoinStoreData struct {
	Coin struct {
		Value string `json:"value"`
	} `json:"coin"`
}

// CoinInfoData is the metadata resource published at a coin type's
// defining address.
type CoinInfoData struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ScriptFunctionPayload is the wire shape the node accepts for entry
// calls: positional string arguments plus type arguments.
type ScriptFunctionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

// NewTransferPayload builds a native-coin transfer payload. The amount is
// passed as a decimal string; the ledger rejects anything else.
func NewTransferPayload(recipient, amount string) ScriptFunctionPayload {
	return ScriptFunctionPayload{
		Type:          constants.ScriptFunctionPayloadType,
		Function:      constants.TransferFunction,
		TypeArguments: []string{constants.NativeCoinType},
		Arguments:     []string{recipient, amount},
	}
}

// NewRegisterPayload builds a coin-store registration payload for the
// given fully qualified coin type.
func NewRegisterPayload(coinType string) ScriptFunctionPayload {
	return ScriptFunctionPayload{
		Type:          constants.ScriptFunctionPayloadType,
		Function:      constants.RegisterFunction,
		TypeArguments: []string{coinType},
		Arguments:     []string{},
	}
}

// RawTransaction is an unsigned user transaction request.
type RawTransaction struct {
	Sender                  string                `json:"sender"`
	SequenceNumber          string                `json:"sequence_number"`
	MaxGasAmount            string                `json:"max_gas_amount"`
	GasUnitPrice            string                `json:"gas_unit_price"`
	ExpirationTimestampSecs string                `json:"expiration_timestamp_secs"`
	Payload                 ScriptFunctionPayload `json:"payload"`
}

// TransactionSignature authenticates a raw transaction.
type TransactionSignature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

// SignedTransaction is a raw transaction plus its signature, ready for
// submission.
type SignedTransaction struct {
	RawTransaction
	Signature TransactionSignature `json:"signature"`
}

// PendingTransaction is the submission acknowledgement.
type PendingTransaction struct {
	Hash string `json:"hash"`
}

// Signer authorizes transactions. Satisfied by keys.Account.
type Signer interface {
	Address() string
	PublicKeyHex() string
	Sign(message []byte) []byte
}
