// Package ledger is the typed facade over the full node's REST API:
// resource fetches plus the generate/sign/submit/await transaction flow.
package ledger

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
)

const (
	defaultMaxGasAmount = "1000"
	defaultGasUnitPrice = "1"
	txnExpiry           = 2 * time.Minute

	pollInterval = 500 * time.Millisecond
	waitTimeout  = 30 * time.Second
)

// ErrIncorrectPayload marks a transaction the node refused to accept.
var ErrIncorrectPayload = errors.New("incorrect transaction payload")

// ErrTransactionFailed marks a transaction that reached the chain but did
// not execute successfully.
var ErrTransactionFailed = errors.New("transaction failed on chain")

// NodeError is a structured error response from the full node.
type NodeError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *NodeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("node responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("node responded %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

func NewClient(nodeURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(nodeURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logging.Named("ledger"),
	}
}

// FetchAccountResources returns the full resource snapshot for an address.
// An unknown account yields (nil, nil): absent, not an error.
func (c *Client) FetchAccountResources(ctx context.Context, address string) ([]AccountResource, error) {
	var resources []AccountResource
	err := c.getJSON(ctx, "/accounts/"+address+"/resources", &resources)
	if err != nil {
		var ne *NodeError
		if errors.As(err, &ne) && ne.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetch account resources")
	}
	return resources, nil
}

// GenerateTransaction builds an unsigned transaction for the sender,
// reading the current sequence number from the node.
func (c *Client) GenerateTransaction(ctx context.Context, sender string, payload ScriptFunctionPayload) (*RawTransaction, error) {
	var account struct {
		SequenceNumber string `json:"sequence_number"`
	}
	if err := c.getJSON(ctx, "/accounts/"+sender, &account); err != nil {
		return nil, errors.Wrap(err, "fetch sender account")
	}

	expiry := time.Now().Add(txnExpiry).Unix()
	return &RawTransaction{
		Sender:                  sender,
		SequenceNumber:          account.SequenceNumber,
		MaxGasAmount:            defaultMaxGasAmount,
		GasUnitPrice:            defaultGasUnitPrice,
		ExpirationTimestampSecs: fmt.Sprintf("%d", expiry),
		Payload:                 payload,
	}, nil
}

// SignTransaction asks the node for the signing message of the raw
// transaction and signs it with the local identity.
func (c *Client) SignTransaction(ctx context.Context, signer Signer, raw *RawTransaction) (*SignedTransaction, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/transactions/signing_message", raw, &resp); err != nil {
		return nil, errors.Wrap(err, "fetch signing message")
	}

	message, err := hex.DecodeString(strings.TrimPrefix(resp.Message, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode signing message")
	}

	return &SignedTransaction{
		RawTransaction: *raw,
		Signature: TransactionSignature{
			Type:      "ed25519_signature",
			PublicKey: signer.PublicKeyHex(),
			Signature: "0x" + hex.EncodeToString(signer.Sign(message)),
		},
	}, nil
}

// SubmitTransaction posts a signed transaction. A 400 means the node
// refused the payload itself.
func (c *Client) SubmitTransaction(ctx context.Context, signed *SignedTransaction) (*PendingTransaction, error) {
	var pending PendingTransaction
	if err := c.postJSON(ctx, "/transactions", signed, &pending); err != nil {
		var ne *NodeError
		if errors.As(err, &ne) && ne.StatusCode == http.StatusBadRequest {
			return nil, errors.Wrap(ErrIncorrectPayload, ne.Message)
		}
		return nil, errors.Wrap(err, "submit transaction")
	}
	c.log.Debugw("transaction submitted", "hash", pending.Hash)
	return &pending, nil
}

// WaitForTransaction blocks until the transaction leaves the pending
// state, returning ErrTransactionFailed if it executed unsuccessfully.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) error {
	deadline := time.Now().Add(waitTimeout)
	for {
		var txn struct {
			Type     string `json:"type"`
			Success  *bool  `json:"success"`
			VMStatus string `json:"vm_status"`
		}
		err := c.getJSON(ctx, "/transactions/"+hash, &txn)
		switch {
		case err == nil && txn.Type != "pending_transaction":
			if txn.Success != nil && !*txn.Success {
				return errors.Wrap(ErrTransactionFailed, txn.VMStatus)
			}
			return nil
		case err != nil:
			var ne *NodeError
			// Not found right after submission just means the node has not
			// seen the transaction yet.
			if !errors.As(err, &ne) || ne.StatusCode != http.StatusNotFound {
				return errors.Wrap(err, "poll transaction")
			}
		}

		if time.Now().After(deadline) {
			return errors.Errorf("transaction %s still pending after %s", hash, waitTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "call node")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read node response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ne := &NodeError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, ne)
		return ne
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decode node response")
		}
	}
	return nil
}
