package transfer

import "github.com/shopspring/decimal"

// Kind is the closed set of terminal results of a transfer attempt.
type Kind int

const (
	KindSuccess Kind = iota
	KindAmountOverLimit
	KindAmountWithGasOverLimit
	KindIncorrectPayload
	KindUndefinedAccount
	KindRemoteFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAmountOverLimit:
		return "amount_over_limit"
	case KindAmountWithGasOverLimit:
		return "amount_with_gas_over_limit"
	case KindIncorrectPayload:
		return "incorrect_payload"
	case KindUndefinedAccount:
		return "undefined_account"
	case KindRemoteFailure:
		return "remote_failure"
	default:
		return "unknown"
	}
}

// Outcome is the structured result of one submission attempt. Exactly one
// outcome is produced per attempt; display text is derived here at the
// presentation boundary, never used as the outcome's identity.
type Outcome struct {
	Kind Kind
	// OverBy is how far the amount exceeded the affordable limit, set for
	// the over-limit kinds.
	OverBy decimal.Decimal
	// Cause carries the underlying failure for remote and payload kinds.
	Cause error
}

func success() Outcome { return Outcome{Kind: KindSuccess} }

// Message renders the user-facing text for this outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindSuccess:
		return "Transaction executed successfully"
	case KindAmountOverLimit:
		return "Amount is over limit"
	case KindAmountWithGasOverLimit:
		return "Amount with gas is over limit"
	case KindIncorrectPayload:
		return "Incorrect transaction payload"
	case KindUndefinedAccount:
		return "Account does not exist"
	case KindRemoteFailure:
		if o.Cause != nil {
			return o.Cause.Error()
		}
		return "Transfer failed"
	default:
		return "Transfer failed"
	}
}
