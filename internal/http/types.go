package http

// transferRequest mirrors the send form: recipient address and a decimal
// amount string.
type transferRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// importRequest carries the coin address to register.
type importRequest struct {
	CoinAddress string `json:"coinAddress" binding:"required"`
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// fieldError attaches an error message to the input field it belongs to,
// the way the send form renders failures under the recipient input.
type fieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type transferResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}
