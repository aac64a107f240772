package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/transfer"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/wallet"
)

type Handler struct {
	svc *wallet.Service
}

func NewHandler(svc *wallet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Account returns the current view snapshot: address, balance, assets,
// busy flags.
func (h *Handler) Account(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View())
}

// Assets returns only the discovered asset list.
func (h *Handler) Assets(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View().Assets)
}

// Transfer submits a native-coin transfer. Validation failures come back
// as a field error on the recipient input.
func (h *Handler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}

	outcome, err := h.svc.Transfer(c.Request.Context(), req.ToAddress, amount)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if outcome.Kind != transfer.KindSuccess {
		c.JSON(statusForOutcome(outcome), fieldError{
			Field: "toAddress",
			Error: outcome.Message(),
		})
		return
	}
	c.JSON(http.StatusOK, transferResponse{
		Result:  outcome.Kind.String(),
		Message: outcome.Message(),
	})
}

// Import registers a coin type under the active account.
func (h *Handler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := h.svc.ImportCoin(c.Request.Context(), req.CoinAddress); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

// Faucet requests test tokens for the active account.
func (h *Handler) Faucet(c *gin.Context) {
	if err := h.svc.Fund(c.Request.Context()); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "funded"})
}

// Tab switches the active view tab.
func (h *Handler) Tab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := h.svc.SetTab(wallet.Tab(req.Tab)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": req.Tab})
}

func (h *Handler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, wallet.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func statusForOutcome(o transfer.Outcome) int {
	switch o.Kind {
	case transfer.KindAmountOverLimit, transfer.KindAmountWithGasOverLimit:
		return http.StatusUnprocessableEntity
	case transfer.KindUndefinedAccount:
		return http.StatusNotFound
	case transfer.KindIncorrectPayload:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
