package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pettycash-ledger/internal/api_gateway/service"
	"github.com/pettycash-ledger/internal/domain/shared"
)

// LedgerHandler handles HTTP requests for month ledgers and their transactions
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

func NewLedgerHandler(logger *slog.Logger, ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// GetLedger returns the month's statement with running balances
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	st, err := h.ledgerService.GetLedger(c.Request.Context(), month)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapStatementToResponse(month, st))
}

func (h *LedgerHandler) AddTransaction(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	created, err := h.ledgerService.AddTransaction(c.Request.Context(), month, in)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapTransactionToResponse(created))
}

func (h *LedgerHandler) UpdateTransaction(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	id, err := transactionIDParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	updated, err := h.ledgerService.UpdateTransaction(c.Request.Context(), month, id, in)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapTransactionToResponse(updated))
}

func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	id, err := transactionIDParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), id); err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondNoContent(c)
}

func (h *LedgerHandler) GetOpeningBalance(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	ob, err := h.ledgerService.GetOpeningBalance(c.Request.Context(), month)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapOpeningBalanceToResponse(ob))
}

// SetOpeningBalance records an explicit opening balance; negative amounts are allowed
func (h *LedgerHandler) SetOpeningBalance(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	var req OpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	amount, err := shared.ParseAmount(req.Amount)
	if err != nil {
		RespondBadRequest(c, "amount: "+err.Error())
		return
	}

	if err := h.ledgerService.SetOpeningBalance(c.Request.Context(), month, amount); err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, OpeningBalanceResponse{
		Month:      month.String(),
		Amount:     shared.FormatAmount(amount),
		Overridden: true,
	})
}

// ExportLedger snapshots the month and returns the new snapshot
func (h *LedgerHandler) ExportLedger(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	snapshot, err := h.ledgerService.ExportLedger(c.Request.Context(), month)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapSnapshotToResponse(snapshot))
}
