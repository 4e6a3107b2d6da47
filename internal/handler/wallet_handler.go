package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
	"github.com/CamiloCastellanos/drop-sub000/internal/repository"
	"github.com/CamiloCastellanos/drop-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet ledger requests
type WalletHandler struct {
	walletService service.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetBalance returns the authenticated user's wallet balance
// @Summary Get wallet balance
// @Tags wallet
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /wallet/balance [get]
func (h *WalletHandler) GetBalance(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}

	balance, err := h.walletService.Balance(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  claims.UserID,
		Balance: balance.StringFixed(2),
	})
}

// ListEntries pages through the authenticated user's ledger, newest-first
// @Summary List wallet entries
// @Tags wallet
// @Security BearerAuth
// @Produce json
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param type query string false "ENTRADA or SALIDA"
// @Param reason query string false "Exact description match"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.EntriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /wallet/entries [get]
func (h *WalletHandler) ListEntries(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	entries, err := h.walletService.ListEntries(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.EntriesResponse{
		Entries: make([]dto.EntryResponse, 0, len(entries)),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, entryResponse(entry))
	}

	c.JSON(http.StatusOK, response)
}

// Transfer moves funds from the authenticated user's wallet to another
// @Summary Transfer between wallets
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer request"
// @Success 200 {object} dto.EntriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /wallet/transfer [post]
func (h *WalletHandler) Transfer(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "amount is not a valid number",
		})
		return
	}

	description := req.Description
	if description == "" {
		description = "wallet transfer"
	}

	entries, err := h.walletService.Transfer(c.Request.Context(), claims.UserID, req.ToUserID, amount, description)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.EntriesResponse{Entries: make([]dto.EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, entryResponse(entry))
	}

	c.JSON(http.StatusOK, response)
}

// AppendEntry records a manual ledger adjustment, admin only
// @Summary Append a ledger entry
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AppendEntryRequest true "Ledger entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /wallet/entries [post]
func (h *WalletHandler) AppendEntry(c *gin.Context) {
	var req dto.AppendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "amount is not a valid number",
		})
		return
	}

	entry, err := h.walletService.AppendEntry(c.Request.Context(), req.UserID, domain.EntryType(req.Type), amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (h *WalletHandler) parseFilter(c *gin.Context) (repository.EntryFilter, bool) {
	var filter repository.EntryFilter

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Message: "from must be an RFC3339 timestamp",
			})
			return filter, false
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Message: "to must be an RFC3339 timestamp",
			})
			return filter, false
		}
		filter.To = &to
	}

	filter.Type = domain.EntryType(c.Query("type"))
	filter.Reason = c.Query("reason")
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	return filter, true
}

func entryResponse(entry *domain.LedgerEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:               entry.ID,
		UserID:           entry.UserID,
		Type:             string(entry.Type),
		Amount:           entry.Amount.StringFixed(2),
		PreviousBalance:  entry.PreviousBalance.StringFixed(2),
		ResultingBalance: entry.ResultingBalance.StringFixed(2),
		Description:      entry.Description,
		CreatedAt:        entry.CreatedAt.Format(time.RFC3339),
	}
}
