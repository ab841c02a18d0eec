package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"contas/internal/models"
	"contas/internal/pagination"
	"contas/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for manual transaction entry
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,transaction_type"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	AccountID   string          `json:"account_id" binding:"required,uuid"`
	Description string          `json:"description"`
}

// transactionListQuery holds the query parameters for listing transactions
type transactionListQuery struct {
	pagination.PageRequest
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	AccountID  string `form:"account_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
}

// CreateTransaction handles manual entry of a transaction
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate("date", req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(
		models.TransactionType(req.Type),
		req.Amount,
		date,
		req.CategoryID,
		req.AccountID,
		req.Description,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the retrieval of a filtered transaction list
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query transactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := services.TransactionFilter{}
	if query.Type != "" {
		t := models.TransactionType(query.Type)
		filter.Type = &t
	}
	if query.CategoryID != "" {
		filter.CategoryID = &query.CategoryID
	}
	if query.AccountID != "" {
		filter.AccountID = &query.AccountID
	}

	from, err := parseOptionalDate("from", query.From)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.FromDate = from

	to, err := parseOptionalDate("to", query.To)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.ToDate = to

	result, err := h.transactionService.GetTransactions(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a single transaction
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deletion of a transaction
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
