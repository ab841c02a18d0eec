package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"contas/internal/models"
	"contas/internal/pagination"
	"contas/internal/services"
)

// BillHandler handles bill lifecycle requests
type BillHandler struct {
	billService services.BillServicer
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService services.BillServicer) *BillHandler {
	return &BillHandler{billService: billService}
}

// CreateBillRequest represents the request payload for creating a bill.
// For installment bills, amount is the per-installment value.
type CreateBillRequest struct {
	Description       string          `json:"description" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	DueDate           string          `json:"due_date" binding:"required"`
	CategoryID        string          `json:"category_id" binding:"required,uuid"`
	IsInstallment     bool            `json:"is_installment"`
	TotalInstallments int             `json:"total_installments" binding:"omitempty,min=2"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurrenceType    string          `json:"recurrence_type" binding:"omitempty,recurrence_type"`
	RecurrenceEndDate string          `json:"recurrence_end_date"`
}

// PayBillRequest represents the request payload for settling a bill
type PayBillRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
}

// billListQuery holds the query parameters for listing bills
type billListQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,oneof=pending paid"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// CreateBill handles the creation of a bill or an installment chain
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	endDate, err := parseOptionalDate("recurrence_end_date", req.RecurrenceEndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input := services.CreateBillInput{
		Description:       req.Description,
		Amount:            req.Amount,
		DueDate:           dueDate,
		CategoryID:        req.CategoryID,
		IsInstallment:     req.IsInstallment,
		TotalInstallments: req.TotalInstallments,
		IsRecurring:       req.IsRecurring,
		RecurrenceType:    models.RecurrenceType(req.RecurrenceType),
		RecurrenceEndDate: endDate,
	}

	bills, err := h.billService.CreateBill(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bills": bills})
}

// GetBills handles the retrieval of a filtered bill list
func (h *BillHandler) GetBills(c *gin.Context) {
	var query billListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := services.BillFilter{}
	if query.Status != "" {
		status := models.BillStatus(query.Status)
		filter.Status = &status
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

	result, err := h.billService.GetBills(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBillByID handles the retrieval of a single bill
func (h *BillHandler) GetBillByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// GetInstallmentChain handles the retrieval of a bill's installment siblings
func (h *BillHandler) GetInstallmentChain(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	chain, err := h.billService.GetInstallmentChain(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": chain})
}

// PayBill handles settlement of a pending bill against an account
func (h *BillHandler) PayBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.billService.PayBill(id, req.AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// DeleteBill handles deletion of a pending bill
func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted"})
}
