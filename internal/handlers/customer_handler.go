package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
)

type CustomerHandler struct {
	records *records.Service
	reports *reporting.Service
}

func NewCustomerHandler(rec *records.Service, rep *reporting.Service) *CustomerHandler {
	return &CustomerHandler{records: rec, reports: rep}
}

func (h *CustomerHandler) List(c *gin.Context) {
	items, err := h.records.ListCustomers(c.Request.Context(), repository.CustomerFilter{Query: c.Query("q")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var in records.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	customer, err := h.records.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.records.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Detail returns the customer with its services, invoices and invoice totals.
func (h *CustomerHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.reports.CustomerDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in records.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	customer, err := h.records.UpdateCustomer(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.records.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
