package controllers

import (
	"net/http"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	Nationality    string `json:"nationality"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Notes          string `json:"notes"`
}

func (r CustomerRequest) input() services.CustomerInput {
	return services.CustomerInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		Country:        r.Country,
		Nationality:    r.Nationality,
		BirthDate:      r.BirthDate,
		DocumentType:   r.DocumentType,
		DocumentNumber: r.DocumentNumber,
		Notes:          r.Notes,
	}
}

type CustomerController struct {
	CustomerSvc services.CustomerService
}

func NewCustomerController(svc services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

// GET /api/customers?q=
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.CustomerSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customers)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	customer, err := cc.CustomerSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	customer, err := cc.CustomerSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	customer, err := cc.CustomerSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.CustomerSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted"})
}
