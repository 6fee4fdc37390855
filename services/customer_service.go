package services

import (
	"context"
	"strings"
	"time"

	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/utils"
)

type CustomerInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	City           string
	Country        string
	Nationality    string
	BirthDate      string
	DocumentType   string
	DocumentNumber string
	Notes          string
}

type CustomerService interface {
	List(ctx context.Context, query string) ([]models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) List(ctx context.Context, query string) ([]models.Customer, error) {
	customers, err := s.customers.List(ctx, query)
	if err != nil {
		return nil, storageError("failed to load customers", err)
	}
	return customers, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id, true)
	if err != nil {
		return nil, fromRepository(err, "customer not found")
	}
	return customer, nil
}

func (s *customerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{}
	if err := applyCustomerInput(customer, in); err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fromRepository(err, "customer not found")
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id, false)
	if err != nil {
		return nil, fromRepository(err, "customer not found")
	}
	if err := applyCustomerInput(customer, in); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, fromRepository(err, "customer not found")
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	n, err := s.customers.CountBookings(ctx, id)
	if err != nil {
		return storageError("failed to count bookings", err)
	}
	if n > 0 {
		return conflictError("customer has %d bookings and cannot be deleted", n)
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return fromRepository(err, "customer not found")
	}
	return nil
}

func applyCustomerInput(c *models.Customer, in CustomerInput) error {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return validationError("first_name and last_name are required")
	}

	var birth *time.Time
	if strings.TrimSpace(in.BirthDate) != "" {
		d, err := utils.ParseDate(in.BirthDate)
		if err != nil {
			return validationError("birth_date: %v", err)
		}
		if d.After(utils.Today()) {
			return validationError("birth_date must not be in the future")
		}
		birth = &d
	}

	c.FirstName = first
	c.LastName = last
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.Country = strings.TrimSpace(in.Country)
	c.Nationality = strings.TrimSpace(in.Nationality)
	c.BirthDate = birth
	c.DocumentType = strings.TrimSpace(in.DocumentType)
	c.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	c.Notes = strings.TrimSpace(in.Notes)
	return nil
}
