package repository

import (
	"context"
	"strings"

	"campsite-backend/models"

	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// List returns customers matching query on name, email or phone, case-insensitively.
func (r *customerRepository) List(ctx context.Context, query string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx)
	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var customers []models.Customer
	if err := q.Order("last_name ASC, first_name ASC").Find(&customers).Error; err != nil {
		return nil, translate(err, "list customers")
	}
	return customers, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uint, withBookings bool) (*models.Customer, error) {
	q := r.db.WithContext(ctx)
	if withBookings {
		q = q.Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in DESC")
		}).Preload("Bookings.Pitch")
	}

	var customer models.Customer
	if err := q.First(&customer, id).Error; err != nil {
		return nil, translate(err, "get customer")
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return translate(r.db.WithContext(ctx).Omit("Bookings").Create(customer).Error, "create customer")
}

func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	return translate(r.db.WithContext(ctx).Omit("Bookings").Save(customer).Error, "save customer")
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete customer")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) CountBookings(ctx context.Context, customerID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("customer_id = ?", customerID).Count(&n).Error; err != nil {
		return 0, translate(err, "count customer bookings")
	}
	return n, nil
}
