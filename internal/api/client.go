// Package api implements the shared request pipeline for all backend calls:
// one REST client that attaches the bearer token from durable storage and,
// on a 401, performs exactly one token-refresh-and-retry before giving up.
package api

import (
	"context"

	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// TokenStore is the durable credential surface the pipeline reads and
// mutates. Implemented by *storage.Storage.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	RefreshToken(ctx context.Context) (string, error)
	ClearAuth(ctx context.Context) error
}

// AuthAPI is the authentication service surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthData, error)
	Signup(ctx context.Context, req SignupRequest) (*models.AuthData, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// DoctorAPI is the doctor directory surface.
type DoctorAPI interface {
	Doctors(ctx context.Context, filters DoctorFilters) ([]models.Doctor, *models.Pagination, error)
	Doctor(ctx context.Context, id string) (*models.Doctor, error)
	TopRatedDoctors(ctx context.Context, limit int) ([]models.Doctor, error)
	DoctorSlots(ctx context.Context, doctorID, date string) ([]string, error)
}

// ProductAPI is the pharmacy catalog surface.
type ProductAPI interface {
	Products(ctx context.Context, filters ProductFilters) ([]models.Product, *models.Pagination, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	ProductCategories(ctx context.Context) ([]models.ProductCategory, error)
	LabTests(ctx context.Context) ([]models.LabTest, error)
	LabTest(ctx context.Context, id string) (*models.LabTest, error)
}

// AppointmentAPI covers consultations and pharmacy orders.
type AppointmentAPI interface {
	BookAppointment(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error)
	MyAppointments(ctx context.Context, status string) ([]models.Appointment, error)
	Appointment(ctx context.Context, id string) (*models.Appointment, error)
	UpcomingAppointments(ctx context.Context) ([]models.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, dateTime string) (*models.Appointment, error)
	PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
}

// Client is the full backend surface.
type Client interface {
	AuthAPI
	DoctorAPI
	ProductAPI
	AppointmentAPI

	Ping(ctx context.Context) error
}

// SignupRequest is the account creation payload. The confirm field is
// filled from Password by the caller, matching the backend contract.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// DoctorFilters narrows the doctor listing. Zero values mean "unset".
type DoctorFilters struct {
	Specialization string
	Search         string
	MinRating      float64
	MaxFee         float64
	Available      bool
	Page           int
	Limit          int
}

// ProductFilters narrows the product listing. Zero values mean "unset".
type ProductFilters struct {
	Category models.ProductCategory
	Search   string
	MinPrice float64
	MaxPrice float64
	InStock  bool
	Sort     string
	Page     int
	Limit    int
}
