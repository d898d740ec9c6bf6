package service

import (
	"context"
	"time"

	"carrental-backoffice/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, phone, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error) // user, access token
}

type UserService interface {
	GetAllUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
}

type CarService interface {
	GetAllCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) error
	UpdateCar(ctx context.Context, id int32, updates *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int32) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID, carID int32, start, end time.Time) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int32, status string) (*domain.Booking, *domain.Contract, error)
	CheckBookingConflict(ctx context.Context, carID int32, start, end time.Time) (bool, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	GetAllBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	GetUserBookings(ctx context.Context, userID int32) ([]domain.Booking, error)
	GetOwnerBookings(ctx context.Context, ownerID int32) ([]domain.Booking, error)
	GetBookingSummary(ctx context.Context) (*domain.BookingSummary, error)
	GetUserContracts(ctx context.Context, userID int32) ([]domain.Contract, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, carLabel string, totalCost float64) error
	SendBookingCancellation(ctx context.Context, email, name, carLabel string) error
}
