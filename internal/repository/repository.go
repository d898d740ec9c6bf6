package repository

import (
	"context"

	"carrental-backoffice/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Count(ctx context.Context) (int32, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	GetByLicensePlate(ctx context.Context, plate string) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Car, error)
	Count(ctx context.Context) (int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	// ListByCar returns every booking for a car regardless of status;
	// the conflict scope is applied by the caller.
	ListByCar(ctx context.Context, carID int32) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Booking, error)
	CountActive(ctx context.Context) (int32, error)
	Summary(ctx context.Context, recentLimit int32) (*domain.BookingSummary, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Contract, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Contract, error)
}
