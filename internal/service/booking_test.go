package service_test

import (
	"context"
	"testing"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/service"
	"carrental-backoffice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type bookingMocks struct {
	bookingRepo  *MockBookingRepo
	carRepo      *MockCarRepo
	userRepo     *MockUserRepo
	contractRepo *MockContractRepo
	emailSvc     *MockEmailService
}

func newBookingService(conflictScope string) (service.BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookingRepo:  new(MockBookingRepo),
		carRepo:      new(MockCarRepo),
		userRepo:     new(MockUserRepo),
		contractRepo: new(MockContractRepo),
		emailSvc:     new(MockEmailService),
	}
	svc := service.NewBookingService(m.bookingRepo, m.carRepo, m.userRepo, m.contractRepo, m.emailSvc, conflictScope)
	return svc, m
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Name: "Alice", Email: "alice@test.com", Role: domain.UserRoleCustomer}
	car := &domain.Car{ID: 2, OwnerID: 10, Brand: "Toyota", Model: "Corolla", LicensePlate: "ABC123", PricePerDay: 500000, Status: domain.CarStatusAvailable}

	t.Run("Success", func(t *testing.T) {
		svc, m := newBookingService("")
		start := mustDate(t, "2026-01-05")
		end := mustDate(t, "2026-01-08")

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return([]domain.Booking{}, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusRented).Return(nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, start, end)
		assert.NoError(t, err)
		assert.NotNil(t, booking)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, int32(3), booking.RentalDays)
		assert.Equal(t, float64(1500000), booking.TotalCost)
		m.carRepo.AssertCalled(t, "UpdateStatus", ctx, int32(2), domain.CarStatusRented)
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		svc, m := newBookingService("")
		start := mustDate(t, "2026-01-05")
		end := start.Add(25 * time.Hour)

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return([]domain.Booking{}, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusRented).Return(nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), booking.RentalDays)
		assert.Equal(t, float64(1000000), booking.TotalCost)
	})

	t.Run("Car not available", func(t *testing.T) {
		svc, m := newBookingService("")
		rented := &domain.Car{ID: 2, PricePerDay: 500000, Status: domain.CarStatusRented}

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(rented, nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid range", func(t *testing.T) {
		svc, m := newBookingService("")

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)

		day := mustDate(t, "2026-01-05")
		booking, err := svc.CreateBooking(ctx, 1, 2, day, day)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)

		booking, err = svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-08"), day)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("Overlapping booking conflicts", func(t *testing.T) {
		svc, m := newBookingService("")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-06"),
			EndDate:   mustDate(t, "2026-01-10"),
			Status:    domain.BookingStatusConfirmed,
		}}

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrBookingConflict)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Touching ranges do not conflict", func(t *testing.T) {
		svc, m := newBookingService("")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-01"),
			EndDate:   mustDate(t, "2026-01-05"),
			Status:    domain.BookingStatusConfirmed,
		}}

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusRented).Return(nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.NoError(t, err)
		assert.NotNil(t, booking)
	})

	t.Run("Cancelled booking still blocks under scope all", func(t *testing.T) {
		svc, m := newBookingService("all")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-06"),
			EndDate:   mustDate(t, "2026-01-10"),
			Status:    domain.BookingStatusCancelled,
		}}

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrBookingConflict)
	})

	t.Run("Cancelled booking ignored under scope active", func(t *testing.T) {
		svc, m := newBookingService("active")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-06"),
			EndDate:   mustDate(t, "2026-01-10"),
			Status:    domain.BookingStatusCancelled,
		}}

		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusRented).Return(nil)

		booking, err := svc.CreateBooking(ctx, 1, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.NoError(t, err)
		assert.NotNil(t, booking)
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, m := newBookingService("")

		m.userRepo.On("GetByID", ctx, int32(99)).Return(nil, &domain.NotFoundError{Kind: "user", ID: 99})

		booking, err := svc.CreateBooking(ctx, 99, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Name: "Alice", Email: "alice@test.com"}
	car := &domain.Car{ID: 2, Brand: "Toyota", Model: "Corolla", LicensePlate: "ABC123"}

	pending := func() *domain.Booking {
		return &domain.Booking{
			ID:        5,
			UserID:    1,
			CarID:     2,
			StartDate: time.Now(),
			EndDate:   time.Now().Add(72 * time.Hour),
			Status:    domain.BookingStatusPending,
			TotalCost: 1500000,
		}
	}

	t.Run("Confirm creates contract", func(t *testing.T) {
		svc, m := newBookingService("")
		booking := pending()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)
		m.contractRepo.On("GetByBookingID", ctx, int32(5)).Return(nil, domain.ErrNotFound)
		m.contractRepo.On("Create", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		m.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.emailSvc.On("SendBookingConfirmation", ctx, "alice@test.com", "Alice", mock.Anything, float64(1500000)).Return(nil)

		updated, contract, err := svc.UpdateBookingStatus(ctx, 5, "CONFIRMED")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
		assert.NotNil(t, contract)
		assert.NotEmpty(t, contract.Reference)
		assert.Equal(t, int32(5), contract.BookingID)
		assert.Equal(t, domain.ContractStatusActive, contract.Status)
		assert.Equal(t, float64(1500000), contract.TotalCost)
		m.contractRepo.AssertNumberOfCalls(t, "Create", 1)
		m.carRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirm reuses existing contract", func(t *testing.T) {
		svc, m := newBookingService("")
		booking := pending()
		existing := &domain.Contract{ID: 9, Reference: "ref-9", BookingID: 5, Status: domain.ContractStatusActive}

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)
		m.contractRepo.On("GetByBookingID", ctx, int32(5)).Return(existing, nil)
		m.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.emailSvc.On("SendBookingConfirmation", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, contract, err := svc.UpdateBookingStatus(ctx, 5, "CONFIRMED")
		assert.NoError(t, err)
		assert.Equal(t, existing, contract)
		m.contractRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Cancel releases car", func(t *testing.T) {
		svc, m := newBookingService("")
		booking := pending()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusAvailable).Return(nil)
		m.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		m.emailSvc.On("SendBookingCancellation", ctx, "alice@test.com", "Alice", mock.Anything).Return(nil)

		updated, contract, err := svc.UpdateBookingStatus(ctx, 5, "CANCELLED")
		assert.NoError(t, err)
		assert.Nil(t, contract)
		assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
		m.carRepo.AssertCalled(t, "UpdateStatus", ctx, int32(2), domain.CarStatusAvailable)
	})

	t.Run("Complete releases car", func(t *testing.T) {
		svc, m := newBookingService("")
		booking := pending()
		booking.Status = domain.BookingStatusConfirmed

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusAvailable).Return(nil)
		m.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		updated, contract, err := svc.UpdateBookingStatus(ctx, 5, "COMPLETED")
		assert.NoError(t, err)
		assert.Nil(t, contract)
		assert.Equal(t, domain.BookingStatusCompleted, updated.Status)
		m.carRepo.AssertCalled(t, "UpdateStatus", ctx, int32(2), domain.CarStatusAvailable)
		// No notification for completion
		m.emailSvc.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pending cannot complete", func(t *testing.T) {
		svc, m := newBookingService("")
		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(pending(), nil)

		_, _, err := svc.UpdateBookingStatus(ctx, 5, "COMPLETED")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		m.bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Terminal states are final", func(t *testing.T) {
		for _, from := range []domain.BookingStatus{domain.BookingStatusCompleted, domain.BookingStatusCancelled} {
			svc, m := newBookingService("")
			booking := pending()
			booking.Status = from
			m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)

			_, _, err := svc.UpdateBookingStatus(ctx, 5, "CONFIRMED")
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "from %s", from)
		}
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		svc, m := newBookingService("")
		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(pending(), nil)

		_, _, err := svc.UpdateBookingStatus(ctx, 5, "ARCHIVED")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Missing booking", func(t *testing.T) {
		svc, m := newBookingService("")
		m.bookingRepo.On("GetByID", ctx, int32(99)).Return(nil, &domain.NotFoundError{Kind: "booking", ID: 99})

		_, _, err := svc.UpdateBookingStatus(ctx, 99, "CONFIRMED")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Missing car on cancel is tolerated", func(t *testing.T) {
		svc, m := newBookingService("")
		booking := pending()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(booking, nil)
		m.carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusAvailable).Return(&domain.NotFoundError{Kind: "car", ID: 2})
		m.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		m.carRepo.On("GetByID", ctx, int32(2)).Return(nil, &domain.NotFoundError{Kind: "car", ID: 2})
		m.emailSvc.On("SendBookingCancellation", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		updated, _, err := svc.UpdateBookingStatus(ctx, 5, "CANCELLED")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
	})
}

func TestBookingService_CheckBookingConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports overlap", func(t *testing.T) {
		svc, m := newBookingService("")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-06"),
			EndDate:   mustDate(t, "2026-01-10"),
			Status:    domain.BookingStatusConfirmed,
		}}
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)

		conflict, err := svc.CheckBookingConflict(ctx, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("Reports disjoint", func(t *testing.T) {
		svc, m := newBookingService("")
		existing := []domain.Booking{{
			ID:        7,
			CarID:     2,
			StartDate: mustDate(t, "2026-01-10"),
			EndDate:   mustDate(t, "2026-01-12"),
			Status:    domain.BookingStatusConfirmed,
		}}
		m.bookingRepo.On("ListByCar", ctx, int32(2)).Return(existing, nil)

		conflict, err := svc.CheckBookingConflict(ctx, 2, mustDate(t, "2026-01-05"), mustDate(t, "2026-01-08"))
		assert.NoError(t, err)
		assert.False(t, conflict)
	})
}
