package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-backoffice/internal/config"
	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
	"carrental-backoffice/internal/repository"
	"carrental-backoffice/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	carRepo       repository.CarRepository
	userRepo      repository.UserRepository
	contractRepo  repository.ContractRepository
	emailSvc      EmailService
	conflictScope string
	locks         *carLocks
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	contractRepo repository.ContractRepository,
	emailSvc EmailService,
	conflictScope string,
) BookingService {
	if conflictScope == "" {
		conflictScope = config.ConflictScopeAll
	}
	return &bookingService{
		bookingRepo:   bookingRepo,
		carRepo:       carRepo,
		userRepo:      userRepo,
		contractRepo:  contractRepo,
		emailSvc:      emailSvc,
		conflictScope: conflictScope,
		locks:         newCarLocks(),
	}
}

// CreateBooking runs the full reservation sequence under the car's lock:
// existence checks, availability check, range validation, conflict check,
// pricing, persistence, and the flip of the car to RENTED. Holding the lock
// keeps a concurrent request for the same car from passing the conflict
// check before this one persists.
func (s *bookingService) CreateBooking(ctx context.Context, userID, carID int32, start, end time.Time) (*domain.Booking, error) {
	unlock := s.locks.Lock(carID)
	defer unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if car.Status != domain.CarStatusAvailable {
		return nil, &domain.UnavailableError{CarID: car.ID, Status: car.Status}
	}

	if !end.After(start) {
		return nil, &domain.InvalidRangeError{Start: start, End: end}
	}

	if err := s.checkConflict(ctx, carID, start, end); err != nil {
		return nil, err
	}

	rentalDays, totalCost, err := utils.CalculateRentalCost(start, end, car.PricePerDay)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:     userID,
		CarID:      carID,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.BookingStatusPending,
		RentalDays: rentalDays,
		TotalCost:  totalCost,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.carRepo.UpdateStatus(ctx, carID, domain.CarStatusRented); err != nil {
		return nil, fmt.Errorf("booking %d created but car %d not marked rented: %w", booking.ID, carID, err)
	}

	booking.User = user
	booking.Car = car
	return booking, nil
}

// UpdateBookingStatus applies a transition from the booking state machine.
// Confirmation creates the booking's contract exactly once; terminal states
// release the car.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID int32, status string) (*domain.Booking, *domain.Contract, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if !domain.ValidBookingStatus(status) {
		return nil, nil, &domain.TransitionError{BookingID: bookingID, From: booking.Status, To: domain.BookingStatus(status)}
	}
	newStatus := domain.BookingStatus(status)

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, nil, &domain.TransitionError{BookingID: bookingID, From: booking.Status, To: newStatus}
	}

	unlock := s.locks.Lock(booking.CarID)
	defer unlock()

	var contract *domain.Contract
	if newStatus == domain.BookingStatusConfirmed {
		contract, err = s.ensureContract(ctx, booking)
		if err != nil {
			return nil, nil, err
		}
	}

	if newStatus == domain.BookingStatusCompleted || newStatus == domain.BookingStatusCancelled {
		if err := s.carRepo.UpdateStatus(ctx, booking.CarID, domain.CarStatusAvailable); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Booking references a missing car", "booking_id", booking.ID, "car_id", booking.CarID)
			} else {
				return nil, nil, err
			}
		}
	}

	booking.Status = newStatus
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("failed to update booking %d: %w", bookingID, err)
	}

	s.notifyStatusChange(ctx, booking, newStatus)

	return booking, contract, nil
}

// ensureContract returns the booking's contract, creating it if this is the
// first confirmation. The lookup guard keeps re-confirmation attempts from
// inserting a duplicate.
func (s *bookingService) ensureContract(ctx context.Context, booking *domain.Booking) (*domain.Contract, error) {
	existing, err := s.contractRepo.GetByBookingID(ctx, booking.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	contract := &domain.Contract{
		Reference:    uuid.NewString(),
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		CarID:        booking.CarID,
		ContractDate: time.Now(),
		Status:       domain.ContractStatusActive,
		TotalCost:    booking.TotalCost,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to create contract for booking %d: %w", booking.ID, err)
	}
	return contract, nil
}

// CheckBookingConflict reports whether [start, end) overlaps a blocking
// booking for the car. Exposed separately because creation needs the answer
// before the booking row exists.
func (s *bookingService) CheckBookingConflict(ctx context.Context, carID int32, start, end time.Time) (bool, error) {
	err := s.checkConflict(ctx, carID, start, end)
	if errors.Is(err, domain.ErrBookingConflict) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *bookingService) checkConflict(ctx context.Context, carID int32, start, end time.Time) error {
	bookings, err := s.bookingRepo.ListByCar(ctx, carID)
	if err != nil {
		return fmt.Errorf("failed to load bookings for car %d: %w", carID, err)
	}

	var ranges []utils.DateRange
	var candidates []domain.Booking
	for _, b := range bookings {
		if s.conflictScope == config.ConflictScopeActive && b.Status.Terminal() {
			continue
		}
		ranges = append(ranges, utils.DateRange{Start: b.StartDate, End: b.EndDate})
		candidates = append(candidates, b)
	}

	if i := utils.HasConflict(ranges, start, end); i >= 0 {
		return &domain.ConflictError{CarID: carID, ConflictingBookID: candidates[i].ID}
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populate(ctx, booking)
	return booking, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx, filter)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID)
}

func (s *bookingService) GetBookingSummary(ctx context.Context) (*domain.BookingSummary, error) {
	return s.bookingRepo.Summary(ctx, 10)
}

func (s *bookingService) GetUserContracts(ctx context.Context, userID int32) ([]domain.Contract, error) {
	return s.contractRepo.ListByUser(ctx, userID)
}

// populate attaches the renter and car for detail views. Lookup failures are
// not fatal; the booking itself is the answer.
func (s *bookingService) populate(ctx context.Context, booking *domain.Booking) {
	if user, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
		booking.User = user
	}
	if car, err := s.carRepo.GetByID(ctx, booking.CarID); err == nil {
		booking.Car = car
	}
}

func (s *bookingService) notifyStatusChange(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	if s.emailSvc == nil {
		return
	}
	if status != domain.BookingStatusConfirmed && status != domain.BookingStatusCancelled {
		return
	}

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		logger.Warn("Skipping booking notification, renter lookup failed", "booking_id", booking.ID, "error", err)
		return
	}
	carLabel := fmt.Sprintf("car %d", booking.CarID)
	if car, err := s.carRepo.GetByID(ctx, booking.CarID); err == nil {
		carLabel = fmt.Sprintf("%s %s (%s)", car.Brand, car.Model, car.LicensePlate)
	}

	switch status {
	case domain.BookingStatusConfirmed:
		if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, user.Name, carLabel, booking.TotalCost); err != nil {
			logger.Error("Failed to send booking confirmation email", "booking_id", booking.ID, "error", err)
		}
	case domain.BookingStatusCancelled:
		if err := s.emailSvc.SendBookingCancellation(ctx, user.Email, user.Name, carLabel); err != nil {
			logger.Error("Failed to send booking cancellation email", "booking_id", booking.ID, "error", err)
		}
	}
}
