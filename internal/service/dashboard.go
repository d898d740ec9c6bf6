package service

import (
	"context"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type dashboardService struct {
	carRepo     repository.CarRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
}

func NewDashboardService(carRepo repository.CarRepository, userRepo repository.UserRepository, bookingRepo repository.BookingRepository) DashboardService {
	return &dashboardService{carRepo: carRepo, userRepo: userRepo, bookingRepo: bookingRepo}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	totalCars, err := s.carRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeBookings, err := s.bookingRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.bookingRepo.Summary(ctx, 10)
	if err != nil {
		return nil, err
	}

	// Revenue counts only completed rentals, matching the back office
	// dashboard's definition.
	var revenue float64
	for _, sc := range summary.BookingsByStatus {
		if sc.Status == domain.BookingStatusCompleted {
			revenue = sc.TotalRevenue
		}
	}

	return &domain.DashboardStats{
		TotalCars:      totalCars,
		TotalUsers:     totalUsers,
		ActiveBookings: activeBookings,
		TotalRevenue:   revenue,
		RecentBookings: summary.RecentBookings,
	}, nil
}
