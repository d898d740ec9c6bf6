package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type carService struct {
	carRepo  repository.CarRepository
	userRepo repository.UserRepository
}

func NewCarService(carRepo repository.CarRepository, userRepo repository.UserRepository) CarService {
	return &carService{carRepo: carRepo, userRepo: userRepo}
}

func (s *carService) GetAllCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	if filter.Status != "" {
		filter.Status = strings.ToUpper(filter.Status)
		// Unknown statuses fall through as "no constraint", matching the
		// lenient list-view filtering.
		if !domain.ValidCarStatus(filter.Status) {
			filter.Status = ""
		}
	}
	return s.carRepo.List(ctx, filter)
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByID(ctx, car.OwnerID); err == nil {
		car.Owner = owner
	}
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, car *domain.Car) error {
	car.LicensePlate = strings.ToUpper(strings.TrimSpace(car.LicensePlate))
	if car.LicensePlate == "" {
		return fmt.Errorf("license plate is required")
	}
	if car.PricePerDay < 0 {
		return fmt.Errorf("price per day must not be negative")
	}

	if _, err := s.carRepo.GetByLicensePlate(ctx, car.LicensePlate); err == nil {
		return domain.ErrDuplicateLicensePlate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	return s.carRepo.Create(ctx, car)
}

func (s *carService) UpdateCar(ctx context.Context, id int32, updates *domain.Car) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.LicensePlate != "" {
		plate := strings.ToUpper(strings.TrimSpace(updates.LicensePlate))
		if plate != car.LicensePlate {
			if existing, err := s.carRepo.GetByLicensePlate(ctx, plate); err == nil && existing.ID != id {
				return nil, domain.ErrDuplicateLicensePlate
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		car.LicensePlate = plate
	}
	if updates.Brand != "" {
		car.Brand = updates.Brand
	}
	if updates.Model != "" {
		car.Model = updates.Model
	}
	if updates.PricePerDay > 0 {
		car.PricePerDay = updates.PricePerDay
	}
	if updates.Status != "" {
		if !domain.ValidCarStatus(string(updates.Status)) {
			return nil, fmt.Errorf("invalid car status: %q", updates.Status)
		}
		car.Status = updates.Status
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, id int32) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.carRepo.Delete(ctx, id)
}
