package postgres

import (
	"database/sql"

	"carrental-backoffice/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.BookingRepository
	repository.ContractRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		CarRepository:      NewCarRepository(db),
		BookingRepository:  NewBookingRepository(db),
		ContractRepository: NewContractRepository(db),
	}
}
