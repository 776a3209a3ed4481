package service

import (
	"log"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/repository"
)

// JobService runs the periodic sweep that closes finished bookings and
// returns their cars to the available pool.
type JobService struct {
	repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) CompleteFinishedBookings() {
	log.Println("Running job: complete finished bookings")

	finished, err := s.repo.GetFinishedBookings()
	if err != nil {
		log.Printf("Error getting finished bookings: %v", err)
		return
	}
	if len(finished) == 0 {
		log.Println("No finished bookings to complete.")
		return
	}

	bookingIDs := make([]string, 0, len(finished))
	carIDs := make([]string, 0, len(finished))
	for _, f := range finished {
		bookingIDs = append(bookingIDs, f.BookingID)
		carIDs = append(carIDs, f.CarID)
	}

	if err := s.repo.UpdateBookingStatuses(bookingIDs, db.BookingCompleted); err != nil {
		log.Printf("Error completing bookings: %v", err)
		return
	}
	if err := s.repo.ReleaseCars(carIDs); err != nil {
		log.Printf("Error releasing cars: %v", err)
		return
	}
	log.Printf("Job finished: completed %d bookings and released their cars", len(bookingIDs))
}
