package service

import (
	"time"

	"dental-clinic-api/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// staleNote is appended to the notes of appointments cancelled by the sweep
const staleNote = "Cancelled: never confirmed before the scheduled time"

// HousekeepingService runs the nightly back-office sweep: pending
// appointments whose start time has passed were never confirmed and are
// cancelled so their slots stop blocking the overlap scan.
type HousekeepingService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	cron            *cron.Cron
}

func NewHousekeepingService(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *HousekeepingService {
	return &HousekeepingService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		cron:            cron.New(),
	}
}

// Start schedules the sweep every day at 00:10 and runs it once immediately
// so a restart catches up.
func (s *HousekeepingService) Start() error {
	if _, err := s.cron.AddFunc("10 0 * * *", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	go s.sweep()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *HousekeepingService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *HousekeepingService) sweep() {
	affected, err := s.appointmentRepo.ExpirePending(s.db, time.Now(), staleNote)
	if err != nil {
		s.log.Errorf("Housekeeping sweep failed: %+v", err)
		return
	}
	if affected > 0 {
		s.log.Infof("Housekeeping sweep cancelled %d stale pending appointments", affected)
	}
}
