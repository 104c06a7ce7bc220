package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrDoctorBusy is returned when the per-doctor booking lock cannot be
// acquired within the retry budget
var ErrDoctorBusy = errors.New("another booking for this doctor is in progress, retry")

// releaseLockScript deletes the lock only if it still holds our token, so a
// slow worker cannot release a lock re-acquired by someone else. The Redis
// client switches to EVALSHA automatically after the first call.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for per-doctor booking locks
	lockKeyPrefix = "booking:lock:doctor:"

	// How long a lock may be held before Redis expires it; bounds the
	// damage of a crashed worker
	lockTTL = 5 * time.Second

	// Acquisition retry budget
	lockRetryInterval = 50 * time.Millisecond
	lockMaxRetries    = 20
)

// DoctorLockService serializes booking writes per doctor.
//
// The conflict validator is only correct against a consistent snapshot: two
// concurrent requests for the same doctor can both read the appointment set,
// both validate, and both insert (time-of-check to time-of-use). Holding
// this lock across read-validate-write closes that race; it is the
// surrounding-system invariant the scheduling engine cannot provide itself.
type DoctorLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewDoctorLockService(redisClient *redis.Client, log *logrus.Logger) *DoctorLockService {
	return &DoctorLockService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the booking lock for one doctor, retrying briefly before
// giving up with ErrDoctorBusy. The returned token must be passed to
// Release.
func (s *DoctorLockService) Acquire(ctx context.Context, doctorID uuid.UUID) (string, error) {
	key := lockKeyPrefix + doctorID.String()
	token := uuid.NewString()

	for attempt := 0; attempt < lockMaxRetries; attempt++ {
		ok, err := s.redisClient.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	s.log.Warnf("Booking lock for doctor %s still held after %d attempts", doctorID, lockMaxRetries)
	return "", ErrDoctorBusy
}

// Release frees the doctor's booking lock if the token still owns it.
// Failure to release is non-fatal: the TTL reclaims the lock.
func (s *DoctorLockService) Release(ctx context.Context, doctorID uuid.UUID, token string) {
	key := lockKeyPrefix + doctorID.String()
	if err := s.releaseWithScript(ctx, key, token); err != nil {
		s.log.Warnf("Failed to release booking lock for doctor %s (non-fatal, TTL %s): %+v", doctorID, lockTTL, err)
	}
}

func (s *DoctorLockService) releaseWithScript(ctx context.Context, key, token string) error {
	return releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err()
}
