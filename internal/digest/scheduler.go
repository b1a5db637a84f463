package digest

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Scheduler fires the weekly digest run on a cron schedule. When Redis is
// available it takes a run lock first, so only one API instance sends the
// week's digests.
type Scheduler struct {
	cron     *cron.Cron
	service  *Service
	redis    *redis.Client
	schedule string
}

func NewScheduler(service *Service, redisClient *redis.Client, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		redis:    redisClient,
		schedule: schedule,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if !s.acquireLock() {
			log.Println("⏭ Weekly digest already handled by another instance")
			return
		}

		log.Println("⏰ Running weekly digest...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.service.Run(ctx)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("✅ Weekly digest scheduler started (%s)", s.schedule)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Weekly digest scheduler stopped")
}

// acquireLock claims this week's run via SetNX. Without Redis every instance
// runs, which is acceptable in development (sends are idempotent per week).
func (s *Scheduler) acquireLock() bool {
	if s.redis == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "digest:weekly:" + time.Now().UTC().Format("2006-01-02")
	ok, err := s.redis.SetNX(ctx, key, 1, 24*time.Hour).Result()
	if err != nil {
		log.Printf("Digest lock check failed, running anyway: %v", err)
		return true
	}

	return ok
}
