package scheduler

import (
	"fmt"

	"github.com/codr1/bookingcard/internal/ratelimit"
)

const rateLimitCleanupJob = "ratelimit_cleanup"

// RegisterRateLimitCleanup prunes idle limiter entries on cronExpr.
func RegisterRateLimitCleanup(s *Service, limiter *ratelimit.Limiter, cronExpr string) error {
	if limiter == nil {
		return fmt.Errorf("rate limit cleanup requires a limiter")
	}
	if _, err := s.AddJob(rateLimitCleanupJob, cronExpr, limiter.Cleanup); err != nil {
		return fmt.Errorf("register %s: %w", rateLimitCleanupJob, err)
	}
	return nil
}
