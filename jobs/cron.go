package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CoverRepairer clears cover references that no longer point at one of the
// entity's own gallery images.
type CoverRepairer interface {
	RepairCoverReferences(ctx context.Context) (int64, error)
}

const coverRepairSpec = "@hourly"

// RunCoverRepair performs one repair pass with a bounded timeout.
func RunCoverRepair(repairer CoverRepairer) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	fixed, err := repairer.RepairCoverReferences(ctx)
	if err != nil {
		log.Printf("cover repair failed: %v", err)
		return
	}
	if fixed > 0 {
		log.Printf("cover repair cleared %d dangling references", fixed)
	}
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, repairer CoverRepairer) error {
	_, err := c.AddFunc(coverRepairSpec, func() {
		RunCoverRepair(repairer)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
