package jobs

import (
	"context"
	"time"

	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/services"
)

// JudgeAssigner periodically assigns eligible judges to open challenges
// that have none yet.
type JudgeAssigner struct {
	challengeService *services.ChallengeService
	interval         time.Duration
	stopChan         chan struct{}
}

func NewJudgeAssigner(challengeService *services.ChallengeService, interval time.Duration) *JudgeAssigner {
	return &JudgeAssigner{
		challengeService: challengeService,
		interval:         interval,
		stopChan:         make(chan struct{}),
	}
}

// Start begins the assignment loop. Blocks until Stop is called.
func (ja *JudgeAssigner) Start() {
	logging.Infof("judge assigner started (interval: %v)", ja.interval)

	ticker := time.NewTicker(ja.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ja.run()
		case <-ja.stopChan:
			logging.Info("judge assigner stopped")
			return
		}
	}
}

// Stop stops the assignment loop.
func (ja *JudgeAssigner) Stop() {
	close(ja.stopChan)
}

func (ja *JudgeAssigner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	assigned, err := ja.challengeService.AssignPendingJudges(ctx)
	if err != nil {
		logging.Error(err, "judge assignment pass failed")
		return
	}
	if assigned > 0 {
		logging.Infof("assigned judges to %d challenges", assigned)
	}
}
