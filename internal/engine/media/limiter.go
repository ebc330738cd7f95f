package media

import (
	"context"
	"sync"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"golang.org/x/time/rate"
)

// All YouTube-touching subprocess calls go through one process-wide
// limiter so tool-call bursts from the host don't hammer the extractor.
var (
	limiterOnce sync.Once
	ytLimiter   *rate.Limiter
)

func waitYouTube(ctx context.Context) error {
	limiterOnce.Do(func() {
		rps := engine.Cfg.YouTubeRPS
		if rps <= 0 {
			rps = 1
		}
		burst := engine.Cfg.YouTubeBurst
		if burst <= 0 {
			burst = 1
		}
		ytLimiter = rate.NewLimiter(rate.Limit(rps), burst)
	})
	return ytLimiter.Wait(ctx)
}
