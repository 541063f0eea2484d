package geocoding

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
)

const fallbackJitter = 0.05

// Fallback produces coordinates near Dublin city centre when a lookup
// cannot be answered.
type Fallback struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFallback uses rnd as the jitter source. A nil rnd seeds one from the clock.
func NewFallback(rnd *rand.Rand) *Fallback {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Fallback{rnd: rnd}
}

// Coordinates returns the default location shifted by an independent uniform
// offset in [-0.05, 0.05) on each axis.
func (f *Fallback) Coordinates() domain.Coordinates {
	f.mu.Lock()
	defer f.mu.Unlock()

	return domain.Coordinates{
		Latitude:  domain.DefaultLatitude + (f.rnd.Float64()*2-1)*fallbackJitter,
		Longitude: domain.DefaultLongitude + (f.rnd.Float64()*2-1)*fallbackJitter,
	}
}
