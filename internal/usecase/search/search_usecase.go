package search

import (
	"context"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	searchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_searches_total",
			Help: "Total number of profile searches",
		},
	)

	searchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_search_results",
			Help:    "Number of profiles returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// SearchRequest represents a search by age range and distance. Radius
// defaults to Criteria.Distance when omitted.
type SearchRequest struct {
	Criteria domain.MatchCriteria `json:"criteria"`
	Origin   domain.Coordinates   `json:"origin"`
	Radius   *float64             `json:"radius"`
}

func (r *SearchRequest) EffectiveRadius() float64 {
	if r.Radius != nil {
		return *r.Radius
	}
	return r.Criteria.Distance
}

// FilterProfiles keeps, in input order, every profile whose age at now lies
// within the criteria age range (inclusive) and whose coordinates are within
// radius kilometres of origin (inclusive). Interests are not considered.
func FilterProfiles(
	profiles []*domain.UserProfile,
	criteria domain.MatchCriteria,
	origin domain.Coordinates,
	radius float64,
	now time.Time,
) []*domain.UserProfile {
	matches := make([]*domain.UserProfile, 0)
	for _, p := range profiles {
		if !criteria.AgeRange.Contains(p.AgeAt(now)) {
			continue
		}
		if domain.Distance(p.Coordinates(), origin) > radius {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

type SearchUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *logrus.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewSearchUseCase(profileRepo repository.ProfileRepository, logger *logrus.Logger, tracer trace.Tracer) *SearchUseCase {
	return &SearchUseCase{
		profileRepo: profileRepo,
		logger:      logger,
		tracer:      tracer,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// FindProfilesByCriteria scans every stored profile.
func (uc *SearchUseCase) FindProfilesByCriteria(
	ctx context.Context,
	criteria domain.MatchCriteria,
	origin domain.Coordinates,
	radius float64,
) ([]*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "SearchUseCase.FindProfilesByCriteria")
	defer span.End()

	profiles, err := uc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := FilterProfiles(profiles, criteria, origin, radius, uc.now())

	searchesTotal.Inc()
	searchResults.Observe(float64(len(matches)))
	span.SetAttributes(
		attribute.Int("search.scanned", len(profiles)),
		attribute.Int("search.matched", len(matches)),
	)
	uc.logger.WithFields(logrus.Fields{
		"min_age": criteria.AgeRange.Min,
		"max_age": criteria.AgeRange.Max,
		"radius":  radius,
		"scanned": len(profiles),
		"matched": len(matches),
	}).Debug("profile search")

	return matches, nil
}
