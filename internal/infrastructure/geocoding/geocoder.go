package geocoding

import (
	"context"
	"strings"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Geocoder turns free-text addresses into coordinates. It never returns an
// error: when the source cannot answer, Resolve hands back Fallback
// coordinates and logs why.
type Geocoder struct {
	source   Source
	fallback *Fallback
	logger   *logrus.Logger
	tracer   trace.Tracer
}

var _ domain.Resolver = (*Geocoder)(nil)

func NewGeocoder(source Source, fallback *Fallback, logger *logrus.Logger, tracer trace.Tracer) *Geocoder {
	if fallback == nil {
		fallback = NewFallback(nil)
	}
	return &Geocoder{
		source:   source,
		fallback: fallback,
		logger:   logger,
		tracer:   tracer,
	}
}

// NormalizeAddress trims the address and collapses runs of whitespace.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

func (g *Geocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	ctx, span := g.tracer.Start(ctx, "Geocoder.Resolve")
	defer span.End()

	query := NormalizeAddress(address)

	coords, err := g.source.Lookup(ctx, query)
	if err != nil {
		reason := failureReason(err)
		coords = g.fallback.Coordinates()

		lookupsTotal.WithLabelValues(outcomeFallback).Inc()
		fallbacksTotal.WithLabelValues(reason).Inc()
		span.RecordError(err)
		span.SetAttributes(attribute.String("geo.fallback_reason", reason))
		g.logger.WithError(err).WithFields(logrus.Fields{
			"address": query,
			"reason":  reason,
		}).Warn("geocoding failed, using fallback coordinates")
		return coords, nil
	}

	lookupsTotal.WithLabelValues(outcomeResolved).Inc()
	span.SetAttributes(
		attribute.Float64("geo.latitude", coords.Latitude),
		attribute.Float64("geo.longitude", coords.Longitude),
	)
	return coords, nil
}
