package planner

import (
	"fmt"
	"log"
	"time"

	"wayfare/models"
)

// Options are the tunables of the generation pipeline. The defaults
// match the product behavior: a 100 km cluster threshold ("same
// metropolitan area"), an 8 hour day walked at 4 km/h, and lodging
// matches discarded beyond 30 km.
type Options struct {
	MaxPerDay            int
	ClusterThresholdKm   float64
	DayTargetHours       float64
	WalkSpeedKmh         float64
	DefaultDurationHours float64
	// LodgingCutoffKm is applied where the packer consumes a lodging
	// match, not inside the match itself. 0 disables the cutoff.
	LodgingCutoffKm float64
}

func DefaultOptions() Options {
	return Options{
		MaxPerDay:            4,
		ClusterThresholdKm:   100,
		DayTargetHours:       8,
		WalkSpeedKmh:         4,
		DefaultDurationHours: 2,
		LodgingCutoffKm:      30,
	}
}

// Planner runs the generation pipeline and the manual edit operations.
// All methods are synchronous and CPU-bound; inputs arrive already
// loaded and outputs are returned for the caller to persist. Callers
// must enforce single-writer discipline per itinerary.
type Planner struct {
	Opts Options
	Log  *log.Logger
}

func New(opts Options, logger *log.Logger) *Planner {
	def := DefaultOptions()
	if opts.MaxPerDay <= 0 {
		opts.MaxPerDay = def.MaxPerDay
	}
	if opts.ClusterThresholdKm <= 0 {
		opts.ClusterThresholdKm = def.ClusterThresholdKm
	}
	if opts.DayTargetHours <= 0 {
		opts.DayTargetHours = def.DayTargetHours
	}
	if opts.WalkSpeedKmh <= 0 {
		opts.WalkSpeedKmh = def.WalkSpeedKmh
	}
	if opts.DefaultDurationHours <= 0 {
		opts.DefaultDurationHours = def.DefaultDurationHours
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{Opts: opts, Log: logger}
}

// GenerateRequest is the engine-side shape of a generate call. The trip
// config and the activity pool are fetched by the caller.
type GenerateRequest struct {
	Name      string
	MaxPerDay int
}

// Generate builds a day-by-day itinerary for the trip from the activity
// pool: score and select, cluster by location, route each cluster, pack
// days under the time budget, then regroup and reorder the days.
// Identity fields (itinerary id, owner) are left for the caller to fill.
func (p *Planner) Generate(trip *models.Trip, pool []models.Activity, req GenerateRequest) (*models.Itinerary, error) {
	if trip == nil || trip.DurationDays < 1 {
		return nil, fmt.Errorf("%w: trip with a positive duration is required", ErrInvalidRequest)
	}

	maxPerDay := p.Opts.MaxPerDay
	if req.MaxPerDay != 0 {
		if req.MaxPerDay < 1 || req.MaxPerDay > 10 {
			return nil, fmt.Errorf("%w: maxPerDay must be between 1 and 10", ErrInvalidRequest)
		}
		maxPerDay = req.MaxPerDay
	}

	selected, lodgings, err := p.selectActivities(pool, trip.DurationDays, maxPerDay)
	if err != nil {
		return nil, err
	}

	// Ungeocoded picks cannot be clustered or routed.
	geocoded := make([]models.Activity, 0, len(selected))
	for _, a := range selected {
		if !a.HasCoords() {
			p.Log.Printf("[PLAN] activity %s has no coordinates, excluded from scheduling", a.ActivityID)
			continue
		}
		geocoded = append(geocoded, a)
	}

	clusters := p.clusterByLocation(geocoded)
	p.Log.Printf("[PLAN] trip %s: %d selected activities in %d clusters over %d days",
		trip.TripID, len(geocoded), len(clusters), trip.DurationDays)

	days := p.packDays(clusters, lodgings, trip.DurationDays)
	days = p.optimizeDays(days)
	p.assignDates(days, trip.StartDate)

	name := req.Name
	if name == "" {
		name = trip.Name + " itinerary"
	}

	return &models.Itinerary{
		TripID:    trip.TripID,
		Name:      name,
		TotalDays: trip.DurationDays,
		Days:      days,
		TotalCost: TotalCost(days),
		CreatedAt: time.Now(),
	}, nil
}

func (p *Planner) assignDates(days []models.Day, startDate string) {
	if startDate == "" {
		return
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		p.Log.Printf("[PLAN] unparsable start date %q, leaving days undated", startDate)
		return
	}
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}
}
