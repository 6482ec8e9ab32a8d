package stats

import (
	"context"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

// DefaultDays is the range used when none is given: today and the 29 days
// before it.
const DefaultDays = 30

// DeletedService labels revenue whose service row is gone.
const DeletedService = "(deleted)"

type Source interface {
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
		status domain.Status,
	) ([]models.Appointment, error)
}

// Summary aggregates completed appointments. Results are cached per range and
// cache generation; every write bumps the generation.
type Summary struct {
	source Source
	loc    *time.Location
	cache  *gocache.Cache
	gen    atomic.Uint64
	now    func() time.Time
}

func NewSummary(source Source, loc *time.Location) *Summary {
	return &Summary{
		source: source,
		loc:    loc,
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
		now:    time.Now,
	}
}

// DefaultRange returns the local days covered when the caller gives none.
func (uc *Summary) DefaultRange() (time.Time, time.Time) {
	r := timezone.LastDays(uc.now(), DefaultDays, uc.loc)
	return r.Start, r.End.AddDate(0, 0, -1)
}

// Execute covers the local days from..to, both inclusive.
func (uc *Summary) Execute(ctx context.Context, from, to time.Time) (*dto.StatsSummary, error) {
	r := timezone.Range{
		Start: timezone.DayRange(from, uc.loc).Start,
		End:   timezone.DayRange(to, uc.loc).End,
	}
	// a summary computed across a write lands under a stale generation
	key := strconv.FormatUint(uc.gen.Load(), 10) + "|" +
		timezone.DayKey(r.Start, uc.loc) + "|" + timezone.DayKey(to, uc.loc)

	if v, ok := uc.cache.Get(key); ok {
		return v.(*dto.StatsSummary), nil
	}

	apps, err := uc.source.ListAppointmentsForPeriod(ctx, r.Start, r.End, domain.StatusDone)
	if err != nil {
		return nil, err
	}

	out := &dto.StatsSummary{
		From:      timezone.DayKey(r.Start, uc.loc),
		To:        timezone.DayKey(to, uc.loc),
		Revenue:   decimal.Zero,
		ByDay:     []dto.DayTotal{},
		ByService: []dto.ServiceTotal{},
	}

	byService := map[string]*dto.ServiceTotal{}
	for _, ap := range apps {
		price := decimal.Zero
		name := DeletedService
		if ap.Service.ID != 0 {
			price = ap.Service.Price
			name = ap.Service.Name
		}

		out.Count++
		out.Revenue = out.Revenue.Add(price)

		day := timezone.DayKey(ap.StartTime, uc.loc)
		if n := len(out.ByDay); n > 0 && out.ByDay[n-1].Day == day {
			out.ByDay[n-1].Count++
			out.ByDay[n-1].Total = out.ByDay[n-1].Total.Add(price)
		} else {
			out.ByDay = append(out.ByDay, dto.DayTotal{Day: day, Count: 1, Total: price})
		}

		st, ok := byService[name]
		if !ok {
			st = &dto.ServiceTotal{Service: name, Total: decimal.Zero}
			byService[name] = st
		}
		st.Count++
		st.Total = st.Total.Add(price)
	}

	for _, st := range byService {
		out.ByService = append(out.ByService, *st)
	}
	sort.Slice(out.ByService, func(i, j int) bool {
		a, b := out.ByService[i], out.ByService[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		return a.Service < b.Service
	})

	uc.cache.SetDefault(key, out)
	return out, nil
}

// Invalidate drops every cached summary.
func (uc *Summary) Invalidate() {
	uc.gen.Add(1)
	uc.cache.Flush()
}

// Invalidating returns a publisher that drops the cache before forwarding, so
// writers never depend on event delivery for fresh stats.
func (uc *Summary) Invalidating(next events.Publisher) events.Publisher {
	return invalidatingPublisher{summary: uc, next: next}
}

type invalidatingPublisher struct {
	summary *Summary
	next    events.Publisher
}

func (p invalidatingPublisher) Publish(ev events.Event) {
	if ev.Topic != events.TopicReminders {
		p.summary.Invalidate()
	}
	if p.next != nil {
		p.next.Publish(ev)
	}
}
