// README: Orchestrator tests (validation, degradation, reset ordering, stale attempts).
package trip

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"roadtrip/internal/ai"
	"roadtrip/internal/geo"
	"roadtrip/internal/types"
)

// events records side effects across fakes so ordering can be asserted.
type events struct{ log []string }

func (e *events) add(s string) { e.log = append(e.log, s) }

type fakeGen struct {
	ev    *events
	plan  *ai.TripPlan
	err   error
	calls int
	// onCall lets a test interleave a concurrent planning attempt.
	onCall func()

	gotOrigin      string
	gotDestination string
	gotStops       []string
}

func (f *fakeGen) GenerateTripPlan(_ context.Context, origin, destination string, stops []string) (*ai.TripPlan, error) {
	f.calls++
	f.gotOrigin, f.gotDestination, f.gotStops = origin, destination, stops
	if f.ev != nil {
		f.ev.add("generate")
	}
	if f.onCall != nil {
		f.onCall()
	}
	return f.plan, f.err
}

func (f *fakeGen) CheckRouteAlerts(_ context.Context, _ []string) ([]ai.RouteAlert, error) {
	return nil, nil
}

type fakeGeocoder struct {
	places  map[string]geo.Place
	calls   int
	queries []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (*geo.Place, error) {
	f.calls++
	f.queries = append(f.queries, query)
	p, ok := f.places[query]
	if !ok {
		return nil, geo.ErrNoMatch
	}
	return &p, nil
}

type fakeRouter struct {
	geometry  []types.Point
	err       error
	calls     int
	gotPoints []types.Point
}

func (f *fakeRouter) RouteGeometry(_ context.Context, points []types.Point) ([]types.Point, error) {
	f.calls++
	f.gotPoints = points
	return f.geometry, f.err
}

type fakeMonitor struct {
	ev       *events
	active   bool
	cleared  int
	gotOrder []string
}

func (f *fakeMonitor) Activate(order []string) {
	f.active = true
	f.gotOrder = order
	if f.ev != nil {
		f.ev.add("monitor.activate")
	}
}

func (f *fakeMonitor) Deactivate() {
	f.active = false
	if f.ev != nil {
		f.ev.add("monitor.deactivate")
	}
}

func (f *fakeMonitor) Clear() {
	f.cleared++
	if f.ev != nil {
		f.ev.add("monitor.clear")
	}
}

func testPlan() *ai.TripPlan {
	return &ai.TripPlan{
		OptimizedOrder: []string{"New York, NY", "Philadelphia, PA", "Washington, DC"},
		Weather:        "Clear.",
		Traffic:        "Light.",
		GasStations:    []string{"Wawa, Exit 4"},
		Directions:     []string{"Head south on I-95."},
	}
}

func eastCoastPlaces() map[string]geo.Place {
	return map[string]geo.Place{
		"New York, NY":     {Lat: 40.7128, Lon: -74.0060, DisplayName: "New York"},
		"Philadelphia, PA": {Lat: 39.9526, Lon: -75.1652, DisplayName: "Philadelphia"},
		"Washington, DC":   {Lat: 38.9072, Lon: -77.0369, DisplayName: "Washington"},
	}
}

func TestPlan_ValidationMakesNoExternalCalls(t *testing.T) {
	cases := []struct {
		name                string
		origin, destination string
	}{
		{"empty origin", "", "Washington, DC"},
		{"empty destination", "New York, NY", ""},
		{"both blank", "   ", "\t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGen{plan: testPlan()}
			gc := &fakeGeocoder{places: eastCoastPlaces()}
			rt := &fakeRouter{}
			svc := NewService(gen, gc, rt, &fakeMonitor{})

			_, err := svc.Plan(context.Background(), PlanCommand{Origin: tc.origin, Destination: tc.destination})
			if !errors.Is(err, ErrMissingEndpoints) {
				t.Fatalf("err = %v, want ErrMissingEndpoints", err)
			}
			if gen.calls+gc.calls+rt.calls != 0 {
				t.Errorf("external calls made on validation failure: gen=%d geocode=%d route=%d",
					gen.calls, gc.calls, rt.calls)
			}
		})
	}
}

func TestPlan_HappyPath(t *testing.T) {
	gen := &fakeGen{plan: testPlan()}
	gc := &fakeGeocoder{places: eastCoastPlaces()}
	rt := &fakeRouter{geometry: []types.Point{
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: 39.9526, Lon: -75.1652},
		{Lat: 38.9072, Lon: -77.0369},
	}}
	svc := NewService(gen, gc, rt, &fakeMonitor{})

	res, err := svc.Plan(context.Background(), PlanCommand{
		Origin:      "New York, NY",
		Destination: "Washington, DC",
		Stops:       []string{"Philadelphia, PA"},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	if gen.gotOrigin != "New York, NY" || gen.gotDestination != "Washington, DC" {
		t.Errorf("generator got (%q, %q)", gen.gotOrigin, gen.gotDestination)
	}
	if !reflect.DeepEqual(gen.gotStops, []string{"Philadelphia, PA"}) {
		t.Errorf("generator stops = %v", gen.gotStops)
	}

	// Geocoded sequentially, left to right.
	if !reflect.DeepEqual(gc.queries, testPlan().OptimizedOrder) {
		t.Errorf("geocode order = %v", gc.queries)
	}

	if len(res.Markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(res.Markers))
	}
	if rt.calls != 1 || len(rt.gotPoints) != 3 {
		t.Errorf("router calls = %d with %d points, want 1 call / 3 points", rt.calls, len(rt.gotPoints))
	}
	if len(res.RouteGeometry) != 3 {
		t.Errorf("geometry length = %d, want 3", len(res.RouteGeometry))
	}
	if res.DistanceKm <= 0 {
		t.Errorf("distance = %f, want > 0", res.DistanceKm)
	}

	// Published state matches the returned result.
	snap := svc.Snapshot()
	if snap.Plan == nil || len(snap.Markers) != 3 || snap.Active {
		t.Errorf("published snapshot off: %+v", snap)
	}
}

func TestPlan_BlankStopsFiltered(t *testing.T) {
	gen := &fakeGen{plan: testPlan()}
	svc := NewService(gen, &fakeGeocoder{places: eastCoastPlaces()}, &fakeRouter{}, &fakeMonitor{})

	_, err := svc.Plan(context.Background(), PlanCommand{
		Origin:      "New York, NY",
		Destination: "Washington, DC",
		Stops:       []string{"", "Philadelphia, PA", "   "},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !reflect.DeepEqual(gen.gotStops, []string{"Philadelphia, PA"}) {
		t.Errorf("stops = %v, want blank entries dropped", gen.gotStops)
	}
}

func TestPlan_GenerationFailureIsFatal(t *testing.T) {
	gen := &fakeGen{err: errors.New("model unavailable")}
	gc := &fakeGeocoder{places: eastCoastPlaces()}
	svc := NewService(gen, gc, &fakeRouter{}, &fakeMonitor{})

	_, err := svc.Plan(context.Background(), PlanCommand{Origin: "A", Destination: "B"})
	if !errors.Is(err, ErrPlanGeneration) {
		t.Fatalf("err = %v, want ErrPlanGeneration", err)
	}
	if gc.calls != 0 {
		t.Errorf("geocoder called %d times after generation failure", gc.calls)
	}
	if snap := svc.Snapshot(); snap.Plan != nil {
		t.Errorf("failed attempt published a plan")
	}
}

func TestPlan_UnresolvedMiddleStopDropped(t *testing.T) {
	places := eastCoastPlaces()
	delete(places, "Philadelphia, PA")

	gen := &fakeGen{plan: testPlan()}
	rt := &fakeRouter{geometry: []types.Point{{Lat: 40.7, Lon: -74.0}, {Lat: 38.9, Lon: -77.0}}}
	svc := NewService(gen, &fakeGeocoder{places: places}, rt, &fakeMonitor{})

	res, err := svc.Plan(context.Background(), PlanCommand{
		Origin:      "New York, NY",
		Destination: "Washington, DC",
		Stops:       []string{"Philadelphia, PA"},
	})
	if err != nil {
		t.Fatalf("drop is not an operation failure: %v", err)
	}

	if len(res.Markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(res.Markers))
	}
	// Original relative order preserved.
	if res.Markers[0].Label != "New York, NY" || res.Markers[1].Label != "Washington, DC" {
		t.Errorf("marker order: %+v", res.Markers)
	}
	// Two markers still qualify for routing.
	if rt.calls != 1 {
		t.Errorf("router calls = %d, want 1", rt.calls)
	}
}

func TestPlan_FewerThanTwoMarkersSkipsRouting(t *testing.T) {
	places := map[string]geo.Place{"New York, NY": {Lat: 40.7, Lon: -74.0}}
	gen := &fakeGen{plan: testPlan()}
	rt := &fakeRouter{}
	svc := NewService(gen, &fakeGeocoder{places: places}, rt, &fakeMonitor{})

	res, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if rt.calls != 0 {
		t.Errorf("router called with fewer than two markers")
	}
	if len(res.RouteGeometry) != 0 || res.DistanceKm != 0 {
		t.Errorf("expected empty geometry, got %d points / %f km", len(res.RouteGeometry), res.DistanceKm)
	}
}

func TestPlan_RoutingFailureDegrades(t *testing.T) {
	gen := &fakeGen{plan: testPlan()}
	rt := &fakeRouter{err: errors.New("osrm down")}
	svc := NewService(gen, &fakeGeocoder{places: eastCoastPlaces()}, rt, &fakeMonitor{})

	res, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"})
	if err != nil {
		t.Fatalf("routing failure must not fail the plan: %v", err)
	}
	if len(res.RouteGeometry) != 0 {
		t.Errorf("geometry should be empty on routing failure")
	}
	if len(res.Markers) != 3 {
		t.Errorf("markers = %d, want 3", len(res.Markers))
	}
}

func TestPlan_ResetsBeforeFirstExternalCall(t *testing.T) {
	ev := &events{}
	gen := &fakeGen{ev: ev, plan: testPlan()}
	mon := &fakeMonitor{ev: ev}
	svc := NewService(gen, &fakeGeocoder{places: eastCoastPlaces()}, &fakeRouter{}, mon)

	// First trip planned and started.
	if _, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"}); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !svc.Snapshot().Active {
		t.Fatal("trip should be active")
	}

	// Second attempt must deactivate and clear before generating.
	ev.log = nil
	if _, err := svc.Plan(context.Background(), PlanCommand{Origin: "Boston, MA", Destination: "Washington, DC"}); err != nil {
		t.Fatalf("re-plan: %v", err)
	}

	want := []string{"monitor.deactivate", "monitor.clear", "generate"}
	if !reflect.DeepEqual(ev.log, want) {
		t.Errorf("event order = %v, want %v", ev.log, want)
	}
	if svc.Snapshot().Active {
		t.Error("active flag survived a re-plan")
	}
}

func TestPlan_StaleAttemptDoesNotPublish(t *testing.T) {
	gc := &fakeGeocoder{places: eastCoastPlaces()}
	rt := &fakeRouter{}
	mon := &fakeMonitor{}

	var svc *Service
	gen := &fakeGen{plan: testPlan()}
	gen.onCall = func() {
		// A second submission arrives while the first generation is in
		// flight: its eager reset bumps the attempt counter.
		svc.beginAttempt()
	}
	svc = NewService(gen, gc, rt, mon)

	res, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	// The stale attempt still hands its result to its caller…
	if res.Plan == nil {
		t.Fatal("stale attempt returned no result")
	}
	// …but must not publish it over the newer attempt's reset state.
	if snap := svc.Snapshot(); snap.Plan != nil {
		t.Errorf("stale attempt overwrote newer state: %+v", snap.Plan.OptimizedOrder)
	}
}

func TestStart_RequiresPlan(t *testing.T) {
	mon := &fakeMonitor{}
	svc := NewService(&fakeGen{}, &fakeGeocoder{}, &fakeRouter{}, mon)

	if err := svc.Start(); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("err = %v, want ErrNoPlan", err)
	}
	if mon.active {
		t.Error("monitor activated without a plan")
	}
}

func TestStartStop_DrivesMonitor(t *testing.T) {
	mon := &fakeMonitor{}
	svc := NewService(&fakeGen{plan: testPlan()}, &fakeGeocoder{places: eastCoastPlaces()}, &fakeRouter{}, mon)

	if _, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"}); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !mon.active {
		t.Error("monitor not activated")
	}
	if !reflect.DeepEqual(mon.gotOrder, testPlan().OptimizedOrder) {
		t.Errorf("monitor order = %v", mon.gotOrder)
	}

	svc.Stop()
	if mon.active {
		t.Error("monitor still active after stop")
	}
	if svc.Snapshot().Active {
		t.Error("active flag still set after stop")
	}
	// Stop is idempotent.
	svc.Stop()
}

func TestMarkersAreOrderPreservingSubsequence(t *testing.T) {
	// Every subset of resolvable names must yield markers in order.
	order := testPlan().OptimizedOrder
	for mask := 0; mask < 1<<len(order); mask++ {
		places := map[string]geo.Place{}
		var want []string
		for i, name := range order {
			if mask&(1<<i) != 0 {
				places[name] = eastCoastPlaces()[name]
				want = append(want, name)
			}
		}

		svc := NewService(&fakeGen{plan: testPlan()}, &fakeGeocoder{places: places}, &fakeRouter{}, &fakeMonitor{})
		res, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"})
		if err != nil {
			t.Fatalf("mask %b: %v", mask, err)
		}

		var got []string
		for _, m := range res.Markers {
			got = append(got, m.Label)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("mask %b: markers = %v, want %v", mask, got, want)
		}
		if len(res.Markers) > len(order) {
			t.Errorf("mask %b: more markers than order entries", mask)
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	svc := NewService(&fakeGen{plan: testPlan()}, &fakeGeocoder{places: eastCoastPlaces()},
		&fakeRouter{geometry: []types.Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}}, &fakeMonitor{})

	if _, err := svc.Plan(context.Background(), PlanCommand{Origin: "New York, NY", Destination: "Washington, DC"}); err != nil {
		t.Fatalf("plan: %v", err)
	}

	snap := svc.Snapshot()
	snap.Markers[0].Label = "mutated"
	snap.RouteGeometry[0].Lat = -1

	fresh := svc.Snapshot()
	if fresh.Markers[0].Label == "mutated" || fresh.RouteGeometry[0].Lat == -1 {
		t.Error("Snapshot leaks internal slices")
	}
}

func TestPlan_ErrorMessageMentionsCause(t *testing.T) {
	gen := &fakeGen{err: errors.New("quota exceeded")}
	svc := NewService(gen, &fakeGeocoder{}, &fakeRouter{}, &fakeMonitor{})

	_, err := svc.Plan(context.Background(), PlanCommand{Origin: "A", Destination: "B"})
	if err == nil || !errors.Is(err, ErrPlanGeneration) {
		t.Fatalf("err = %v", err)
	}
	if want := fmt.Sprintf("%s: quota exceeded", ErrPlanGeneration); err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}
