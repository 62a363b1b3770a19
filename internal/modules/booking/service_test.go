package booking

import (
	"context"
	"strings"
	"testing"

	"freight-booking/internal/models"
)

// fakeFleet records reservations and releases so tests can assert the
// booking workflow drives the fleet correctly.
type fakeFleet struct {
	unavailable map[string]bool
	reserved    [][2]string
	released    [][2]string
	completed   []bool
}

func newFakeFleet() *fakeFleet {
	return &fakeFleet{unavailable: make(map[string]bool)}
}

func (f *fakeFleet) Estimate(ctx context.Context, truckType string, weightKg float64) (float64, error) {
	if truckType == "Hovercraft" {
		return 0, models.ErrUnknownTruckType
	}
	return 500 + weightKg*0.5, nil
}

func (f *fakeFleet) Reserve(ctx context.Context, truckID, driverID string) error {
	if f.unavailable[truckID] || f.unavailable[driverID] {
		return models.ErrResourceUnavailable
	}
	f.reserved = append(f.reserved, [2]string{truckID, driverID})
	return nil
}

func (f *fakeFleet) Release(ctx context.Context, truckID, driverID string, completed bool) error {
	f.released = append(f.released, [2]string{truckID, driverID})
	f.completed = append(f.completed, completed)
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	return &models.Principal{ID: id, Name: "John Doe", Email: id + "@demo.test", Role: models.RoleConsumer}, nil
}

type fakeNotifier struct {
	events []models.BookingStatus
}

func (f *fakeNotifier) BookingUpdated(ctx context.Context, b *models.Booking) {
	f.events = append(f.events, b.Status)
}

func newTestService() (*Service, *fakeFleet, *fakeNotifier) {
	fleet := newFakeFleet()
	notifier := &fakeNotifier{}
	svc := NewService(NewRepository(), fleet, fakeDirectory{}, notifier)
	return svc, fleet, notifier
}

func validCreateRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		PickupAddress:   models.Address{Street: "1 MG Road", City: "Mumbai", State: "MH", Zip: "400001", Lat: 19.076, Lng: 72.8777},
		DeliveryAddress: models.Address{Street: "2 FC Road", City: "Pune", State: "MH", Zip: "411001", Lat: 18.5204, Lng: 73.8567},
		TruckType:       "Mini Truck",
		Goods:           models.GoodsDetails{WeightKg: 500, Quantity: 10, Fragile: false, Description: "machine parts"},
		PickupDate:      "2026-09-01",
		PickupTime:      "09:00",
		PriceEstimate:   750,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	if b.Status != models.StatusPending {
		t.Errorf("status = %s; want pending", b.Status)
	}
	if !strings.HasPrefix(b.ID, "BK") {
		t.Errorf("id = %q; want BK prefix", b.ID)
	}
	if b.ConsumerName != "John Doe" {
		t.Errorf("consumer name = %q; want resolved name", b.ConsumerName)
	}
	if b.Version != 1 {
		t.Errorf("version = %d; want 1", b.Version)
	}
	if len(notifier.events) != 1 || notifier.events[0] != models.StatusPending {
		t.Errorf("notifier events = %v; want [pending]", notifier.events)
	}

	// newest booking comes first for its consumer
	second, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	mine, err := svc.ListConsumerBookings(ctx, "C001")
	if err != nil {
		t.Fatalf("ListConsumerBookings error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d bookings; want 2", len(mine))
	}
	if mine[0].ID != second.ID {
		t.Errorf("first listed = %s; want newest %s", mine[0].ID, second.ID)
	}
	if mine[0].ID == mine[1].ID {
		t.Error("booking identifiers must be unique")
	}
}

func TestCreateBookingUnknownTruckType(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.TruckType = "Hovercraft"
	if _, err := svc.CreateBooking(context.Background(), "C001", req); err != models.ErrUnknownTruckType {
		t.Errorf("err = %v; want ErrUnknownTruckType", err)
	}
}

func TestConsumerIsolation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, "C001", validCreateRequest()); err != nil {
		t.Fatal(err)
	}
	b2, err := svc.CreateBooking(ctx, "C002", validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	mine, _ := svc.ListConsumerBookings(ctx, "C001")
	for _, b := range mine {
		if b.ConsumerID != "C001" {
			t.Errorf("list for C001 contained booking owned by %s", b.ConsumerID)
		}
	}

	// a consumer cannot read someone else's booking, not even its existence
	if _, err := svc.GetBookingDetails(ctx, b2.ID, "C001", string(models.RoleConsumer)); err != models.ErrNotFound {
		t.Errorf("cross-consumer read err = %v; want ErrNotFound", err)
	}
	// an agent can
	if _, err := svc.GetBookingDetails(ctx, b2.ID, "A001", string(models.RoleAgent)); err != nil {
		t.Errorf("agent read err = %v; want nil", err)
	}
}

func TestAssign(t *testing.T) {
	svc, fleet, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	assigned, err := svc.Assign(ctx, b.ID, "TRK1", "DRV1")
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if assigned.Status != models.StatusAssigned {
		t.Errorf("status = %s; want assigned", assigned.Status)
	}
	if assigned.TruckID == nil || *assigned.TruckID != "TRK1" {
		t.Errorf("truck id = %v; want TRK1", assigned.TruckID)
	}
	if assigned.DriverID == nil || *assigned.DriverID != "DRV1" {
		t.Errorf("driver id = %v; want DRV1", assigned.DriverID)
	}
	if len(fleet.reserved) != 1 || fleet.reserved[0] != [2]string{"TRK1", "DRV1"} {
		t.Errorf("fleet.reserved = %v; want the assigned pair", fleet.reserved)
	}

	// a second assignment of the same booking must fail and not reserve
	if _, err := svc.Assign(ctx, b.ID, "TRK2", "DRV2"); err != models.ErrInvalidTransition {
		t.Errorf("re-assign err = %v; want ErrInvalidTransition", err)
	}
	if len(fleet.reserved) != 1 {
		t.Errorf("fleet.reserved grew to %d after failed assign", len(fleet.reserved))
	}
}

func TestAssignMissingBooking(t *testing.T) {
	svc, fleet, _ := newTestService()

	if _, err := svc.Assign(context.Background(), "BK0", "TRK1", "DRV1"); err != models.ErrNotFound {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
	if len(fleet.reserved) != 0 {
		t.Error("failed assign must not reserve resources")
	}
}

func TestAssignUnavailableResource(t *testing.T) {
	svc, fleet, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}
	fleet.unavailable["TRK9"] = true

	if _, err := svc.Assign(ctx, b.ID, "TRK9", "DRV1"); err != models.ErrResourceUnavailable {
		t.Errorf("err = %v; want ErrResourceUnavailable", err)
	}
	got, _ := svc.GetBookingDetails(ctx, b.ID, "C001", string(models.RoleConsumer))
	if got.Status != models.StatusPending {
		t.Errorf("booking status = %s after failed assign; want pending", got.Status)
	}
}

func TestStatusLifecycle(t *testing.T) {
	svc, fleet, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	// pending -> delivered jump must be rejected before anything else
	if _, err := svc.UpdateStatus(ctx, b.ID, models.StatusDelivered); err != models.ErrInvalidTransition {
		t.Fatalf("pending->delivered err = %v; want ErrInvalidTransition", err)
	}
	// assigned is reachable only via Assign
	if _, err := svc.UpdateStatus(ctx, b.ID, models.StatusAssigned); err != models.ErrInvalidTransition {
		t.Fatalf("pending->assigned via status op err = %v; want ErrInvalidTransition", err)
	}

	if _, err := svc.Assign(ctx, b.ID, "TRK1", "DRV1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, models.StatusInTransit); err != nil {
		t.Fatalf("assigned->in-transit error: %v", err)
	}
	delivered, err := svc.UpdateStatus(ctx, b.ID, models.StatusDelivered)
	if err != nil {
		t.Fatalf("in-transit->delivered error: %v", err)
	}
	if delivered.Status != models.StatusDelivered {
		t.Errorf("status = %s; want delivered", delivered.Status)
	}

	// delivery must release the pair and credit the trip
	if len(fleet.released) != 1 || fleet.released[0] != [2]string{"TRK1", "DRV1"} {
		t.Errorf("fleet.released = %v; want the assigned pair", fleet.released)
	}
	if len(fleet.completed) != 1 || !fleet.completed[0] {
		t.Errorf("release completed flags = %v; want [true]", fleet.completed)
	}

	// terminal state stays terminal
	if _, err := svc.UpdateStatus(ctx, b.ID, models.StatusInTransit); err != models.ErrInvalidTransition {
		t.Errorf("delivered->in-transit err = %v; want ErrInvalidTransition", err)
	}
}

func TestUpdateStatusMissingBooking(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.UpdateStatus(context.Background(), "BK0", models.StatusInTransit); err != models.ErrNotFound {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestCancel(t *testing.T) {
	svc, fleet, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	// another consumer cannot cancel it
	if _, err := svc.Cancel(ctx, b.ID, "C002"); err != models.ErrNotFound {
		t.Errorf("foreign cancel err = %v; want ErrNotFound", err)
	}

	cancelled, err := svc.Cancel(ctx, b.ID, "C001")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s; want cancelled", cancelled.Status)
	}
	if len(fleet.released) != 0 {
		t.Error("cancelling an unassigned booking must not release resources")
	}

	// cancelled is terminal
	if _, err := svc.Cancel(ctx, b.ID, "C001"); err != models.ErrBookingNotCancellable {
		t.Errorf("double cancel err = %v; want ErrBookingNotCancellable", err)
	}
}

func TestCancelAfterAssignmentReleasesResources(t *testing.T) {
	svc, fleet, _ := newTestService()
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, "C001", validCreateRequest())
	if _, err := svc.Assign(ctx, b.ID, "TRK1", "DRV1"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Cancel(ctx, b.ID, "C001"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if len(fleet.released) != 1 || fleet.released[0] != [2]string{"TRK1", "DRV1"} {
		t.Errorf("fleet.released = %v; want the assigned pair", fleet.released)
	}
	if len(fleet.completed) != 1 || fleet.completed[0] {
		t.Errorf("release completed flags = %v; want [false]", fleet.completed)
	}
}

func TestCancelInTransit(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, "C001", validCreateRequest())
	svc.Assign(ctx, b.ID, "TRK1", "DRV1")
	svc.UpdateStatus(ctx, b.ID, models.StatusInTransit)

	if _, err := svc.Cancel(ctx, b.ID, "C001"); err != models.ErrBookingNotCancellable {
		t.Errorf("err = %v; want ErrBookingNotCancellable", err)
	}
}

func TestQuote(t *testing.T) {
	svc, _, _ := newTestService()

	q, err := svc.GetQuote(context.Background(), models.QuoteRequest{TruckType: "Mini Truck", WeightKg: 500})
	if err != nil {
		t.Fatalf("GetQuote error: %v", err)
	}
	if q.PriceEstimate != 750 {
		t.Errorf("estimate = %.2f; want 750.00", q.PriceEstimate)
	}

	if _, err := svc.GetQuote(context.Background(), models.QuoteRequest{TruckType: "Hovercraft", WeightKg: 1}); err != models.ErrUnknownTruckType {
		t.Errorf("err = %v; want ErrUnknownTruckType", err)
	}
}

func TestStatsAndEarnings(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// one delivered, one in transit, one pending, one cancelled
	delivered, _ := svc.CreateBooking(ctx, "C001", validCreateRequest())
	svc.Assign(ctx, delivered.ID, "TRK1", "DRV1")
	svc.UpdateStatus(ctx, delivered.ID, models.StatusInTransit)
	svc.UpdateStatus(ctx, delivered.ID, models.StatusDelivered)

	moving, _ := svc.CreateBooking(ctx, "C001", validCreateRequest())
	svc.Assign(ctx, moving.ID, "TRK2", "DRV2")
	svc.UpdateStatus(ctx, moving.ID, models.StatusInTransit)

	svc.CreateBooking(ctx, "C002", validCreateRequest())

	cancelled, _ := svc.CreateBooking(ctx, "C002", validCreateRequest())
	svc.Cancel(ctx, cancelled.ID, "C002")

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	want := models.BookingStats{Total: 4, Pending: 1, Active: 1, Completed: 1, Cancelled: 1}
	if *stats != want {
		t.Errorf("stats = %+v; want %+v", *stats, want)
	}

	report, err := svc.Earnings(ctx)
	if err != nil {
		t.Fatalf("Earnings error: %v", err)
	}
	if report.Deliveries != 1 {
		t.Errorf("deliveries = %d; want 1", report.Deliveries)
	}
	if report.TotalEarnings != 750 {
		t.Errorf("total earnings = %.2f; want 750.00", report.TotalEarnings)
	}
	if report.AveragePerTrip != 750 {
		t.Errorf("average = %.2f; want 750.00", report.AveragePerTrip)
	}
	if report.PendingEstimate != 750 {
		t.Errorf("pending estimate = %.2f; want 750.00 (one active booking)", report.PendingEstimate)
	}
}

func TestTracking(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, "C001", validCreateRequest())

	// no snapshot yet
	if _, err := svc.GetTracking(ctx, b.ID, "C001", string(models.RoleConsumer)); err != models.ErrNotFound {
		t.Errorf("tracking before report err = %v; want ErrNotFound", err)
	}

	// unknown bookings are a hard not-found, not a silent upsert
	if _, err := svc.ReportTracking(ctx, "BK0", models.TrackingUpdateRequest{Lat: 1, Lng: 2}); err != models.ErrNotFound {
		t.Errorf("report for unknown booking err = %v; want ErrNotFound", err)
	}

	if _, err := svc.ReportTracking(ctx, b.ID, models.TrackingUpdateRequest{Lat: 19.0, Lng: 72.8}); err != nil {
		t.Fatalf("ReportTracking error: %v", err)
	}
	// latest wins
	if _, err := svc.ReportTracking(ctx, b.ID, models.TrackingUpdateRequest{Lat: 18.6, Lng: 73.5}); err != nil {
		t.Fatalf("ReportTracking error: %v", err)
	}

	snap, err := svc.GetTracking(ctx, b.ID, "C001", string(models.RoleConsumer))
	if err != nil {
		t.Fatalf("GetTracking error: %v", err)
	}
	if snap.Lat != 18.6 || snap.Lng != 73.5 {
		t.Errorf("snapshot = (%f,%f); want latest (18.6,73.5)", snap.Lat, snap.Lng)
	}

	// a stranger cannot read the snapshot
	if _, err := svc.GetTracking(ctx, b.ID, "C002", string(models.RoleConsumer)); err != models.ErrNotFound {
		t.Errorf("foreign tracking read err = %v; want ErrNotFound", err)
	}
}
