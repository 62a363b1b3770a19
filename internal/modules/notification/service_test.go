package notification

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"freight-booking/internal/models"
)

type fakeDirectory struct{}

func (fakeDirectory) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	return &models.Principal{ID: id, Name: "John Doe", Email: "john@demo.test"}, nil
}

type fakeMailer struct {
	sent []string // "to|subject"
	fail bool
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

func newTestService(mail *fakeMailer) *Service {
	return NewService(NewRepository(), fakeDirectory{}, mail, slog.Default())
}

func booking(status models.BookingStatus) *models.Booking {
	return &models.Booking{
		ID:              "BK1",
		ConsumerID:      "C001",
		TruckType:       "Mini Truck",
		Status:          status,
		PickupAddress:   models.Address{City: "Mumbai"},
		DeliveryAddress: models.Address{City: "Pune"},
	}
}

func TestBookingUpdatedRecordsNotification(t *testing.T) {
	mail := &fakeMailer{}
	svc := newTestService(mail)
	ctx := context.Background()

	svc.BookingUpdated(ctx, booking(models.StatusPending))
	svc.BookingUpdated(ctx, booking(models.StatusAssigned))

	list, err := svc.ListForUser(ctx, "C001")
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notifications; want 2", len(list))
	}
	// newest first
	if list[0].Title != "Truck Assigned" {
		t.Errorf("newest title = %q; want Truck Assigned", list[0].Title)
	}
	if list[1].Title != "Booking Created" {
		t.Errorf("oldest title = %q; want Booking Created", list[1].Title)
	}
	if !strings.Contains(list[0].Message, "BK1") {
		t.Errorf("message %q should name the booking", list[0].Message)
	}
	if len(mail.sent) != 0 {
		t.Errorf("mail sent for non-delivery events: %v", mail.sent)
	}
}

func TestDeliveredSendsMail(t *testing.T) {
	mail := &fakeMailer{}
	svc := newTestService(mail)

	svc.BookingUpdated(context.Background(), booking(models.StatusDelivered))

	if len(mail.sent) != 1 {
		t.Fatalf("mail sent %d times; want 1", len(mail.sent))
	}
	if mail.sent[0] != "john@demo.test|Shipment Delivered" {
		t.Errorf("mail = %q; want delivery confirmation to the consumer", mail.sent[0])
	}
}

func TestMailFailureDoesNotLoseNotification(t *testing.T) {
	mail := &fakeMailer{fail: true}
	svc := newTestService(mail)
	ctx := context.Background()

	svc.BookingUpdated(ctx, booking(models.StatusDelivered))

	list, err := svc.ListForUser(ctx, "C001")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("got %d notifications; the in-app record must survive a mail failure", len(list))
	}
}

func TestMarkRead(t *testing.T) {
	svc := newTestService(&fakeMailer{})
	ctx := context.Background()

	svc.BookingUpdated(ctx, booking(models.StatusPending))
	list, _ := svc.ListForUser(ctx, "C001")
	if len(list) != 1 || list[0].Read {
		t.Fatal("expected one unread notification")
	}

	n, err := svc.MarkRead(ctx, list[0].ID, "C001")
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if !n.Read {
		t.Error("notification not marked read")
	}

	// someone else's notification is not found
	if _, err := svc.MarkRead(ctx, list[0].ID, "C002"); err != models.ErrNotFound {
		t.Errorf("foreign mark-read err = %v; want ErrNotFound", err)
	}
	if _, err := svc.MarkRead(ctx, "missing", "C001"); err != models.ErrNotFound {
		t.Errorf("unknown id err = %v; want ErrNotFound", err)
	}
}
