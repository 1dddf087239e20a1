package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/payment"
)

// BookingNotice carries everything the templates need about one booking.
type BookingNotice struct {
	Rental  *domain.Rental
	Vehicle *domain.Vehicle
	Vendor  *domain.User
	Renter  *domain.User
}

type bookingNotifier struct {
	email EmailSender
	push  PushSender
}

// NewBookingNotifier fans booking notices out to email and push. Either
// sender may be nil.
func NewBookingNotifier(email EmailSender, push PushSender) Notifier {
	return &bookingNotifier{email: email, push: push}
}

func (n *bookingNotifier) BookingConfirmed(ctx context.Context, b BookingNotice) error {
	rt, v := b.Rental, b.Vehicle
	subject := fmt.Sprintf("New booking: %s", v.Name)
	plain := fmt.Sprintf("%s booked %d x %s from %s to %s.\nTotal: Rs. %s (%s, %s)\nBooking reference: %s",
		b.Renter.Name, rt.Quantity, v.Name, rt.StartDate, rt.EndDate,
		payment.FormatRupees(rt.TotalPricePaisa), rt.PaymentMethod, rt.PaymentStatus, rt.PaymentCorrelationID)
	html := fmt.Sprintf(`<html><body>
<h2>New booking for %s</h2>
<p><strong>%s</strong> booked %d unit(s) from <strong>%s</strong> to <strong>%s</strong>.</p>
<p>Total: Rs. %s paid via %s (%s)</p>
<p>Renter phone: %s</p>
</body></html>`, v.Name, b.Renter.Name, rt.Quantity, rt.StartDate, rt.EndDate,
		payment.FormatRupees(rt.TotalPricePaisa), rt.PaymentMethod, rt.PaymentStatus, b.Renter.PhoneNumber)

	return n.send(ctx, b, subject, plain, html, "Booking confirmed",
		fmt.Sprintf("%s, %s to %s", v.Name, rt.StartDate, rt.EndDate))
}

func (n *bookingNotifier) BookingCancelled(ctx context.Context, b BookingNotice) error {
	rt, v := b.Rental, b.Vehicle
	subject := fmt.Sprintf("Booking cancelled: %s", v.Name)
	plain := fmt.Sprintf("%s cancelled the booking of %s from %s to %s.", b.Renter.Name, v.Name, rt.StartDate, rt.EndDate)
	html := "<html><body><p>" + plain + "</p></body></html>"
	return n.send(ctx, b, subject, plain, html, "Booking cancelled", plain)
}

func (n *bookingNotifier) send(ctx context.Context, b BookingNotice, subject, plain, html, pushTitle, pushBody string) error {
	var errs []error
	if n.email != nil && b.Vendor.Email != "" {
		if err := n.email.SendEmail(ctx, b.Vendor.Email, b.Vendor.Name, subject, plain, html); err != nil {
			errs = append(errs, fmt.Errorf("email vendor: %w", err))
		}
	}
	if n.push != nil {
		data := map[string]string{
			"rental_id": strconv.Itoa(int(b.Rental.ID)),
			"status":    string(b.Rental.Status),
		}
		for _, u := range []*domain.User{b.Vendor, b.Renter} {
			if u == nil || u.DeviceToken == "" {
				continue
			}
			if err := n.push.SendPush(ctx, u.DeviceToken, pushTitle, pushBody, data); err != nil {
				errs = append(errs, fmt.Errorf("push user %d: %w", u.ID, err))
			}
		}
	}
	if len(errs) > 0 {
		logger.Warn("Booking notification partially failed", "rental_id", b.Rental.ID, "errors", len(errs))
	}
	return errors.Join(errs...)
}
