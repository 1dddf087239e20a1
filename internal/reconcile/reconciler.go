// Package reconcile turns a staged booking draft plus a payment gateway
// callback into a durable rental, or into a user-visible failure.
//
// Every reconciliation ends in Succeeded or Failed. On either, the staged
// draft is cleared and the session returns to Idle, including when a
// collaborator panics.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/draft"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/payment"
)

// RentalCreator is the durable side of a booking.
type RentalCreator interface {
	Create(ctx context.Context, d *domain.RentalDraft, paymentStatus domain.PaymentStatus) (*domain.Rental, error)
}

type Outcome struct {
	State         State                    `json:"state"`
	Trail         []State                  `json:"trail"`
	CorrelationID string                   `json:"correlation_id,omitempty"`
	Redirect      *payment.RedirectRequest `json:"redirect,omitempty"`
	Rental        *domain.Rental           `json:"rental,omitempty"`
	Err           error                    `json:"-"`
	UserMessage   string                   `json:"message"`
}

func (o *Outcome) Succeeded() bool { return o.State == StateSucceeded }

type Reconciler struct {
	drafts   draft.Store
	gateways *payment.Registry
	rentals  RentalCreator
	events   events.Publisher
	newID    func() string
	now      func() time.Time
}

func NewReconciler(drafts draft.Store, gateways *payment.Registry, rentals RentalCreator, publisher events.Publisher) *Reconciler {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Reconciler{
		drafts:   drafts,
		gateways: gateways,
		rentals:  rentals,
		events:   publisher,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Begin stages d under key and either issues a gateway redirect (online
// payment) or books immediately (cash and vendor-initiated bookings).
// A previously staged draft under the same key is replaced.
func (r *Reconciler) Begin(ctx context.Context, key string, d *domain.RentalDraft) (out *Outcome) {
	rn := r.newRun(ctx, key, StateIdle)
	defer r.finish(rn, &out)

	rn.draft = d
	adapter, err := r.gateways.Adapter(d.PaymentMethod)
	if err != nil {
		return rn.fail(err)
	}

	if d.PaymentCorrelationID == "" {
		d.PaymentCorrelationID = r.newID()
	}
	if d.CreatedOn.IsZero() {
		d.CreatedOn = r.now().UTC()
	}
	rn.log = logger.WithBooking(key, d.PaymentCorrelationID)

	if err := r.drafts.Save(ctx, key, d); err != nil {
		return rn.fail(fmt.Errorf("%w: %w", domain.ErrDraftStore, err))
	}

	if d.VendorInitiated || !adapter.RequiresRedirect() {
		status := domain.PaymentStatusPending
		if d.VendorInitiated && d.PaymentMethod.IsOnline() {
			// the vendor has already collected the payment outside the app
			status = domain.PaymentStatusComplete
		}
		rn.moveTo(StateBooking)
		return r.book(rn, status)
	}

	redirect, err := adapter.BuildRedirect(ctx, d)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			err = fmt.Errorf("%w: %w", domain.ErrGatewayRejected, err)
		}
		return rn.fail(err)
	}
	if redirect.GatewayReference != "" {
		d.GatewayReference = redirect.GatewayReference
		if err := r.drafts.Save(ctx, key, d); err != nil {
			return rn.fail(fmt.Errorf("%w: %w", domain.ErrDraftStore, err))
		}
	}

	rn.moveTo(StateAwaitingGateway)
	out = rn.outcome()
	out.Redirect = redirect
	rn.log.InfoContext(ctx, "Booking staged, awaiting gateway", "method", d.PaymentMethod, "amount_paisa", d.TotalPricePaisa)
	return out
}

// HandleCallback reconciles the raw parameters a gateway appended to the
// success URL against the draft staged under key.
func (r *Reconciler) HandleCallback(ctx context.Context, key string, method domain.PaymentMethod, params payment.CallbackParams) (out *Outcome) {
	rn := r.newRun(ctx, key, StateAwaitingGateway)
	defer r.finish(rn, &out)

	rn.moveTo(StateVerifying)

	d, err := r.drafts.Load(ctx, key)
	if err != nil {
		return rn.fail(fmt.Errorf("%w: %w", domain.ErrNoDraft, err))
	}
	if d == nil {
		return rn.fail(domain.ErrNoDraft)
	}
	rn.draft = d
	rn.log = logger.WithBooking(key, d.PaymentCorrelationID)

	if method != d.PaymentMethod {
		return rn.fail(fmt.Errorf("%w: callback from %s for a %s booking", domain.ErrCorrelationMismatch, method, d.PaymentMethod))
	}
	adapter, err := r.gateways.Adapter(d.PaymentMethod)
	if err != nil {
		return rn.fail(fmt.Errorf("%w: %w", domain.ErrDecode, err))
	}

	cb, err := adapter.DecodeCallback(ctx, params)
	if err != nil {
		if !errors.Is(err, domain.ErrDecode) {
			err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		}
		return rn.fail(err)
	}
	if cb.TransactionCorrelationID != d.PaymentCorrelationID {
		rn.log.WarnContext(ctx, "Callback correlation id does not match staged draft", "callback_correlation_id", cb.TransactionCorrelationID)
		return rn.fail(fmt.Errorf("%w: correlation id %q", domain.ErrCorrelationMismatch, cb.TransactionCorrelationID))
	}
	if d.GatewayReference != "" && cb.GatewayReference != "" && d.GatewayReference != cb.GatewayReference {
		rn.log.WarnContext(ctx, "Callback gateway reference does not match staged draft", "callback_reference", cb.GatewayReference)
		return rn.fail(fmt.Errorf("%w: gateway reference %q", domain.ErrCorrelationMismatch, cb.GatewayReference))
	}
	if !adapter.IsSuccess(cb.Status) {
		return rn.fail(fmt.Errorf("%w: gateway status %q", domain.ErrGatewayRejected, cb.Status))
	}
	if cb.AmountPaisa != 0 && cb.AmountPaisa != d.TotalPricePaisa {
		return rn.fail(fmt.Errorf("%w: %w: paid %d, expected %d", domain.ErrCorrelationMismatch, domain.ErrAmountMismatch, cb.AmountPaisa, d.TotalPricePaisa))
	}

	rn.moveTo(StateBooking)
	return r.book(rn, domain.PaymentStatusComplete)
}

// Abandon ends the booking under key without creating a rental, for a return
// through the gateway failure URL or an explicit cancel by the user.
func (r *Reconciler) Abandon(ctx context.Context, key string) (out *Outcome) {
	rn := r.newRun(ctx, key, StateAwaitingGateway)
	defer r.finish(rn, &out)

	d, err := r.drafts.Load(ctx, key)
	if err != nil {
		return rn.fail(fmt.Errorf("%w: %w", domain.ErrNoDraft, err))
	}
	if d == nil {
		return rn.fail(domain.ErrNoDraft)
	}
	rn.draft = d
	rn.log = logger.WithBooking(key, d.PaymentCorrelationID)
	return rn.fail(fmt.Errorf("%w: payment abandoned", domain.ErrGatewayRejected))
}

// Pending returns the draft currently staged under key, or nil.
func (r *Reconciler) Pending(ctx context.Context, key string) (*domain.RentalDraft, error) {
	return r.drafts.Load(ctx, key)
}

func (r *Reconciler) book(rn *run, status domain.PaymentStatus) *Outcome {
	rental, err := r.rentals.Create(rn.ctx, rn.draft, status)
	if err != nil {
		return rn.fail(fmt.Errorf("%w: %w", domain.ErrBookingCreateFailed, err))
	}
	if rental == nil {
		return rn.fail(fmt.Errorf("%w: no rental returned", domain.ErrBookingCreateFailed))
	}

	rn.rental = rental
	rn.moveTo(StateSucceeded)
	out := rn.outcome()
	out.Rental = rental
	return out
}

// finish runs on every exit of a reconciliation step. A panic in a
// collaborator becomes a failed booking; a terminal state releases the draft.
func (r *Reconciler) finish(rn *run, out **Outcome) {
	if p := recover(); p != nil {
		rn.log.ErrorContext(rn.ctx, "Panic during reconciliation", "state", rn.state, "panic", p)
		*out = rn.fail(fmt.Errorf("%w: panic: %v", domain.ErrBookingCreateFailed, p))
	}
	if !rn.state.Terminal() {
		return
	}

	ctx := context.WithoutCancel(rn.ctx)
	if err := r.drafts.Clear(ctx, rn.key); err != nil {
		rn.log.ErrorContext(ctx, "Failed to clear staged draft", "error", err)
	}
	r.publish(ctx, rn)

	final := rn.state
	if rn.err != nil {
		rn.log.WarnContext(ctx, "Booking failed", "trail", rn.trail, "error", rn.err)
	} else {
		rn.log.InfoContext(ctx, "Booking succeeded", "rental_id", rn.rental.ID, "trail", rn.trail)
	}
	rn.moveTo(StateIdle)
	if *out != nil {
		(*out).State = final
		(*out).Trail = append([]State(nil), rn.trail...)
	}
}

func (r *Reconciler) publish(ctx context.Context, rn *run) {
	eventType := events.EventBookingSucceeded
	payload := events.BookingOutcomePayload{
		SessionKey: rn.key,
		FinalState: string(rn.state),
	}
	for _, s := range rn.trail {
		payload.Trail = append(payload.Trail, string(s))
	}
	if rn.err != nil {
		eventType = events.EventBookingFailed
		payload.Reason = rn.err.Error()
	}

	correlationID := ""
	if d := rn.draft; d != nil {
		correlationID = d.PaymentCorrelationID
		payload.VehicleID = d.VehicleID
		payload.RenterID = d.RenterID
		payload.PaymentMethod = string(d.PaymentMethod)
		payload.AmountPaisa = d.TotalPricePaisa
	}
	if rn.rental != nil {
		payload.RentalID = rn.rental.ID
	}

	if err := r.events.Publish(ctx, eventType, correlationID, payload); err != nil {
		rn.log.WarnContext(ctx, "Failed to publish booking event", "event_type", eventType, "error", err)
	}
}

// run is the state of one reconciliation step for one session.
type run struct {
	ctx    context.Context
	key    string
	state  State
	trail  []State
	draft  *domain.RentalDraft
	rental *domain.Rental
	err    error
	log    *slog.Logger
}

func (r *Reconciler) newRun(ctx context.Context, key string, start State) *run {
	return &run{
		ctx:   ctx,
		key:   key,
		state: start,
		trail: []State{start},
		log:   logger.WithBooking(key, ""),
	}
}

func (rn *run) moveTo(to State) {
	if !CanTransition(rn.state, to) {
		rn.log.ErrorContext(rn.ctx, "Illegal reconciliation transition", "from", rn.state, "to", to)
	}
	logger.StateTransition(rn.ctx, rn.key, string(rn.state), string(to))
	rn.state = to
	rn.trail = append(rn.trail, to)
}

func (rn *run) fail(err error) *Outcome {
	rn.err = err
	rn.moveTo(StateFailed)
	return rn.outcome()
}

func (rn *run) outcome() *Outcome {
	out := &Outcome{
		State:       rn.state,
		Trail:       append([]State(nil), rn.trail...),
		Err:         rn.err,
		UserMessage: UserMessage(rn.err),
	}
	if rn.draft != nil {
		out.CorrelationID = rn.draft.PaymentCorrelationID
	}
	if rn.state == StateAwaitingGateway {
		out.UserMessage = "Redirecting to payment."
	}
	return out
}
