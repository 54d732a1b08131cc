package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/notify"
	"github.com/tiffanyadora/storefront/internal/storeapi"
)

// Notification texts. Server-reported rejections are prefixed with "Error: "
// and carry the server's own message instead of these.
const (
	msgItemAdded       = "Item added to cart!"
	msgItemRemoved     = "Item removed from cart"
	msgAddFailed       = "Error adding to cart"
	msgUpdateFailed    = "Error updating cart"
	msgRemoveFailed    = "Error removing item"
	msgCheckoutFailed  = "Error processing checkout"
	msgNetworkError    = "Network error"
	orderPlacedPattern = "Order #%s placed successfully!"
)

// CartAPI is the slice of the store API the synchronizer needs.
type CartAPI interface {
	FetchCart(ctx context.Context, sessionID string) (domain.CartState, error)
	AddItem(ctx context.Context, sessionID string, input storeapi.AddItemInput) error
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Checkout(ctx context.Context, sessionID string, info domain.CustomerInfo) (string, error)
}

// View is any surface that renders from the cart state. Registered views are
// re-rendered from scratch after every state replacement.
type View interface {
	Render(state domain.CartState)
}

// Notifier publishes transient user-facing messages.
type Notifier interface {
	Push(sessionID string, level notify.Level, message string) notify.Notification
}

// Events is the slice of the event producer the synchronizer publishes
// through. Publish failures are logged, never surfaced to the user.
type Events interface {
	PublishCartSynced(ctx context.Context, sessionID string, state domain.CartState) error
	PublishOrderPlaced(ctx context.Context, sessionID, orderID string, state domain.CartState) error
}

// Synchronizer keeps one session's local cart mirror in sync with the
// server-authoritative cart. The server owns all cart math: after every
// successful mutation the synchronizer refetches the whole cart and replaces
// the mirror, never patching it in place. A mutex serializes operations so
// concurrent requests for the same session cannot interleave mutate and
// refetch phases.
type Synchronizer struct {
	sessionID string
	api       CartAPI
	notifier  Notifier
	producer  Events
	logger    *slog.Logger

	mu    sync.Mutex
	state domain.CartState
	views []View
}

// NewSynchronizer creates a synchronizer for one session, starting from an
// empty mirror. Call Load to populate it.
func NewSynchronizer(sessionID string, api CartAPI, notifier Notifier, producer Events, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		sessionID: sessionID,
		api:       api,
		notifier:  notifier,
		producer:  producer,
		logger:    logger,
		state:     domain.EmptyCart(),
	}
}

// Register attaches a view and immediately renders the current state into it.
func (s *Synchronizer) Register(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
	v.Render(s.state.Clone())
}

// Snapshot returns a copy of the current mirror.
func (s *Synchronizer) Snapshot() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Load refetches the cart and replaces the mirror. Failures degrade
// silently: the previous state stays rendered, no notification is shown,
// and the error is returned for the caller to log or ignore.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// Add adds a product to the server-side cart, then refetches.
func (s *Synchronizer) Add(ctx context.Context, productID string, quantity int, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	input := storeapi.AddItemInput{ProductID: productID, Quantity: quantity, Size: size}
	if err := s.api.AddItem(ctx, s.sessionID, input); err != nil {
		s.notifyFailure(err, msgAddFailed)
		return err
	}

	s.notifier.Push(s.sessionID, notify.LevelSuccess, msgItemAdded)
	s.refreshAfterMutation(ctx, "add")
	return nil
}

// UpdateItem sets the absolute quantity of a cart line, then refetches.
// Quantities below 1 are rejected locally without a request: the decrement
// control stops at one, and removal goes through Remove.
func (s *Synchronizer) UpdateItem(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.UpdateItem(ctx, s.sessionID, itemID, quantity); err != nil {
		s.notifyFailure(err, msgUpdateFailed)
		return err
	}

	// Quantity updates succeed quietly; only the re-render signals the change.
	s.refreshAfterMutation(ctx, "update")
	return nil
}

// Remove deletes a cart line, then refetches.
func (s *Synchronizer) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.RemoveItem(ctx, s.sessionID, itemID); err != nil {
		s.notifyFailure(err, msgRemoveFailed)
		return err
	}

	s.notifier.Push(s.sessionID, notify.LevelSuccess, msgItemRemoved)
	s.refreshAfterMutation(ctx, "remove")
	return nil
}

// Checkout submits the order for the current cart. A server decline is not
// an error: it comes back as an unsuccessful result carrying the server's
// reason, shown to the user as an error notification. Transport failures
// produce a "Network error" result instead.
func (s *Synchronizer) Checkout(ctx context.Context, info domain.CustomerInfo) (domain.CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID, err := s.api.Checkout(ctx, s.sessionID, info)
	if err != nil {
		s.notifyFailure(err, msgCheckoutFailed)
		if serverErr, ok := storeapi.AsServerError(err); ok {
			return domain.CheckoutResult{Success: false, Error: serverErr.Message}, nil
		}
		return domain.CheckoutResult{Success: false, Error: msgNetworkError}, err
	}

	s.notifier.Push(s.sessionID, notify.LevelSuccess, fmt.Sprintf(orderPlacedPattern, orderID))

	placed := s.state.Clone()
	if err := s.producer.PublishOrderPlaced(ctx, s.sessionID, orderID, placed); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("session_id", s.sessionID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	// The server clears the cart on a successful order.
	s.refreshAfterMutation(ctx, "checkout")

	return domain.CheckoutResult{Success: true, OrderID: orderID}, nil
}

// notifyFailure pushes the right error notification: the server's own
// message when it reported one, otherwise the operation's generic text.
// Caller holds mu.
func (s *Synchronizer) notifyFailure(err error, fallback string) {
	if serverErr, ok := storeapi.AsServerError(err); ok {
		s.notifier.Push(s.sessionID, notify.LevelError, "Error: "+serverErr.Message)
		return
	}
	s.notifier.Push(s.sessionID, notify.LevelError, fallback)
}

// refreshAfterMutation refetches after a successful mutation. A refetch
// failure here leaves the stale mirror rendered; the mutation itself already
// succeeded, so nothing is surfaced to the user. Caller holds mu.
func (s *Synchronizer) refreshAfterMutation(ctx context.Context, operation string) {
	if err := s.reloadLocked(ctx); err != nil {
		s.logger.WarnContext(ctx, "cart refresh after mutation failed",
			slog.String("session_id", s.sessionID),
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
}

// reloadLocked replaces the mirror with fresh server state and re-renders
// every registered view. Caller holds mu.
func (s *Synchronizer) reloadLocked(ctx context.Context) error {
	fresh, err := s.api.FetchCart(ctx, s.sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "cart fetch failed, keeping last known state",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.state = fresh
	for _, v := range s.views {
		v.Render(fresh.Clone())
	}

	if err := s.producer.PublishCartSynced(ctx, s.sessionID, fresh); err != nil {
		s.logger.DebugContext(ctx, "failed to publish cart.synced event",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
