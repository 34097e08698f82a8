package auction

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/utils"
)

// BiddingEngine validates and applies bids against a single auction.
// The engine has two effective states: open, where bids meeting the
// threshold are accepted, and closed, where every bid is rejected and
// nothing mutates. There is no transition back to open.
type BiddingEngine struct {
	mu       sync.RWMutex
	state    models.AuctionState
	history  []models.Bid // newest first
	notifier notify.Notifier
}

// NewBiddingEngine creates an engine from a loaded auction state and its
// existing bid history (newest first). CurrentPrice falls back to the
// starting price when the history is empty.
func NewBiddingEngine(state models.AuctionState, history []models.Bid, notifier notify.Notifier) *BiddingEngine {
	if len(history) > 0 {
		state.CurrentPrice = history[0].Amount
	} else if state.CurrentPrice < state.StartingPrice {
		state.CurrentPrice = state.StartingPrice
	}
	state.BidCount = len(history)

	return &BiddingEngine{
		state:    state,
		history:  append([]models.Bid(nil), history...),
		notifier: notifier,
	}
}

// PlaceBid parses and validates a bid amount, which may arrive as
// free-form text, and applies it when it meets the single threshold of
// current price plus minimum increment. A bid exactly at the threshold
// is the minimum valid bid and is accepted. Rejections leave the state
// untouched and carry the minimum acceptable amount.
func (e *BiddingEngine) PlaceBid(rawAmount, bidderID string) (models.Bid, error) {
	if bidderID == "" {
		return models.Bid{}, fmt.Errorf("engine: %w - missing bidder", marketerrors.ErrInvalidBid)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Completed {
		return models.Bid{}, fmt.Errorf("engine: %w - auction %s no longer accepts bids",
			marketerrors.ErrAuctionClosed, e.state.AuctionID)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil {
		return models.Bid{}, fmt.Errorf("engine: %w - amount %q is not a number", marketerrors.ErrInvalidBid, rawAmount)
	}

	minimum := e.state.CurrentPrice + e.state.MinIncrement
	if amount < minimum {
		return models.Bid{}, fmt.Errorf("engine: %w - bid must be at least %.2f", marketerrors.ErrBidBelowMinimum, minimum)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: e.state.AuctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	e.state.CurrentPrice = amount
	e.state.BidCount++
	e.history = append([]models.Bid{bid}, e.history...)

	e.notifier.Notify("Bid placed successfully! You are now the highest bidder", notify.SeveritySuccess)
	return bid, nil
}

// MinimumNextBid returns the smallest amount the next bid may carry
func (e *BiddingEngine) MinimumNextBid() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.CurrentPrice + e.state.MinIncrement
}

// History returns the bid history, newest first
func (e *BiddingEngine) History() []models.Bid {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Bid(nil), e.history...)
}

// State returns a snapshot of the auction state
func (e *BiddingEngine) State() models.AuctionState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Close marks the auction completed. Called when an external collaborator
// reports the end time has passed or the listing was completed.
func (e *BiddingEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Completed = true
}

// Closed reports whether the auction still accepts bids
func (e *BiddingEngine) Closed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Completed
}
