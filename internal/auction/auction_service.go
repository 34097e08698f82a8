package auction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/utils"
)

// Service synchronizes bidding engines with the data service. Each viewed
// auction gets one engine, loaded lazily from its auctions row and bids
// rows; accepted bids are written back as new bids rows.
type Service struct {
	mu       sync.Mutex
	engines  map[string]*BiddingEngine
	db       dataservice.Store
	notifier notify.Notifier
}

// NewService creates a new auction service instance
func NewService(db dataservice.Store, notifier notify.Notifier) *Service {
	return &Service{
		engines:  make(map[string]*BiddingEngine),
		db:       db,
		notifier: notifier,
	}
}

// CreateAuction persists a new auction listing. The current price starts
// at the starting price and the history starts empty.
func (s *Service) CreateAuction(ctx context.Context, state models.AuctionState) (models.AuctionState, error) {
	if state.Title == "" || state.Seller == "" {
		return models.AuctionState{}, fmt.Errorf("service: %w - missing title or seller", marketerrors.ErrInvalidInput)
	}
	if state.MinIncrement <= 0 {
		return models.AuctionState{}, fmt.Errorf("service: %w - min increment must be positive", marketerrors.ErrInvalidInput)
	}

	state.AuctionID = utils.GenerateID()
	state.CurrentPrice = state.StartingPrice
	state.BidCount = 0
	state.Completed = false

	if err := s.db.Insert(ctx, dataservice.TableAuctions, auctionToRow(state)); err != nil {
		return models.AuctionState{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return state, nil
}

// GetAuction returns the live state of an auction
func (s *Service) GetAuction(ctx context.Context, auctionID string) (models.AuctionState, error) {
	engine, err := s.engine(ctx, auctionID)
	if err != nil {
		return models.AuctionState{}, err
	}
	return engine.State(), nil
}

// ListAuctions returns all auctions ordered by end time, soonest first
func (s *Service) ListAuctions(ctx context.Context) ([]models.AuctionState, error) {
	rows, err := s.db.Select(ctx, dataservice.TableAuctions, nil, &dataservice.Order{Column: "end_time"})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	auctions := make([]models.AuctionState, 0, len(rows))
	for _, row := range rows {
		auctions = append(auctions, rowToAuction(row))
	}
	return auctions, nil
}

// PlaceBid validates a bid through the auction's engine and, when it is
// accepted, records it as a bids row and updates the auctions row. The
// engine's in-memory state stays authoritative when a write fails; the
// failure is logged, not surfaced as a rejected bid.
func (s *Service) PlaceBid(ctx context.Context, auctionID, rawAmount, bidderID string) (models.Bid, error) {
	engine, err := s.engine(ctx, auctionID)
	if err != nil {
		return models.Bid{}, err
	}

	var previousTop string
	if history := engine.History(); len(history) > 0 {
		previousTop = history[0].BidderID
	}

	bid, err := engine.PlaceBid(rawAmount, bidderID)
	if err != nil {
		return models.Bid{}, err
	}

	if err := s.db.Insert(ctx, dataservice.TableBids, bidToRow(bid)); err != nil {
		utils.Warn("auction: failed to persist bid", map[string]any{
			"auction_id": auctionID, "bid_id": bid.BidID, "error": err.Error(),
		})
	}

	state := engine.State()
	patch := dataservice.Row{"current_price": state.CurrentPrice, "bid_count": state.BidCount}
	if _, err := s.db.Update(ctx, dataservice.TableAuctions, dataservice.Filter{"auction_id": auctionID}, patch); err != nil {
		utils.Warn("auction: failed to update auction row", map[string]any{
			"auction_id": auctionID, "error": err.Error(),
		})
	}

	if previousTop != "" && previousTop != bidderID {
		s.insertOutbidNotification(ctx, previousTop, state.Title, bid.Amount)
	}

	return bid, nil
}

// MinimumNextBid returns the smallest acceptable bid for an auction
func (s *Service) MinimumNextBid(ctx context.Context, auctionID string) (float64, error) {
	engine, err := s.engine(ctx, auctionID)
	if err != nil {
		return 0, err
	}
	return engine.MinimumNextBid(), nil
}

// History returns an auction's bid history, newest first
func (s *Service) History(ctx context.Context, auctionID string) ([]models.Bid, error) {
	engine, err := s.engine(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	return engine.History(), nil
}

// MarkCompleted closes an auction explicitly
func (s *Service) MarkCompleted(ctx context.Context, auctionID string) error {
	engine, err := s.engine(ctx, auctionID)
	if err != nil {
		return err
	}
	engine.Close()

	if _, err := s.db.Update(ctx, dataservice.TableAuctions,
		dataservice.Filter{"auction_id": auctionID}, dataservice.Row{"completed": true}); err != nil {
		return fmt.Errorf("service: failed to mark auction %s completed: %w", auctionID, err)
	}
	return nil
}

// CloseExpired marks every auction whose end time has passed as completed
// and closes any cached engine for it. Returns how many were closed.
func (s *Service) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	rows, err := s.db.Select(ctx, dataservice.TableAuctions, dataservice.Filter{"completed": false}, nil)
	if err != nil {
		return 0, fmt.Errorf("service: failed to list open auctions: %w", err)
	}

	closed := 0
	for _, row := range rows {
		state := rowToAuction(row)
		if state.EndTime.After(now) {
			continue
		}
		if err := s.MarkCompleted(ctx, state.AuctionID); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// engine returns the cached bidding engine for an auction, loading its
// state and history from the data service on first use
func (s *Service) engine(ctx context.Context, auctionID string) (*BiddingEngine, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", marketerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	if engine, ok := s.engines[auctionID]; ok {
		s.mu.Unlock()
		s.closeIfEnded(engine)
		return engine, nil
	}
	s.mu.Unlock()

	rows, err := s.db.Select(ctx, dataservice.TableAuctions, dataservice.Filter{"auction_id": auctionID}, nil)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("service: auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	state := rowToAuction(rows[0])

	bidRows, err := s.db.Select(ctx, dataservice.TableBids,
		dataservice.Filter{"auction_id": auctionID}, &dataservice.Order{Column: "created_at", Descending: true})
	if err != nil {
		return nil, fmt.Errorf("service: failed to load bids for auction %s: %w", auctionID, err)
	}
	history := make([]models.Bid, 0, len(bidRows))
	for _, row := range bidRows {
		history = append(history, rowToBid(row))
	}

	engine := NewBiddingEngine(state, history, s.notifier)
	s.closeIfEnded(engine)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.engines[auctionID]; ok {
		return existing, nil
	}
	s.engines[auctionID] = engine
	return engine, nil
}

// closeIfEnded transitions an engine to closed once its end time passes
func (s *Service) closeIfEnded(engine *BiddingEngine) {
	state := engine.State()
	if !state.Completed && !state.EndTime.IsZero() && !state.EndTime.After(time.Now().UTC()) {
		engine.Close()
	}
}

func (s *Service) insertOutbidNotification(ctx context.Context, userID, title string, amount float64) {
	row := dataservice.Row{
		"notification_id": utils.GenerateID(),
		"user_id":         userID,
		"message":         fmt.Sprintf("You've been outbid on %q - the price is now %.2f", title, amount),
		"read":            false,
		"created_at":      time.Now().UTC(),
	}
	if err := s.db.Insert(ctx, dataservice.TableNotifications, row); err != nil {
		utils.Warn("auction: failed to insert outbid notification", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
	}
}

func auctionToRow(state models.AuctionState) dataservice.Row {
	return dataservice.Row{
		"auction_id":     state.AuctionID,
		"title":          state.Title,
		"seller":         state.Seller,
		"starting_price": state.StartingPrice,
		"current_price":  state.CurrentPrice,
		"min_increment":  state.MinIncrement,
		"bid_count":      state.BidCount,
		"end_time":       state.EndTime,
		"completed":      state.Completed,
	}
}

func rowToAuction(row dataservice.Row) models.AuctionState {
	return models.AuctionState{
		AuctionID:     row.String("auction_id"),
		Title:         row.String("title"),
		Seller:        row.String("seller"),
		StartingPrice: row.Float("starting_price"),
		CurrentPrice:  row.Float("current_price"),
		MinIncrement:  row.Float("min_increment"),
		BidCount:      row.Int("bid_count"),
		EndTime:       row.Time("end_time"),
		Completed:     row.Bool("completed"),
	}
}

func bidToRow(bid models.Bid) dataservice.Row {
	return dataservice.Row{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
		"created_at": bid.CreatedAt,
	}
}

func rowToBid(row dataservice.Row) models.Bid {
	return models.Bid{
		BidID:     row.String("bid_id"),
		AuctionID: row.String("auction_id"),
		BidderID:  row.String("bidder_id"),
		Amount:    row.Float("amount"),
		CreatedAt: row.Time("created_at"),
	}
}
