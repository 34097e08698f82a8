package integrationtests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuctionBiddingFlow(t *testing.T) {
	router := SetupTestRouter()

	_, sellerToken := SignUpUser(t, router, "seller_sam")
	_, aliceToken := SignUpUser(t, router, "alice")
	_, bobToken := SignUpUser(t, router, "bob")

	end := time.Now().UTC().Add(24 * time.Hour)
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", sellerToken,
		map[string]any{
			"title":          "Vintage Leather Jacket",
			"starting_price": 100.0,
			"min_increment":  10.0,
			"end_time":       end.Format(time.RFC3339),
		})
	require.Equal(t, http.StatusCreated, w.Code)
	auctionID := resp["data"].(map[string]any)["auction_id"].(string)

	// First acceptable bid is starting price + increment
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/minimum", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 110.0, resp["data"].(map[string]any)["minimum_next_bid"])

	// Below the threshold: rejected, state untouched
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", aliceToken,
		map[string]any{"amount": "105"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "bid amount too low")

	// Exactly the threshold: accepted
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", aliceToken,
		map[string]any{"amount": "110"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 110.0, resp["data"].(map[string]any)["amount"])

	// Free-form text that does not parse is a bad request
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", bobToken,
		map[string]any{"amount": "a lot"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["message"], "invalid bid details")

	// A higher bid from another user raises the price
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", bobToken,
		map[string]any{"amount": "150.50"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	auction := data["auction"].(map[string]any)
	require.Equal(t, 150.5, auction["current_price"])
	require.Equal(t, 2.0, auction["bid_count"])

	history := data["bid_history"].([]any)
	require.Len(t, history, 2)
	require.Equal(t, 150.5, history[0].(map[string]any)["amount"], "newest bid first")
	require.Equal(t, 110.0, history[1].(map[string]any)["amount"])

	// Outbid alice received a notification
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp["data"].([]any))
}

func TestAuctionBidding_RequiresAuth(t *testing.T) {
	router := SetupTestRouter()

	_, sellerToken := SignUpUser(t, router, "seller_sam")

	end := time.Now().UTC().Add(time.Hour)
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", sellerToken,
		map[string]any{
			"title":          "Desk Lamp",
			"starting_price": 20.0,
			"min_increment":  5.0,
			"end_time":       end.Format(time.RFC3339),
		})
	require.Equal(t, http.StatusCreated, w.Code)
	auctionID := resp["data"].(map[string]any)["auction_id"].(string)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", "",
		map[string]any{"amount": "25"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Anonymous reads are allowed
	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestExpiredAuctionRejectsBids(t *testing.T) {
	router := SetupTestRouter()

	_, sellerToken := SignUpUser(t, router, "seller_sam")
	_, aliceToken := SignUpUser(t, router, "alice")

	end := time.Now().UTC().Add(-time.Minute)
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", sellerToken,
		map[string]any{
			"title":          "Old Clock",
			"starting_price": 10.0,
			"min_increment":  1.0,
			"end_time":       end.Format(time.RFC3339),
		})
	require.Equal(t, http.StatusCreated, w.Code)
	auctionID := resp["data"].(map[string]any)["auction_id"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", aliceToken,
		map[string]any{"amount": "11"})
	require.Equal(t, http.StatusGone, w.Code)
	require.Contains(t, resp["message"], "auction closed")
}
