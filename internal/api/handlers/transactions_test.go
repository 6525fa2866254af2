package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/testutil"
)

func newTestTransactionHandler(t *testing.T, db *sql.DB, market *testutil.StubProvider) *TransactionHandler {
	t.Helper()

	transactionService := service.NewTransactionService(
		db,
		repository.NewTransactionRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewCashRepository(db),
		market,
		market,
		testMarketConfig(),
		logger.Discard(),
	)
	return NewTransactionHandler(transactionService)
}

func TestTransactionHandler_Sell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestTransactionHandler(t, db, testutil.NewStubProvider(32))
	holding := testutil.NewHolding().WithSymbol("VOO").WithShares(10).WithCostPrice(100).Build(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transactions/sell", request.SellRequest{
		HoldingID:       holding.ID,
		Shares:          4,
		Price:           150,
		TransactionDate: "2024-06-03",
	})
	rec := httptest.NewRecorder()
	handler.Sell(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SellResponse
	testutil.DecodeData(t, rec, &resp)
	if !resp.Success {
		t.Error("expected success flag")
	}
	if resp.RealizedPnlTWD != 6400 {
		t.Errorf("expected realized PnL 6400 TWD, got %v", resp.RealizedPnlTWD)
	}
	if resp.RemainingShares != 6 {
		t.Errorf("expected 6 remaining shares, got %v", resp.RemainingShares)
	}
	if resp.CashAddedTWD != 19200 {
		t.Errorf("expected 19200 TWD proceeds, got %v", resp.CashAddedTWD)
	}
}

func TestTransactionHandler_SellOverSell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestTransactionHandler(t, db, testutil.NewStubProvider(32))
	holding := testutil.NewHolding().WithShares(2).Build(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transactions/sell", request.SellRequest{
		HoldingID: holding.ID,
		Shares:    5,
		Price:     150,
	})
	rec := httptest.NewRecorder()
	handler.Sell(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on over-sell, got %d", rec.Code)
	}
}

func TestTransactionHandler_SellValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestTransactionHandler(t, db, testutil.NewStubProvider(32))

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/transactions/sell", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transactions/sell", request.SellRequest{})
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding error body: %v", err)
		}
		if _, ok := body.Details["holding_id"]; !ok {
			t.Errorf("expected holding_id detail, got %v", body.Details)
		}
	})
}

func TestTransactionHandler_ListAfterSell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestTransactionHandler(t, db, testutil.NewStubProvider(32))
	holding := testutil.NewHolding().WithSymbol("VOO").WithShares(10).WithCostPrice(100).Build(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transactions/sell", request.SellRequest{
		HoldingID:       holding.ID,
		Shares:          10,
		Price:           120,
		TransactionDate: "2024-06-03",
	})
	rec := httptest.NewRecorder()
	handler.Sell(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell failed: %d %s", rec.Code, rec.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec = httptest.NewRecorder()
	handler.Transactions(rec, list)

	var transactions []TransactionResponse
	testutil.DecodeData(t, rec, &transactions)
	if len(transactions) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(transactions))
	}
	entry := transactions[0]
	if entry.Symbol != "VOO" || entry.Type != "sell" || entry.Shares != 10 {
		t.Errorf("unexpected ledger entry: %+v", entry)
	}
	if entry.TransactionDate != "2024-06-03" {
		t.Errorf("expected date 2024-06-03, got %s", entry.TransactionDate)
	}
}
