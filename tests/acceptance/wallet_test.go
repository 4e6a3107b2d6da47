package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// credit seeds a wallet through the admin ledger endpoint
func (s *Suite) credit(adminToken, userID, amount string) {
	resp := s.doJSON("POST", "/api/v1/wallet/entries", adminToken, dto.AppendEntryRequest{
		UserID:      userID,
		Type:        "ENTRADA",
		Amount:      amount,
		Description: "test credit",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Seeding credit should succeed")
}

func (s *Suite) adminToken() string {
	s.createAdmin("admin@example.com", "AdminPassword123")
	return s.login("admin@example.com", "AdminPassword123")
}

func (s *Suite) TestBalance_StartsAtZero() {
	s.register("wallet@example.com", "Password123")
	token := s.login("wallet@example.com", "Password123")

	resp := s.doJSON("GET", "/api/v1/wallet/balance", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var balance dto.BalanceResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&balance))
	s.Equal("0.00", balance.Balance)
}

func (s *Suite) TestBalance_NoToken() {
	resp := s.doJSON("GET", "/api/v1/wallet/balance", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestAppendEntry_AdminOnly() {
	userID := s.register("plain@example.com", "Password123")
	token := s.login("plain@example.com", "Password123")

	resp := s.doJSON("POST", "/api/v1/wallet/entries", token, dto.AppendEntryRequest{
		UserID:      userID,
		Type:        "ENTRADA",
		Amount:      "100.00",
		Description: "self credit",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestAppendEntry_TracksBalances() {
	admin := s.adminToken()
	userID := s.register("ledger@example.com", "Password123")
	token := s.login("ledger@example.com", "Password123")

	s.credit(admin, userID, "150.50")

	// Debit on behalf of the user
	resp := s.doJSON("POST", "/api/v1/wallet/entries", admin, dto.AppendEntryRequest{
		UserID:      userID,
		Type:        "SALIDA",
		Amount:      "50.00",
		Description: "manual adjustment",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var entry dto.EntryResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&entry))
	s.Equal("SALIDA", entry.Type)
	s.Equal("150.50", entry.PreviousBalance)
	s.Equal("100.50", entry.ResultingBalance)

	balanceResp := s.doJSON("GET", "/api/v1/wallet/balance", token, nil)
	defer balanceResp.Body.Close()

	var balance dto.BalanceResponse
	s.Require().NoError(json.NewDecoder(balanceResp.Body).Decode(&balance))
	s.Equal("100.50", balance.Balance)
}

func (s *Suite) TestAppendEntry_Overdraft() {
	admin := s.adminToken()
	userID := s.register("overdraft@example.com", "Password123")

	s.credit(admin, userID, "100.00")

	resp := s.doJSON("POST", "/api/v1/wallet/entries", admin, dto.AppendEntryRequest{
		UserID:      userID,
		Type:        "SALIDA",
		Amount:      "100.01",
		Description: "too much",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)

	// The rejected debit left no trace
	token := s.login("overdraft@example.com", "Password123")
	balanceResp := s.doJSON("GET", "/api/v1/wallet/balance", token, nil)
	defer balanceResp.Body.Close()

	var balance dto.BalanceResponse
	s.Require().NoError(json.NewDecoder(balanceResp.Body).Decode(&balance))
	s.Equal("100.00", balance.Balance)
}

func (s *Suite) TestAppendEntry_InvalidAmount() {
	admin := s.adminToken()
	userID := s.register("amounts@example.com", "Password123")

	for _, amount := range []string{"0", "-10", "abc"} {
		resp := s.doJSON("POST", "/api/v1/wallet/entries", admin, dto.AppendEntryRequest{
			UserID:      userID,
			Type:        "ENTRADA",
			Amount:      amount,
			Description: "bad amount",
		})
		resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode, "amount %q", amount)
	}
}

func (s *Suite) TestListEntries_NewestFirst() {
	admin := s.adminToken()
	userID := s.register("history@example.com", "Password123")
	token := s.login("history@example.com", "Password123")

	for i := 1; i <= 3; i++ {
		s.credit(admin, userID, fmt.Sprintf("%d.00", i*10))
	}

	resp := s.doJSON("GET", "/api/v1/wallet/entries", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var entries dto.EntriesResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&entries))
	s.Require().Len(entries.Entries, 3)

	s.Equal("30.00", entries.Entries[0].Amount)
	s.Equal("10.00", entries.Entries[2].Amount)

	// Running balances chain across consecutive entries
	s.Equal(entries.Entries[1].ResultingBalance, entries.Entries[0].PreviousBalance)
	s.Equal(entries.Entries[2].ResultingBalance, entries.Entries[1].PreviousBalance)
}

func (s *Suite) TestListEntries_Filtered() {
	admin := s.adminToken()
	userID := s.register("filtered@example.com", "Password123")
	token := s.login("filtered@example.com", "Password123")

	s.credit(admin, userID, "100.00")
	resp := s.doJSON("POST", "/api/v1/wallet/entries", admin, dto.AppendEntryRequest{
		UserID:      userID,
		Type:        "SALIDA",
		Amount:      "30.00",
		Description: "withdrawal",
	})
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	listResp := s.doJSON("GET", "/api/v1/wallet/entries?type=SALIDA", token, nil)
	defer listResp.Body.Close()

	var entries dto.EntriesResponse
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&entries))
	s.Require().Len(entries.Entries, 1)
	s.Equal("SALIDA", entries.Entries[0].Type)

	// Pagination
	pagedResp := s.doJSON("GET", "/api/v1/wallet/entries?limit=1&offset=1", token, nil)
	defer pagedResp.Body.Close()

	var paged dto.EntriesResponse
	s.Require().NoError(json.NewDecoder(pagedResp.Body).Decode(&paged))
	s.Require().Len(paged.Entries, 1)
	s.Equal(1, paged.Limit)
	s.Equal(1, paged.Offset)
}

func (s *Suite) TestTransfer_Success() {
	admin := s.adminToken()
	fromID := s.register("sender@example.com", "Password123")
	toID := s.register("receiver@example.com", "Password123")
	fromToken := s.login("sender@example.com", "Password123")
	toToken := s.login("receiver@example.com", "Password123")

	s.credit(admin, fromID, "200.00")

	resp := s.doJSON("POST", "/api/v1/wallet/transfer", fromToken, dto.TransferRequest{
		ToUserID:    toID,
		Amount:      "80.00",
		Description: "supplier payment",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var transfer dto.EntriesResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&transfer))
	s.Require().Len(transfer.Entries, 2)
	s.Equal("SALIDA", transfer.Entries[0].Type)
	s.Equal(fromID, transfer.Entries[0].UserID)
	s.Equal("ENTRADA", transfer.Entries[1].Type)
	s.Equal(toID, transfer.Entries[1].UserID)

	fromBalance := s.balance(fromToken)
	toBalance := s.balance(toToken)
	s.Equal("120.00", fromBalance)
	s.Equal("80.00", toBalance)
}

func (s *Suite) TestTransfer_InsufficientBalance() {
	admin := s.adminToken()
	fromID := s.register("broke@example.com", "Password123")
	toID := s.register("rich@example.com", "Password123")
	fromToken := s.login("broke@example.com", "Password123")

	s.credit(admin, fromID, "50.00")

	resp := s.doJSON("POST", "/api/v1/wallet/transfer", fromToken, dto.TransferRequest{
		ToUserID: toID,
		Amount:   "50.01",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	// Neither wallet moved
	s.Equal("50.00", s.balance(fromToken))
	toToken := s.login("rich@example.com", "Password123")
	s.Equal("0.00", s.balance(toToken))
}

func (s *Suite) TestTransfer_SelfRejected() {
	admin := s.adminToken()
	userID := s.register("selfie@example.com", "Password123")
	token := s.login("selfie@example.com", "Password123")

	s.credit(admin, userID, "100.00")

	resp := s.doJSON("POST", "/api/v1/wallet/transfer", token, dto.TransferRequest{
		ToUserID: userID,
		Amount:   "10.00",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestConcurrentDebits_NeverOverdraw() {
	admin := s.adminToken()
	userID := s.register("racer@example.com", "Password123")
	token := s.login("racer@example.com", "Password123")

	s.credit(admin, userID, "100.00")

	// 20 concurrent debits of 10.00 against a balance of 100.00:
	// exactly 10 can succeed
	const attempts = 20
	results := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := s.doJSON("POST", "/api/v1/wallet/entries", admin, dto.AppendEntryRequest{
				UserID:      userID,
				Type:        "SALIDA",
				Amount:      "10.00",
				Description: "concurrent debit",
			})
			resp.Body.Close()
			results[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, code := range results {
		if code == http.StatusCreated {
			succeeded++
		} else {
			s.Equal(http.StatusConflict, code)
		}
	}
	s.Equal(10, succeeded)

	s.Equal("0.00", s.balance(token))

	// The ledger replays to the materialized balance
	listResp := s.doJSON("GET", "/api/v1/wallet/entries?limit=100", token, nil)
	defer listResp.Body.Close()

	var entries dto.EntriesResponse
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&entries))
	s.Require().Len(entries.Entries, 11)

	total := decimal.Zero
	for _, entry := range entries.Entries {
		amount, err := decimal.NewFromString(entry.Amount)
		s.Require().NoError(err)
		if entry.Type == "ENTRADA" {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}
	s.True(total.IsZero(), "ledger sum %s should match balance 0.00", total.String())
}

func (s *Suite) balance(token string) string {
	resp := s.doJSON("GET", "/api/v1/wallet/balance", token, nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var balance dto.BalanceResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&balance))
	return balance.Balance
}
