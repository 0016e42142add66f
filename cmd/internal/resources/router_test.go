package resources

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joncherry/signed-ledger/cmd/internal/autograph"
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	"github.com/joncherry/signed-ledger/cmd/internal/ledger"
	"github.com/joncherry/signed-ledger/cmd/internal/searchindexing"
	json "github.com/json-iterator/go"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	config := ledger.DefaultConfig()
	config.Difficulty = 1
	chain, err := ledger.New(config)
	if err != nil {
		t.Fatalf("ledger.New: %s", err)
	}
	searchIndex := searchindexing.NewSearchIndexer()
	chain.AddBlockListener(searchIndex)

	server := httptest.NewServer(NewRouter(chain, searchIndex))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url string, body interface{}, wantStatus int, result interface{}) {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %s", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("NewRequest: %s", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %s", method, url, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %s", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, wantStatus, resp.StatusCode, respBytes)
	}
	if result != nil {
		if err := json.Unmarshal(respBytes, result); err != nil {
			t.Fatalf("unmarshal %s: %s", respBytes, err)
		}
	}
}

func TestRouterTransferMineAndSearch(t *testing.T) {
	server := newTestServer(t)

	do(t, http.MethodGet, server.URL+"/healthcheck", nil, http.StatusOK, nil)

	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}
	sender := keyPair.PublicKeyHex()
	tx := blockchain.Transaction{FromAddress: sender, ToAddress: "recipient", Amount: 30}
	if err := tx.Sign(keyPair); err != nil {
		t.Fatalf("Sign: %s", err)
	}

	submitted := dto.SubmissionResponse{}
	do(t, http.MethodPost, server.URL+"/transaction", dto.TransactionSubmission{
		FromAddress: tx.FromAddress,
		ToAddress:   tx.ToAddress,
		Amount:      tx.Amount,
		Signature:   tx.Signature,
	}, http.StatusOK, &submitted)
	if submitted.Submission != dto.StatusSuccess || submitted.TransactionDigest != tx.ComputeDigest() {
		t.Fatalf("unexpected submission response %+v", submitted)
	}

	pending := []blockchain.Transaction{}
	do(t, http.MethodGet, server.URL+"/pending", nil, http.StatusOK, &pending)
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending transaction, got %d", len(pending))
	}

	block := blockchain.Block{}
	do(t, http.MethodPost, server.URL+"/mine", dto.MineRequest{RewardAddress: sender}, http.StatusOK, &block)
	if len(block.Transactions) != 1 || block.Transactions[0].Signature != tx.Signature {
		t.Fatalf("expected only the transfer in the block, got %+v", block.Transactions)
	}
	if !blockchain.HashMeetsDifficulty(block.Hash, 1) {
		t.Errorf("hash %s does not meet difficulty 1", block.Hash)
	}

	// the reward waits for the next block
	do(t, http.MethodGet, server.URL+"/pending", nil, http.StatusOK, &pending)
	if len(pending) != 1 || !pending[0].IsReward() || pending[0].ToAddress != sender {
		t.Fatalf("expected the queued reward, got %+v", pending)
	}

	balance := dto.Balance{}
	do(t, http.MethodGet, server.URL+"/balance/"+sender, nil, http.StatusOK, &balance)
	if balance.Balance != -30 {
		t.Errorf("expected sender balance -30, got %v", balance.Balance)
	}
	do(t, http.MethodGet, server.URL+"/balance/recipient", nil, http.StatusOK, &balance)
	if balance.Balance != 30 {
		t.Errorf("expected recipient balance 30, got %v", balance.Balance)
	}

	next := blockchain.Block{}
	do(t, http.MethodPost, server.URL+"/mine", dto.MineRequest{RewardAddress: sender}, http.StatusOK, &next)
	do(t, http.MethodGet, server.URL+"/balance/"+sender, nil, http.StatusOK, &balance)
	if balance.Balance != 70 {
		t.Errorf("expected sender balance 70 once the reward is mined, got %v", balance.Balance)
	}

	found := []dto.IndexedTransaction{}
	do(t, http.MethodGet, server.URL+"/search/transaction/"+tx.ComputeDigest(), nil, http.StatusOK, &found)
	if len(found) != 1 || found[0].Height != 1 || found[0].Index != 0 || found[0].BlockHash != block.Hash {
		t.Fatalf("unexpected search result %+v", found)
	}

	do(t, http.MethodGet, server.URL+"/search/user/recipient", nil, http.StatusOK, &found)
	if len(found) != 1 || found[0].Transaction.Signature != tx.Signature {
		t.Fatalf("unexpected user search result %+v", found)
	}

	chain := []blockchain.Block{}
	do(t, http.MethodGet, server.URL+"/chain", nil, http.StatusOK, &chain)
	if len(chain) != 3 || chain[1].Hash != block.Hash || chain[2].PreviousHash != block.Hash {
		t.Fatalf("unexpected chain %+v", chain)
	}

	validity := dto.ChainValidity{}
	do(t, http.MethodGet, server.URL+"/chain/valid", nil, http.StatusOK, &validity)
	if !validity.Valid || validity.Height != 2 {
		t.Errorf("unexpected validity %+v", validity)
	}
}

func TestRouterRejections(t *testing.T) {
	server := newTestServer(t)

	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}
	tx := blockchain.Transaction{FromAddress: keyPair.PublicKeyHex(), ToAddress: "recipient", Amount: 10}
	if err := tx.Sign(keyPair); err != nil {
		t.Fatalf("Sign: %s", err)
	}

	testCases := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "unsigned transaction",
			method:     http.MethodPost,
			path:       "/transaction",
			body:       dto.TransactionSubmission{FromAddress: tx.FromAddress, ToAddress: "recipient", Amount: 10},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered amount",
			method:     http.MethodPost,
			path:       "/transaction",
			body:       dto.TransactionSubmission{FromAddress: tx.FromAddress, ToAddress: "recipient", Amount: 11, Signature: tx.Signature},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing recipient",
			method:     http.MethodPost,
			path:       "/transaction",
			body:       dto.TransactionSubmission{FromAddress: tx.FromAddress, Amount: 10, Signature: tx.Signature},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "mine without reward address",
			method:     http.MethodPost,
			path:       "/mine",
			body:       dto.MineRequest{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short transaction id",
			method:     http.MethodGet,
			path:       "/search/transaction/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown transaction id",
			method:     http.MethodGet,
			path:       "/search/transaction/" + tx.ComputeDigest(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown user",
			method:     http.MethodGet,
			path:       "/search/user/nobody",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			path:       "/transaction",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			do(t, tc.method, server.URL+tc.path, tc.body, tc.wantStatus, nil)
		})
	}
}
