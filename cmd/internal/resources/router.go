package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joncherry/signed-ledger/cmd/internal/handlers"
	"github.com/joncherry/signed-ledger/cmd/internal/searchindexing"
)

// NewRouter routes every endpoint of the node to its handler.
func NewRouter(ledger handlers.Ledger, searchIndex *searchindexing.SearchIndexer) *mux.Router {
	transactionRunner := handlers.NewTransactionRunner(ledger)
	miner := handlers.NewMiner(ledger)
	chainReader := handlers.NewChainReader(ledger)
	search := handlers.NewSearcher(ledger, searchIndex)

	r := mux.NewRouter()
	r.HandleFunc("/healthcheck", func(resp http.ResponseWriter, req *http.Request) { resp.WriteHeader(http.StatusOK) }).Methods("GET")
	r.HandleFunc("/transaction", transactionRunner.Transaction).Methods("POST")
	r.HandleFunc("/mine", miner.Mine).Methods("POST")
	r.HandleFunc("/chain", chainReader.Chain).Methods("GET")
	r.HandleFunc("/chain/valid", chainReader.Valid).Methods("GET")
	r.HandleFunc("/pending", chainReader.Pending).Methods("GET")
	r.HandleFunc("/balance/{address}", chainReader.Balance).Methods("GET")
	r.HandleFunc("/search/transaction/{transaction_id}", search.Transaction).Methods("GET")
	r.HandleFunc("/search/user/{address}", search.User).Methods("GET")

	return r
}
