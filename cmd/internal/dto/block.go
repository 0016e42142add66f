package dto

// MineRequest names who is rewarded for mining the queued transactions.
type MineRequest struct {
	RewardAddress string `json:"rewardAddress"`
}

// ChainValidity reports the result of a full chain validation.
type ChainValidity struct {
	Valid  bool   `json:"valid"`
	Height int    `json:"height"`
	Reason string `json:"reason,omitempty"`
}

// Balance is the balance of an address derived from the chain.
type Balance struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// ErrorResponse is written with every non 2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
