package dto

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	AccountID string `json:"account_id"`
}

// Validate checks required fields.
func (r *CreateAccountRequest) Validate() string {
	if r.AccountID == "" {
		return "account_id is required"
	}
	return ""
}

// DepositRequest represents a request to deposit funds into an account.
// Amount is expressed in cents.
type DepositRequest struct {
	Amount int64 `json:"amount"`
}

// Validate checks required fields.
func (r *DepositRequest) Validate() string {
	if r.Amount == 0 {
		return "amount is required"
	}
	return ""
}

// TransferRequest represents a request to transfer funds between accounts.
// Amount is expressed in cents.
type TransferRequest struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
	Amount        int64  `json:"amount"`
}

// Validate checks required fields.
func (r *TransferRequest) Validate() string {
	switch {
	case r.OriginID == "":
		return "origin_id is required"
	case r.DestinationID == "":
		return "destination_id is required"
	case r.Amount == 0:
		return "amount is required"
	}
	return ""
}
