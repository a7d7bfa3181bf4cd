package model

// GatewayStatusAuthorized is the commit status meaning the card payment went
// through. Any other status is a business rejection, not a transport error.
const GatewayStatusAuthorized = "AUTHORIZED"

// GatewayCreateResponse is the typed result of creating a remote transaction.
type GatewayCreateResponse struct {
	Token string
	URL   string
}

// GatewayCommitResponse is the typed result of committing a transaction.
type GatewayCommitResponse struct {
	Status            string
	BuyOrder          string
	SessionID         string
	Amount            int64
	AuthorizationCode string
	ResponseCode      int
	TransactionDate   string
}

// Authorized reports whether the gateway approved the payment.
func (r *GatewayCommitResponse) Authorized() bool {
	return r.Status == GatewayStatusAuthorized
}

// GatewayRefundResponse is the typed result of a refund call.
type GatewayRefundResponse struct {
	Type              string
	AuthorizationCode string
	NullifiedAmount   int64
	Balance           int64
}
