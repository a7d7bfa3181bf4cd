package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BuyOrderMaxLen is the gateway's hard cap on transaction identifiers.
const BuyOrderMaxLen = 26

// NewBuyOrder builds a gateway-facing identifier unique per payment attempt.
// The order id leads so it survives truncation; the uuid fragment keeps
// repeated attempts for one order distinct.
func NewBuyOrder(orderID int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	buyOrder := fmt.Sprintf("O%d-%s", orderID, suffix)
	if len(buyOrder) > BuyOrderMaxLen {
		buyOrder = buyOrder[:BuyOrderMaxLen]
	}
	return buyOrder
}

// ParseBuyOrder recovers the order id from a buy-order string. It is the
// lossy fallback used when a confirmation arrives for a token the registry
// no longer tracks.
func ParseBuyOrder(buyOrder string) (int64, bool) {
	if !strings.HasPrefix(buyOrder, "O") {
		return 0, false
	}
	digits := buyOrder[1:]
	if sep := strings.IndexByte(digits, '-'); sep >= 0 {
		digits = digits[:sep]
	}
	if digits == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
