package auth

import (
	"time"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
