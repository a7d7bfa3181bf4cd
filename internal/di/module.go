package di

import (
	"go.uber.org/fx"

	"github.com/sxtvrno/storefront/internal/adapter/webpay"
	"github.com/sxtvrno/storefront/internal/app"
	"github.com/sxtvrno/storefront/internal/config"
	"github.com/sxtvrno/storefront/internal/logger"
	"github.com/sxtvrno/storefront/internal/notify"
	"github.com/sxtvrno/storefront/internal/pending"
	"github.com/sxtvrno/storefront/internal/pkg/auth"
	"github.com/sxtvrno/storefront/internal/server/http/handlers"
	"github.com/sxtvrno/storefront/internal/server/http/router"
	"github.com/sxtvrno/storefront/internal/storage/postgres"
	"github.com/sxtvrno/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		webpay.Module,
		pending.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(client webpay.Client) usecase.PaymentGateway { return client }),
		fx.Provide(func(facade *app.StoreFacade) handlers.StoreFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
