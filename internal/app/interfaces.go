package app

import (
	"github.com/robfig/cron/v3"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/coupon"
	"github.com/Yacsu77/tortamaria-go/internal/payment"
	"github.com/Yacsu77/tortamaria-go/internal/session"
)

type ConfigProvider interface {
	Config() *config.AppConfig
}

type SessionProvider interface {
	Sessions() *session.Store
}

type APIProvider interface {
	API() *api.Client
}

type BagProvider interface {
	Bag() *bag.Service
}

type CouponProvider interface {
	Coupons() *coupon.Service
}

type GatewayProvider interface {
	Gateway() *payment.Gateway
}

type SchedulerProvider interface {
	Scheduler() *cron.Cron
}
