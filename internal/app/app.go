package app

import (
	"os"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/coupon"
	"github.com/Yacsu77/tortamaria-go/internal/payment"
	"github.com/Yacsu77/tortamaria-go/internal/session"
)

// Application wires the client together: configuration, session store,
// backend API client, bag and coupon services, payment gateway and the
// background scheduler.
type Application struct {
	appConfig *config.AppConfig
	sessions  *session.Store
	apiClient *api.Client
	bus       EventBus.Bus
	bagSvc    *bag.Service
	couponSvc *coupon.Service
	gateway   *payment.Gateway
	sched     *cron.Cron
}

var (
	_ ConfigProvider    = (*Application)(nil)
	_ SessionProvider   = (*Application)(nil)
	_ APIProvider       = (*Application)(nil)
	_ BagProvider       = (*Application)(nil)
	_ CouponProvider    = (*Application)(nil)
	_ GatewayProvider   = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }
func (a *Application) Sessions() *session.Store  { return a.sessions }
func (a *Application) API() *api.Client          { return a.apiClient }
func (a *Application) Bag() *bag.Service         { return a.bagSvc }
func (a *Application) Coupons() *coupon.Service  { return a.couponSvc }
func (a *Application) Gateway() *payment.Gateway { return a.gateway }
func (a *Application) Scheduler() *cron.Cron     { return a.sched }

// Init builds the logger, opens local state and constructs every service.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg.Logger)

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	a.sessions, err = session.Open(cfg.StatePath("session.db"))
	if err != nil {
		return err
	}

	a.apiClient = api.NewClient(cfg.Backend)
	a.bus = EventBus.New()
	a.bagSvc = bag.NewService(a.apiClient, a.bus)

	a.couponSvc, err = coupon.NewService(a.apiClient, a.bus)
	if err != nil {
		return err
	}

	deviceID, err := a.sessions.DeviceID()
	if err != nil {
		return err
	}
	a.gateway = payment.NewGateway(cfg.Gateway, a.apiClient, deviceID)
	if store := a.sessions.SelectedStore(); store != nil {
		a.gateway.UseStore(store.CNPJ)
	}

	a.initJobs()

	zap.L().Info("application initialized",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("workdir", cfg.System.Workdir))
	return nil
}

func initLogger(cfg config.LogConfig) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.FileEnable {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotated),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// Release stops background work and closes local state.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.sessions != nil {
		_ = a.sessions.Close()
	}
	_ = zap.L().Sync()
}
