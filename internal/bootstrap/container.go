package bootstrap

import (
	"context"
	"time"

	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/gateway"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/repository/cache"
	"ai-assistant-client/internal/service"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/internal/tracer"
	"ai-assistant-client/pkg/chateffect"
	"ai-assistant-client/pkg/feed"
	"ai-assistant-client/pkg/guard"
	"ai-assistant-client/pkg/scheduler"

	pktNats "ai-assistant-client/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Ports are the user-facing collaborators supplied by the front end.
type Ports struct {
	Notifier  service.INotifier
	Confirmer service.IConfirmer
}

// Container holds one client session: state, remote access and the services that keep
// them in sync. Close must be called when the session ends.
type Container struct {
	Store       *state.Store
	Client      remote.IClient
	Aggregator  *feed.Aggregator
	Guards      *guard.Families
	Loader      service.ILoaderService
	Coordinator service.ICoordinatorService
	Chat        service.IChatService
	Search      service.ISearchService
	Code        service.ICodeService
	Sync        service.ISyncService // nil unless NATS_URL is set

	logger     logger.ILogger
	cancel     context.CancelFunc
	debouncers []*scheduler.Debouncer
	pubSub     *gochannel.GoChannel
	natsPub    *pktNats.Publisher
	natsSub    *pktNats.Subscriber
	rdb        *redis.Client
	shutdown   func(context.Context) error
}

func NewContainer(cfg *config.Config, log logger.ILogger, ports Ports) (*Container, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{logger: log, cancel: cancel}

	// 1. Core Facades
	c.shutdown = tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelURL, "ai-assistant-client", log)

	var opts []gateway.Option
	if cfg.Remote.APIToken != "" {
		opts = append(opts, gateway.WithAPIToken(cfg.Remote.APIToken))
	}
	gw := gateway.New(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout, log, opts...)
	c.Client = remote.NewClient(gw)
	c.Store = state.NewStore()
	c.Guards = guard.NewFamilies(cfg.Sync.GuardLease)
	c.Aggregator = feed.NewAggregator(log)
	detector := chateffect.NewDetector(chateffect.Config{
		MarkerCompat:    cfg.Chat.MarkerCompat,
		NoteMarkers:     cfg.Chat.NoteMarkers,
		ReminderMarkers: cfg.Chat.ReminderMarkers,
	})

	// 2. Event Bus
	c.pubSub = gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NopLogger{},
	)
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, c.pubSub, log)

	// 3. Infrastructure
	var dashboardCache cache.IDashboardCache
	if cfg.App.RedisURL != "" {
		c.rdb = cache.NewRedisClient(cfg.App.RedisURL)
		dashboardCache = cache.NewRedisDashboardCache(c.rdb, cfg.App.DeviceId, cfg.App.CacheTTL)
	}

	// 4. Services
	c.Loader = service.NewLoaderService(c.Client, c.Store, c.Aggregator, c.Guards, dashboardCache, log)
	notes := c.debounce(ctx, "notes", cfg.Sync.ReloadDelay, c.Loader.LoadNotes)
	reminders := c.debounce(ctx, "reminders", cfg.Sync.ReloadDelay, c.Loader.LoadReminders)
	dashboard := c.debounce(ctx, "dashboard", cfg.Sync.DashboardDebounce, c.Loader.LoadDashboard)

	reconciler := service.NewReconcilerService(c.pubSub, cfg.App.EventsTopic, service.Refreshers{
		Notes:     notes,
		Reminders: reminders,
		Dashboard: dashboard,
	}, log)
	if err := reconciler.Consume(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.Coordinator = service.NewCoordinatorService(
		c.Client, c.Store, c.Guards, publisherService, ports.Notifier, ports.Confirmer, log,
		service.CoordinatorOptions{RollbackFailedToggle: cfg.Sync.RollbackFailedToggle},
	)
	c.Chat = service.NewChatService(c.Client, c.Store, detector, publisherService, ports.Notifier, log)
	c.Search = service.NewSearchService(c.Client, c.Store, publisherService, log)
	c.Code = service.NewCodeService(c.Client, c.Store, publisherService, log)

	// 5. Cross-device sync
	if cfg.App.NatsURL != "" {
		if err := c.startSync(ctx, cfg, publisherService); err != nil {
			log.Warn("BOOTSTRAP", "Cross-device sync disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return c, nil
}

func (c *Container) debounce(ctx context.Context, name string, delay time.Duration, run scheduler.RunFunc) *scheduler.Debouncer {
	d := scheduler.NewDebouncer(ctx, name, delay, run, c.logger)
	c.debouncers = append(c.debouncers, d)
	return d
}

func (c *Container) startSync(ctx context.Context, cfg *config.Config, local service.IPublisherService) error {
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, c.logger)
	if err != nil {
		return err
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, c.logger)
	if err != nil {
		natsPub.Close()
		return err
	}
	c.natsPub, c.natsSub = natsPub, natsSub

	c.Sync = service.NewSyncService(c.pubSub, cfg.App.EventsTopic, local, natsPub, natsSub,
		uuid.NewString(), cfg.App.DeviceId, c.logger)
	return c.Sync.Start(ctx)
}

// Start installs a cached dashboard, if one exists, then performs the initial load.
func (c *Container) Start(ctx context.Context) error {
	c.Loader.WarmDashboard(ctx)
	return c.Loader.LoadAll(ctx)
}

// Close stops pending reloads and releases every connection. It is safe to call twice.
func (c *Container) Close() {
	c.cancel()
	for _, d := range c.debouncers {
		d.Stop()
	}
	if c.natsSub != nil {
		c.natsSub.Close()
		c.natsSub = nil
	}
	if c.natsPub != nil {
		c.natsPub.Close()
		c.natsPub = nil
	}
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
		c.rdb = nil
	}
	if c.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.shutdown(ctx)
		c.shutdown = nil
	}
}
