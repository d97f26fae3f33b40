package container

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/config"
	"github.com/joshua-takyi/carnivalxperience/internal/geo"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/llm"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/joshua-takyi/carnivalxperience/internal/queue"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Tokens accepted by the memory backend.
const (
	DemoAttendeeToken = "demo-attendee-token"
	DemoAdminToken    = "demo-admin-token"
)

var (
	DemoAttendeeID = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	DemoAdminID    = uuid.MustParse("00000000-0000-4000-8000-000000000002")
)

// Backends are the live connections the container is built from. With
// Memory set every repository is served from it and the rest are ignored.
type Backends struct {
	Supabase   *supabase.Client
	Mongo      *mongo.Client
	Cloudinary *cloudinary.Cloudinary
	Redis      *redis.Client
	Publisher  queue.Publisher
	Memory     *models.MemoryRepo
}

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Redis    *redis.Client
	Verifier helpers.TokenVerifier

	EventService      *services.EventService
	HotelService      *services.HotelService
	BookingService    *services.BookingService
	VoteService       *services.VoteService
	PaymentService    *services.PaymentService
	SafetyService     *services.SafetyService
	LiveUpdateService *services.LiveUpdateService
	ProfileService    *services.ProfileService
	ConciergeService  *services.ConciergeService
	FavouritesService *services.FavouriteService
	GeoService        *services.GeoService

	publisher queue.Publisher
}

type repos struct {
	events    models.EventRepo
	hotels    models.HotelRepo
	bookings  models.BookingRepo
	bands     models.BandRepo
	incidents models.IncidentRepo
	family    models.FamilyRepo
	shares    models.LocationShareRepo
	updates   models.LiveUpdateRepo
	profiles  models.ProfileRepo
	concierge models.ConciergeRepo
	favs      models.FavouriteRepo
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, b Backends) *Container {
	r := buildRepos(cfg, b)

	publisher := b.Publisher
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}

	var uploader helpers.ImageUploader = helpers.PassthroughUploader{}
	if b.Cloudinary != nil {
		uploader = helpers.NewCloudinaryUploader(b.Cloudinary, logger)
	}

	var gateway payments.Gateway
	if cfg.PaymentsLive() {
		gateway = payments.NewPaystack(cfg.Payments.PaystackSecretKey, cfg.Payments.PaystackBaseURL, 15*time.Second)
	} else {
		gateway = payments.NewDemo(cfg.AppURL+"/api/payments/verify", cfg.Payments.DemoWebhookSecret)
	}

	var completer llm.Completer = llm.Canned{}
	if cfg.LLM.APIKey != "" {
		completer = llm.NewHTTPCompleter(cfg.LLM.APIURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	}

	var cache geo.Cache = geo.NopCache{}
	if b.Redis != nil {
		cache = geo.NewRedisCache(b.Redis, "geo")
	}
	geocoder := geo.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout, cache, cfg.Geocoder.CacheTTL)

	var verifier helpers.TokenVerifier
	if b.Memory != nil {
		verifier = demoVerifier()
	} else {
		verifier = helpers.NewSupabaseVerifier(ctx, cfg.SupabaseURL, cfg.SupabaseJWTSecret, b.Supabase.Auth, logger)
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Redis:    b.Redis,
		Verifier: verifier,

		EventService:      services.NewEventService(r.events),
		HotelService:      services.NewHotelService(r.hotels),
		BookingService:    services.NewBookingService(r.bookings, r.hotels, gateway, cfg.Payments.Currency, cfg.AppURL+"/api/payments/verify", logger),
		VoteService:       services.NewVoteService(r.bands),
		PaymentService:    services.NewPaymentService(r.bookings, gateway, publisher, logger),
		SafetyService:     services.NewSafetyService(r.incidents, r.family, r.shares, uploader, publisher, logger),
		LiveUpdateService: services.NewLiveUpdateService(r.updates),
		ProfileService:    services.NewProfileService(r.profiles, uploader),
		ConciergeService:  services.NewConciergeService(r.concierge, completer, logger),
		FavouritesService: services.NewFavouriteService(r.favs),
		GeoService:        services.NewGeoService(geocoder, logger),

		publisher: publisher,
	}
}

func buildRepos(cfg *config.Config, b Backends) repos {
	if m := b.Memory; m != nil {
		return repos{
			events: m, hotels: m, bookings: m, bands: m, incidents: m, family: m,
			shares: m, updates: m, profiles: m, concierge: m, favs: m,
		}
	}

	supa := models.SupabaseNewRepo(b.Supabase)
	r := repos{
		events: supa, hotels: supa, bookings: supa, bands: supa, incidents: supa, family: supa,
		shares: supa, updates: supa, profiles: supa,
	}
	// leave the interfaces nil, not typed-nil, without Mongo
	if b.Mongo != nil {
		mdb := models.MongodbNewRepo(b.Mongo, cfg.MongoDBDatabase)
		r.concierge = mdb
		r.favs = mdb
	}
	return r
}

func demoVerifier() helpers.StaticVerifier {
	claims := func(id uuid.UUID, email, name string) *helpers.CustomClaims {
		return &helpers.CustomClaims{
			Role:         "authenticated",
			Email:        email,
			UserMetadata: map[string]interface{}{"full_name": name},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: id.String(),
			},
		}
	}
	return helpers.StaticVerifier{
		DemoAttendeeToken: claims(DemoAttendeeID, "attendee@carnival.test", "Demo Attendee"),
		DemoAdminToken:    claims(DemoAdminID, "admin@carnival.test", "Demo Admin"),
	}
}

// SeedDemo fills the memory backend with catalogue data and the demo
// accounts behind DemoAttendeeToken and DemoAdminToken.
func SeedDemo(m *models.MemoryRepo, now time.Time) {
	m.SeedCarnival(now)
	m.PutProfile(&models.Profile{
		ID: DemoAttendeeID, Email: "attendee@carnival.test", FullName: "Demo Attendee",
		Role: "attendee", PreferredLanguage: "en", CreatedAt: now, UpdatedAt: now,
	})
	m.PutProfile(&models.Profile{
		ID: DemoAdminID, Email: "admin@carnival.test", FullName: "Demo Admin",
		Role: "admin", PreferredLanguage: "en", CreatedAt: now, UpdatedAt: now,
	})
}

// Close releases background resources owned by the container.
func (c *Container) Close() {
	if v, ok := c.Verifier.(*helpers.SupabaseVerifier); ok {
		v.Close()
	}
	if err := c.publisher.Close(); err != nil {
		c.Logger.Error("Failed to close event publisher", "error", err)
	}
}
