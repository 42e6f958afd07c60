package api

import (
	"context"
	"errors"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/apiclient"
	"github.com/wateringdiary/webapp/internal/i18n"
	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

// APIClient is the subset of the REST client the handlers use.
// *apiclient.Client satisfies it.
type APIClient interface {
	Login(ctx context.Context, login string, password string) (models.LoginResult, error)
	CreateUser(ctx context.Context, payload models.UserCreate) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)

	ListPlantTypes(ctx context.Context) ([]models.PlantType, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)

	ListUserPlants(ctx context.Context, userID int64) ([]models.UserPlant, error)
	CreateUserPlant(ctx context.Context, payload models.UserPlantCreate) (models.UserPlant, error)
	UpdateUserPlant(ctx context.Context, id int64, patch models.UserPlantPatch) (models.UserPlant, error)
	DeleteUserPlant(ctx context.Context, id int64) error

	ListConditions(ctx context.Context, userID int64) ([]models.Condition, error)
	GetCondition(ctx context.Context, id int64) (models.Condition, error)
	CreateCondition(ctx context.Context, payload models.ConditionCreate) (models.Condition, error)
	UpdateCondition(ctx context.Context, id int64, patch models.ConditionPatch) (models.Condition, error)
	DeleteCondition(ctx context.Context, id int64) error

	ListPlantRecords(ctx context.Context, plantID int64) ([]models.WateringRecord, error)
	GetRecord(ctx context.Context, id int64) (models.WateringRecord, error)
	CreateRecord(ctx context.Context, payload models.WateringRecordCreate) (models.WateringRecord, error)
	UpdateRecord(ctx context.Context, id int64, patch models.WateringRecordPatch) (models.WateringRecord, error)
	DeleteRecord(ctx context.Context, id int64) error

	Recommend(ctx context.Context, plantID int64) (models.Recommendation, error)
	ExportRecords(ctx context.Context, query apiclient.ExportQuery) (*apiclient.Download, error)
}

// SessionStore persists the server side of browser sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActive(ctx context.Context, id string, now time.Time) (models.Session, error)
	Revoke(ctx context.Context, id string, now time.Time) error
}

type HandlerConfig struct {
	API          APIClient
	Sessions     SessionStore
	I18n         *i18n.Manager
	Logger       *zap.Logger
	SecretKey    string
	TemplateDir  string
	Location     *time.Location
	CookieSecure bool
	SessionTTL   time.Duration
	FanOutLimit  int
}

type Handler struct {
	api          APIClient
	sessions     SessionStore
	i18n         *i18n.Manager
	logger       *zap.Logger
	secretKey    []byte
	cookieCodec  *secureCookieCodec
	location     *time.Location
	cookieSecure bool
	sessionTTL   time.Duration
	fanOutLimit  int
	templates    map[string]*template.Template
	partials     map[string]*template.Template
	now          func() time.Time
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.API == nil {
		return nil, errors.New("api client is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.FanOutLimit < 1 {
		cfg.FanOutLimit = services.DefaultFanOutLimit
	}

	secretKey := []byte(cfg.SecretKey)
	cookieCodec, err := newSecureCookieCodec(secretKey)
	if err != nil {
		return nil, err
	}

	funcMap := templateFuncMap()
	templates, err := parsePageTemplates(cfg.TemplateDir, funcMap, pageTemplates)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(cfg.TemplateDir, funcMap, partialTemplateFiles)
	if err != nil {
		return nil, err
	}

	return &Handler{
		api:          cfg.API,
		sessions:     cfg.Sessions,
		i18n:         cfg.I18n,
		logger:       cfg.Logger,
		secretKey:    secretKey,
		cookieCodec:  cookieCodec,
		location:     cfg.Location,
		cookieSecure: cfg.CookieSecure,
		sessionTTL:   cfg.SessionTTL,
		fanOutLimit:  cfg.FanOutLimit,
		templates:    templates,
		partials:     partials,
		now:          time.Now,
	}, nil
}
