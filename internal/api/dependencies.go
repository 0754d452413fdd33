package api

import (
	"os"
	"strconv"

	"southern-cross/frms/internal/common"
	"southern-cross/frms/internal/db"
	"southern-cross/frms/internal/db/repositories"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/metrics"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
	"southern-cross/frms/internal/services"
)

type Repositories struct {
	Keys     repositories.KeysRepo
	Airports *repositories.AirportRepository
	Duties   *repositories.DutyRepository
	Sectors  *repositories.SectorRepository
}

type Services struct {
	Cache         common.CacheInterface
	Timezone      *common.AirportTimezoneService
	Cumulative    *services.CumulativeService
	MaxDuty       *services.MaxDutyService
	MBTT          *services.MBTTService
	Compliance    *services.ComplianceService
	Factory       *services.DutyFactory
	Import        *services.DutyImportService
	AirportLoader *common.AirportLoaderService
	URLSigner     *common.URLSignerService
}

type Dependencies struct {
	Config   models.FRMSConfiguration
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	cfg := configFromEnv()
	tables := rules.MustLoad()

	repos := &Repositories{
		Keys:     *repositories.NewApiKeysRepo(db.DB),
		Airports: repositories.NewAirportRepository(db.PgDB),
		Duties:   repositories.NewDutyRepository(db.PgDB),
		Sectors:  repositories.NewSectorRepository(db.PgDB),
	}

	var cacheSvc common.CacheInterface
	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis cache unavailable, falling back to in-memory", "error", err.Error())
			cacheSvc = common.NewCacheService(3600, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(3600, 600)
	}

	tzSvc := common.NewAirportTimezoneService(db.PgDB, cacheSvc)
	factory := services.NewDutyFactory(cfg, tzSvc)

	signerSecret := os.Getenv("URL_SIGNER_SECRET")
	if signerSecret == "" {
		signerSecret = "dev-only-secret"
	}
	urlSigner := common.NewURLSignerService([]byte(signerSecret), common.NewRedisClient())

	svcs := &Services{
		Cache:         cacheSvc,
		Timezone:      tzSvc,
		Cumulative:    services.NewCumulativeService(cfg, tzSvc),
		MaxDuty:       services.NewMaxDutyService(cfg, tables, tzSvc),
		MBTT:          services.NewMBTTService(cfg),
		Compliance:    services.NewComplianceService(cfg, tables, tzSvc),
		Factory:       factory,
		Import:        services.NewDutyImportService(repos.Sectors, repos.Duties, factory),
		AirportLoader: common.NewAirportLoaderService(db.PgDB),
		URLSigner:     urlSigner,
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil

}

func configFromEnv() models.FRMSConfiguration {
	fleet := models.Fleet(os.Getenv("FRMS_FLEET"))
	if fleet != models.FleetShortHaul && fleet != models.FleetWideBody {
		fleet = models.FleetShortHaul
	}

	homeBase := os.Getenv("FRMS_HOME_BASE")
	if homeBase == "" {
		homeBase = "YSSY"
	}

	return models.FRMSConfiguration{
		Fleet:               fleet,
		HomeBase:            homeBase,
		SignOnLeadMinutes:   envInt("FRMS_SIGN_ON_LEAD_MINUTES", 60),
		SignOffTrailMinutes: envInt("FRMS_SIGN_OFF_TRAIL_MINUTES", 15),
	}
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warn("invalid integer in environment", "name", name, "value", raw)
		return fallback
	}
	return val
}
