package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"travelcms/constants"
	"travelcms/controllers"
	"travelcms/dto"
	"travelcms/middleware"
	"travelcms/models"
	"travelcms/services"
	"travelcms/services/logger"
	"travelcms/validator"
)

// Dependencies are the connected components the routes are built from.
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Storage services.MediaStorage
	Tokens  *services.TokenService
	Logger  logger.Logger
	// MediaDir is served under /uploads when set.
	MediaDir string
}

// Services exposes the services main needs beyond the HTTP layer.
type Services struct {
	Auth          *services.AuthService
	Covers        *services.CoverService
	Media         *services.MediaService
	Relationships *services.RelationshipService
}

// SetupRoutes mounts the catalog API under /api/v1.
func SetupRoutes(router *gin.Engine, deps Dependencies) *Services {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		validator.Configure(v)
	}

	router.Use(middleware.RequestID(), middleware.ErrorLogger(deps.Logger))

	cache := services.NewListCache(deps.Redis, deps.Logger)
	relationships := services.NewRelationshipService(deps.DB, deps.Logger)
	media := services.NewMediaService(deps.DB, deps.Storage, cache, deps.Logger)
	auth := services.NewAuthService(deps.DB, deps.Tokens, deps.Logger)
	covers := services.NewCoverService(deps.DB, cache, deps.Logger)
	hooks := []services.DeleteHook{relationships.PurgeEntity, media.PurgeEntity}

	public := gin.HandlersChain{}
	staff := gin.HandlersChain{middleware.AuthMiddleware(deps.Tokens, constants.RoleAdmin, constants.RoleEditor)}
	admin := gin.HandlersChain{middleware.AuthMiddleware(deps.Tokens), middleware.RoleMiddleware(constants.RoleAdmin)}

	v1 := router.Group(constants.APIRoot)

	authController := controllers.NewAuthController(auth)
	v1.POST("/auth/login", authController.Login)
	v1.GET("/auth/me", middleware.AuthMiddleware(deps.Tokens), authController.Me)

	cat := catalog{deps: deps, cache: cache, hooks: hooks}

	hotels := v1.Group("/" + models.KindHotel.Path())
	registerCatalog[dto.CreateHotelRequest, dto.UpdateHotelRequest](cat, hotels, public, staff,
		services.CatalogConfig[models.Hotel]{
			Kind:    models.KindHotel,
			Filters: []string{"country_id", "hotel_type_id", "is_active"},
		})
	controllers.NewRelationshipController(relationships, models.KindHotel).Register(hotels, public, staff)

	attractions := v1.Group("/" + models.KindAttraction.Path())
	registerCatalog[dto.CreateAttractionRequest, dto.UpdateAttractionRequest](cat, attractions, public, staff,
		services.CatalogConfig[models.Attraction]{
			Kind:    models.KindAttraction,
			Filters: []string{"country_id", "is_active"},
		})
	controllers.NewRelationshipController(relationships, models.KindAttraction).Register(attractions, public, staff)

	registerCatalog[dto.CreateGroupTripRequest, dto.UpdateGroupTripRequest](cat, v1.Group("/"+models.KindGroupTrip.Path()), public, staff,
		services.CatalogConfig[models.GroupTrip]{
			Kind:      models.KindGroupTrip,
			Filters:   []string{"package_id", "is_active"},
			DateRange: true,
			Check:     validator.ValidateGroupTrip,
		})

	registerCatalog[dto.CreatePackageRequest, dto.UpdatePackageRequest](cat, v1.Group("/"+models.KindPackage.Path()), public, staff,
		services.CatalogConfig[models.Package]{
			Kind:    models.KindPackage,
			Filters: []string{"country_id", "holiday_type_id", "is_active"},
		})

	registerCatalog[dto.CreateHolidayTypeRequest, dto.UpdateHolidayTypeRequest](cat, v1.Group("/"+models.KindHolidayType.Path()), public, staff,
		services.CatalogConfig[models.HolidayType]{Kind: models.KindHolidayType, Filters: []string{"is_active"}})
	registerCatalog[dto.CreateHotelTypeRequest, dto.UpdateHotelTypeRequest](cat, v1.Group("/"+models.KindHotelType.Path()), public, staff,
		services.CatalogConfig[models.HotelType]{Kind: models.KindHotelType, Filters: []string{"is_active"}})
	registerCatalog[dto.CreateInclusionRequest, dto.UpdateInclusionRequest](cat, v1.Group("/"+models.KindInclusion.Path()), public, staff,
		services.CatalogConfig[models.Inclusion]{Kind: models.KindInclusion, Filters: []string{"is_active"}})
	registerCatalog[dto.CreateExclusionRequest, dto.UpdateExclusionRequest](cat, v1.Group("/"+models.KindExclusion.Path()), public, staff,
		services.CatalogConfig[models.Exclusion]{Kind: models.KindExclusion, Filters: []string{"is_active"}})

	registerCatalog[dto.CreateUserRequest, dto.UpdateUserRequest](cat, v1.Group("/"+models.KindUser.Path()), admin, admin,
		services.CatalogConfig[models.User]{Kind: models.KindUser, Filters: []string{"role", "is_active"}})

	controllers.NewMediaController(media).Register(v1.Group("/media"), public, staff)

	if deps.MediaDir != "" {
		router.Static("/uploads", deps.MediaDir)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Services{Auth: auth, Covers: covers, Media: media, Relationships: relationships}
}

type catalog struct {
	deps  Dependencies
	cache *services.ListCache
	hooks []services.DeleteHook
}

func registerCatalog[C dto.Creator[T], U dto.Patcher[T], T any, PT services.Entity[T]](
	cat catalog, group *gin.RouterGroup, read, write gin.HandlersChain, cfg services.CatalogConfig[T],
) *services.CatalogService[T, PT] {
	service := services.NewCatalogService[T, PT](cat.deps.DB, cat.cache, cat.deps.Logger, cfg)
	for _, hook := range cat.hooks {
		service.OnDelete(hook)
	}
	controllers.NewCatalogController[C, U](service).Register(group, read, write)
	return service
}
