package config

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// NewRouter builds the gin engine with CORS for the configured origins.
func NewRouter(s Settings) *gin.Engine {
	if s.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID", "X-Total-Count")
	configCors.AllowCredentials = true
	if len(s.CORSOrigins) == 0 {
		configCors.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		configCors.AllowOrigins = s.CORSOrigins
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)
	return router
}

// InitApp loads the environment, connects every component and returns the
// router and an unstarted scheduler.
func InitApp() (*gin.Engine, *cron.Cron, Settings, error) {
	LoadEnv()
	settings := FromEnv()

	if err := initComponents(settings); err != nil {
		return nil, nil, settings, fmt.Errorf("failed to initialize components: %v", err)
	}

	return NewRouter(settings), cron.New(), settings, nil
}

func initComponents(s Settings) error {
	if err := ConnectDB(s); err != nil {
		return err
	}

	var err error
	Cloudinary, err = ConnectCloudinary(s)
	if err != nil {
		return fmt.Errorf("failed to configure cloudinary: %v", err)
	}

	RedisClient, err = ConnectRedis(s)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}
