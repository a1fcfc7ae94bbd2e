// Package app wires the HTTP surface together: middleware, routes and
// the dependencies handed to every handler
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Drwalbin/contacts-api/app/contact"
	"github.com/Drwalbin/contacts-api/app/root"
	"github.com/Drwalbin/contacts-api/app/user"
	"github.com/Drwalbin/contacts-api/db"
	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/service"
	"github.com/Drwalbin/contacts-api/internal/storage"
	"github.com/Drwalbin/contacts-api/pkg/middleware"
	"github.com/Drwalbin/contacts-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	makeLogger()

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	d.Argon = security.New()

	avatarStore, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize avatar store, %w", err)
	}

	d.Avatars, err = service.NewAvatarProcessor(avatarStore)
	if err != nil {
		return nil, err
	}

	d.Mailer = service.NewMailer()
	d.Mailer.StartWorkers(2)

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("app.url")},
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.CustomRecovery(func(c *gin.Context, err any) {
			zap.L().Error("Panic recovered", zap.Any("error", err))

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "unexpected error",
				"data":    "Internal Server Error",
			})
		}),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Use api on routes: /api/contacts",
			"data":    "Not found",
		})
	})

	jwt := middleware.NewJWTMiddleware(database)
	maxUploadSize := viper.GetInt64("upload.max_size")

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users/signup 		-> Registers a new user and sends a verification mail
		u.POST("/signup", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 		-> Logs in a verified user and returns a JWT token
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/users/logout 		-> Invalidates the current session token
		u.GET("/logout", jwt, func(c *gin.Context) { user.UserLogout(c, d) })

		// GET /api/users/current 		-> Returns the profile of the caller
		u.GET("/current", jwt, user.UserCurrent)

		// PATCH /api/users 			-> Changes the subscription tier
		u.PATCH("", jwt, func(c *gin.Context) { user.UserUpdateSubscription(c, d) })

		// GET /api/users/verify/:token		-> Confirms an email address
		u.GET("/verify/:verificationToken", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/users/verify/resend	-> Re-issues a verification mail
		u.POST("/verify/resend", func(c *gin.Context) { user.UserResendVerification(c, d) })
	}

	// The avatar route skips the small body limit of the rest of the
	// user group
	m.PATCH("/users/avatars", middleware.BodySizeLimiter(maxUploadSize), jwt,
		func(c *gin.Context) { user.UserUpdateAvatar(c, d) })

	ct := m.Group("/contacts", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/contacts			-> Returns contacts page by page
		ct.GET("", jwt, func(c *gin.Context) { contact.ContactList(c, d) })

		// GET /api/contacts/:contactId		-> Returns a single contact.
		// Cached responses can lag a write by up to the cache window
		ct.GET("/:contactId", cacheFor(15), func(c *gin.Context) { contact.ContactFetch(c, d) })

		// POST /api/contacts			-> Creates a new contact
		ct.POST("", jwt, func(c *gin.Context) { contact.ContactCreate(c, d) })

		// PUT /api/contacts/:contactId		-> Updates a contact
		ct.PUT("/:contactId", func(c *gin.Context) { contact.ContactUpdate(c, d) })

		// PATCH /api/contacts/:contactId/favorite -> Toggles the favorite flag
		ct.PATCH("/:contactId/favorite", func(c *gin.Context) { contact.ContactUpdateFavorite(c, d) })

		// DELETE /api/contacts/:contactId	-> Deletes a contact
		ct.DELETE("/:contactId", func(c *gin.Context) { contact.ContactDelete(c, d) })
	}

	// Processed avatars are served straight from the public directory
	if ls, ok := avatarStore.(*storage.LocalStore); ok {
		router.Static(storage.PublicPrefix, ls.Dir)
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	var lvl zapcore.Level
	if err := lvl.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
