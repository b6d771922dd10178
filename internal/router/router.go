package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/fundward/backend/api"
	v1 "github.com/fundward/backend/internal/controllers/v1"
	"github.com/fundward/backend/internal/httputil"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/healthz", GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r, "debug/pprof")
	}

	docs.SwaggerInfo.Title = "Fundward"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Fundward, a bank statement ingestion and envelope budgeting service."

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterUserRoutes(group.Group("/users"))
	v1.RegisterAccountRoutes(group.Group("/accounts"))
	v1.RegisterCategoryRoutes(group.Group("/categories"))
	v1.RegisterTagRoutes(group.Group("/tags"))
	v1.RegisterTransactionRoutes(group.Group("/transactions"))
	v1.RegisterImportRoutes(group.Group("/imports"))
	v1.RegisterSuggestionRoutes(group.Group("/suggestions"))

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/docs/index.html"`
	Version string `json:"version" example:"https://example.com/version"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// @Summary      API root
// @Description  Entrypoint for the API, listing all endpoints
// @Tags         General
// @Success      200  {object}  RootResponse
// @Router       / [get]
func GetRoot(c *gin.Context) {
	url := requestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Version: url + "/version",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary      API version
// @Description  Returns the software version of the API
// @Tags         General
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary      Health
// @Description  Returns an empty response when the backend is able to serve requests
// @Tags         General
// @Success      204
// @Router       /healthz [get]
func GetHealth(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       / [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       /version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Users        string `json:"users" example:"https://example.com/v1/users"`
	Accounts     string `json:"accounts" example:"https://example.com/v1/accounts"`
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`
	Tags         string `json:"tags" example:"https://example.com/v1/tags"`
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"`
	Imports      string `json:"imports" example:"https://example.com/v1/imports"`
	Suggestions  string `json:"suggestions" example:"https://example.com/v1/suggestions"`
}

// @Summary      v1 API
// @Description  Returns general information about the v1 API
// @Tags         General
// @Success      200  {object}  V1Response
// @Router       /v1 [get]
func GetV1(c *gin.Context) {
	url := requestHost(c) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Users:        url + "/users",
			Accounts:     url + "/accounts",
			Categories:   url + "/categories",
			Tags:         url + "/tags",
			Transactions: url + "/transactions",
			Imports:      url + "/imports",
			Suggestions:  url + "/suggestions",
		},
	})
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       /v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}

// requestHost reconstructs the base URL for link generation. The scheme
// defaults to http and is upgraded when a reverse proxy says so.
func requestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	if xForwardedHost := c.Request.Header.Get("x-forwarded-host"); xForwardedHost != "" {
		host = xForwardedHost
	}

	return scheme + "://" + host
}
