package router

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/Santo1997/summer-sage-server/docs"
	"github.com/Santo1997/summer-sage-server/internal/auth"
	"github.com/Santo1997/summer-sage-server/internal/config"
	"github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/handler"
	appmw "github.com/Santo1997/summer-sage-server/internal/middleware"
)

const bodyLimit = "1M"

// Handlers groups the route handlers.
type Handlers struct {
	Course  *handler.CourseHandler
	User    *handler.UserHandler
	Cart    *handler.CartHandler
	Payment *handler.PaymentHandler
	Auth    *handler.AuthHandler
	Health  *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	jwtService *auth.JWTService,
	roles appmw.RoleResolver,
	h Handlers,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/", h.Health.Root)
	e.GET("/healthz", h.Health.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := appmw.JWT(jwtService)
	admin := appmw.RequireAdmin(roles)
	limited := publicWriteLimiter(cfg.RateLimitRPS)

	// Token
	e.POST("/jwt", h.Auth.IssueToken, limited...)

	// Courses
	e.GET("/courses", h.Course.ListApproved)
	e.GET("/allCourses", h.Course.ListAll, authn)
	e.GET("/courses/:id", h.Course.Get, authn)
	e.POST("/course", h.Course.Create, authn)
	e.PUT("/updateValue/:id", h.Course.Review, authn, admin)
	e.PUT("/updateCourses/:id", h.Course.Update, authn)
	e.GET("/userCourses", h.Course.ListByInstructor, authn)

	// Users
	e.POST("/allusers", h.User.Register, limited...)
	e.GET("/teachers", h.User.Teachers)
	e.GET("/teacher", h.User.Teacher)
	e.GET("/users", h.User.List, authn, admin)
	e.GET("/users/role/:email", h.User.Role, authn)
	e.PUT("/updateUser/:id", h.User.UpdateRole, authn, admin)

	// Carts
	e.POST("/cart", h.Cart.Add, limited...)
	e.GET("/carts", h.Cart.List, authn)
	e.DELETE("/carts/:id", h.Cart.Remove, limited...)

	// Payments
	e.GET("/allPayments", h.Payment.List, authn)
	e.POST("/create-payment-intent", h.Payment.CreateIntent, authn)
	e.POST("/payments", h.Payment.Record, authn)
}

// publicWriteLimiter throttles unauthenticated writes per client IP.
// A non-positive rate disables it.
func publicWriteLimiter(rps float64) []echo.MiddlewareFunc {
	if rps <= 0 {
		return nil
	}
	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error:   true,
				Message: "unable to identify client",
				Code:    "FORBIDDEN",
			}).SetInternal(err)
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Error:   true,
				Message: "too many requests",
				Code:    "RATE_LIMITED",
			})
		},
	})}
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			}).Info("request")
			return nil
		},
	})
}

// errorHandler renders every error as errors.ErrorResponse. Server-side
// failures are logged with the request id and answered with a generic body.
func errorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errors.ErrorResponse{Error: true, Message: "internal server error", Code: "INTERNAL_ERROR"}

		var he *echo.HTTPError
		if stderrors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case errors.ErrorResponse:
				body = m
			case string:
				body = errors.ErrorResponse{Error: true, Message: m}
			default:
				body = errors.ErrorResponse{Error: true, Message: http.StatusText(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			log.WithError(err).
				WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				WithField("uri", c.Request().RequestURI).
				Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("write error response")
		}
	}
}

// CustomValidator wraps validator for Echo and reports the first failure
// as an English sentence.
type CustomValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// NewValidator builds a validator that names fields by their JSON key.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	return &CustomValidator{validator: v, translator: trans}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return stderrors.New(verrs[0].Translate(cv.translator))
}
