package server

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/tastybites/internal/database"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/mdouchement/tastybites/internal/server/middlewares"
	"github.com/mdouchement/tastybites/internal/token"
	"github.com/sirupsen/logrus"
)

// Welcome is the message rendered on the root path.
const Welcome = "Welcome to our backend application!!"

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	Tokens   *token.Service
	Logger   logrus.FieldLogger
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	if ctrl.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		ctrl.Logger = l
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())
	engine.Use(middlewares.Logger(ctrl.Logger))

	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	////////////
	// Router //
	////////////

	// Gates are composed per route, in order.
	authenticated := middlewares.Authentication(ctrl.Tokens)
	admin := middlewares.Admin(ctrl.Database)

	router := engine.Group("")

	// generic handlers
	//
	router.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, Welcome)
	})
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// token handlers
	//
	tokens := &tokenHandlers{
		tokens: ctrl.Tokens,
	}
	router.POST("/jwt", tokens.Issue)

	//
	// user handlers
	//
	user := &user{
		db: ctrl.Database,
	}
	router.GET("/users", user.List, authenticated, admin)
	router.POST("/users", user.Register)
	router.GET("/users/admin/:email", user.IsAdmin, authenticated)
	router.PATCH("/users/admin/:id", user.Promote)
	router.DELETE("/users/:id", user.Delete)

	//
	// catalog handlers
	//
	catalog := &catalog{
		db: ctrl.Database,
	}
	router.GET("/menu", catalog.Menu)
	router.GET("/review", catalog.Reviews)

	//
	// cart handlers
	//
	cart := &cart{
		db: ctrl.Database,
	}
	router.GET("/carts", cart.List, authenticated)
	router.POST("/carts", cart.Create)
	router.DELETE("/carts/:id", cart.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentEmail(c echo.Context) string {
	return middlewares.CurrentIdentity(c).Email()
}

// documents never renders a nil slice so clients always get a JSON array.
func documents(d []*model.Document) []*model.Document {
	if d == nil {
		return []*model.Document{}
	}
	return d
}
