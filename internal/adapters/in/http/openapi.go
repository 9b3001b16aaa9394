package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(openAPIDocument)
}

var registerSwagger sync.Once

// RegisterSwagger publishes the document to the swag registry read by /swagger/*.
func RegisterSwagger() {
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
}

// ValidateRequests checks method, path, parameters and body against doc.
// Requests for paths the document does not describe pass through untouched.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return badRequest(ctx, "request does not match the API", err)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return requestInvalid(ctx, err)
			}
			return next(ctx)
		}
	}, nil
}

func requestInvalid(ctx echo.Context, err error) error {
	body := Error{Message: "request does not match the API", Errors: []string{}}
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			body.Errors = append(body.Errors, e.Error())
		}
	} else {
		body.Errors = append(body.Errors, err.Error())
	}
	return ctx.JSON(http.StatusBadRequest, body)
}
