package in

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"diagonator/internal/modules/analytics/dto"
	analyticsin "diagonator/internal/modules/analytics/port/in"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/logging"
	"diagonator/internal/ui/theme"
)

const svgContentType = "image/svg+xml; charset=utf-8"

type HTTPHandler struct {
	usecase analyticsin.Usecase
}

func NewHTTPHandler(usecase analyticsin.Usecase) *HTTPHandler {
	return &HTTPHandler{usecase: usecase}
}

// NewRouter builds the analytics server. Every request is logged and panics
// become 500 responses.
func NewRouter(usecase analyticsin.Usecase, logger hclog.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger.Named("http")))
	NewHTTPHandler(usecase).Register(r)
	return r
}

func (h *HTTPHandler) Register(r gin.IRoutes) {
	r.GET("/", h.ShowPage)
	r.GET("/api/deactivations", h.GetDeactivations)
	r.GET("/api/requirements", h.GetRequirements)
	r.GET("/deactivations.svg", h.GetDeactivationsSVG)
	r.GET("/requirements.svg", h.GetRequirementsSVG)
}

func (h *HTTPHandler) GetDeactivations(c *gin.Context) {
	out, err := h.usecase.Deactivations(c.Request.Context(), rangeInput(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) GetRequirements(c *gin.Context) {
	out, err := h.usecase.Requirements(c.Request.Context(), rangeInput(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) GetDeactivationsSVG(c *gin.Context) {
	out, err := h.usecase.Deactivations(c.Request.Context(), rangeInput(c))
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := DeactivationsSVG(out)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, svgContentType, body)
}

func (h *HTTPHandler) GetRequirementsSVG(c *gin.Context) {
	out, err := h.usecase.Requirements(c.Request.Context(), rangeInput(c))
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := RequirementsSVG(out)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, svgContentType, body)
}

type pageData struct {
	From, To   string
	Background string
	Text       string
	Accent     string
	Charts     bool
	Query      template.URL
	Series     []dto.RequirementSeries
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>diagonator analytics</title></head>
<body style="background: {{.Background}}; color: {{.Text}}; font-family: sans-serif">
<h1 style="color: {{.Accent}}">diagonator analytics</h1>
<form method="get" action="/">
<label>from <input type="date" name="from" value="{{.From}}"></label>
<label>to <input type="date" name="to" value="{{.To}}"></label>
<button type="submit">show</button>
</form>
{{if .Charts}}
<p><img alt="deactivations" src="/deactivations.svg?{{.Query}}"></p>
<p><img alt="requirements" src="/requirements.svg?{{.Query}}"></p>
<table>
<tr style="text-align: left"><th>requirement</th><th>median completion</th><th>days</th></tr>
{{range .Series}}<tr><td>{{.Name}}</td><td>{{.Median}}</td><td>{{len .Points}}</td></tr>
{{end}}</table>
{{end}}
</body></html>
`))

// ShowPage renders the date picker and, once both bounds are given, the charts.
func (h *HTTPHandler) ShowPage(c *gin.Context) {
	input := rangeInput(c)
	data := pageData{
		From:       input.From,
		To:         input.To,
		Background: string(theme.Base),
		Text:       string(theme.Text),
		Accent:     string(theme.Sapphire),
	}
	if input.From != "" || input.To != "" {
		out, err := h.usecase.Requirements(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		data.Charts = true
		data.Series = out.Series
		data.Query = template.URL(c.Request.URL.Query().Encode())
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func rangeInput(c *gin.Context) dto.RangeInput {
	return dto.RangeInput{From: c.Query("from"), To: c.Query("to")}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Serve runs the server until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler, logger hclog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if logger != nil {
		logger.Info("analytics server listening", "addr", addr)
	}
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
