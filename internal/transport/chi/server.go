package chi

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/carprice/internal/domain/price"
	"github.com/kailas-cloud/carprice/internal/domain/selection"
	logpkg "github.com/kailas-cloud/carprice/internal/logger"
	healthuc "github.com/kailas-cloud/carprice/internal/usecase/health"
	predictionuc "github.com/kailas-cloud/carprice/internal/usecase/prediction"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	msgBadNumber        = "Year and kilometers driven must be whole numbers."
	msgPredictionFailed = "Prediction failed. Please try again."
)

// FormOptions holds the input bounds and defaults rendered into the form.
type FormOptions struct {
	Title       string
	YearMin     int
	YearMax     int
	YearDefault int
	KmsMin      int
	KmsMax      int
	KmsStep     int
	KmsDefault  int
}

// Server renders the prediction form and serves operator endpoints.
type Server struct {
	predictions *predictionuc.Service
	health      *healthuc.Service
	form        FormOptions
	logger      *zap.Logger
	page        *template.Template
}

// NewServer creates the HTTP server. Templates are parsed once here.
func NewServer(
	predictions *predictionuc.Service,
	health *healthuc.Service,
	form FormOptions,
	logger *zap.Logger,
) *Server {
	return &Server{
		predictions: predictions,
		health:      health,
		form:        form,
		logger:      logger,
		page:        template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Routes mounts all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Form)
	r.Post("/predict", s.Predict)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

// formValues are the current field values rendered back into the form.
type formValues struct {
	Company   string
	Name      string
	Year      int
	KmsDriven int
	FuelType  string
	Location  string
	Label     string
}

// resultView echoes one prediction and its inputs.
type resultView struct {
	Formatted string
	Company   string
	Name      string
	Year      int
	KmsDriven string
	FuelType  string
	Location  string
	Label     string
}

type pageData struct {
	Title   string
	Form    FormOptions
	Choices predictionuc.Choices
	Values  formValues
	Result  *resultView
	Error   string
}

// Form handles GET /. The company query parameter picks the model list.
func (s *Server) Form(w http.ResponseWriter, r *http.Request) {
	choices := s.predictions.Choices(r.URL.Query().Get("company"))

	values := formValues{
		Company:   choices.Company,
		Year:      s.form.YearDefault,
		KmsDriven: s.form.KmsDefault,
		Name:      first(choices.Names),
		FuelType:  first(choices.FuelTypes),
		Location:  first(choices.Locations),
		Label:     first(choices.Labels),
	}

	s.render(w, http.StatusOK, s.newPage(choices, values))
}

// Predict handles POST /predict: one synchronous prediction per submission.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	logger := logpkg.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	values := formValues{
		Company:  r.PostFormValue("company"),
		Name:     r.PostFormValue("name"),
		FuelType: r.PostFormValue("fuel_type"),
		Location: r.PostFormValue("location"),
		Label:    r.PostFormValue("label"),
	}
	choices := s.predictions.Choices(values.Company)

	year, yearErr := parseInt(r.PostFormValue("year"))
	kms, kmsErr := parseInt(r.PostFormValue("kms_driven"))
	if yearErr != nil || kmsErr != nil {
		values.Year, values.KmsDriven = s.form.YearDefault, s.form.KmsDefault
		page := s.newPage(choices, values)
		page.Error = msgBadNumber
		s.render(w, http.StatusBadRequest, page)
		return
	}
	values.Year = clamp(year, s.form.YearMin, s.form.YearMax)
	values.KmsDriven = clamp(kms, s.form.KmsMin, s.form.KmsMax)

	sel := selection.Selection{
		Company:   values.Company,
		Name:      values.Name,
		Year:      values.Year,
		KmsDriven: values.KmsDriven,
		FuelType:  values.FuelType,
		Location:  values.Location,
		Label:     values.Label,
	}

	res, err := s.predictions.Predict(r.Context(), sel)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		page := s.newPage(choices, values)
		page.Error = msgPredictionFailed
		s.render(w, http.StatusInternalServerError, page)
		return
	}

	page := s.newPage(choices, values)
	page.Result = &resultView{
		Formatted: res.Formatted,
		Company:   sel.Company,
		Name:      sel.Name,
		Year:      sel.Year,
		KmsDriven: price.Group(strconv.Itoa(sel.KmsDriven)),
		FuelType:  sel.FuelType,
		Location:  sel.Location,
		Label:     sel.Label,
	}
	s.render(w, http.StatusOK, page)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

func (s *Server) newPage(choices predictionuc.Choices, values formValues) pageData {
	return pageData{
		Title:   s.form.Title,
		Form:    s.form,
		Choices: choices,
		Values:  values,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf strings.Builder
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("render form", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
