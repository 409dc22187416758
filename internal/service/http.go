package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gradefetch-backend/internal/components/assert"
	"gradefetch-backend/internal/portal"
	"gradefetch-backend/internal/semester"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const report_http_write = "http.write"

// DefaultAllowedOrigins are the dev servers and deployments of the frontend.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://cgpa-fetcher.vercel.app",
	"https://cgpa-fetcher-prem-080s-projects.vercel.app",
	"https://cgpa-fetcher-git-main-prem-080s-projects.vercel.app",
	"https://cgpa-fetcher-7c93752lh-prem-080s-projects.vercel.app",
}

const frontendURL = "https://cgpa-fetcher.vercel.app"

// PortalProber reports whether the portal is reachable.
//
// note: fault injection point
type PortalProber interface {
	Probe(ctx context.Context) portal.ProbeResult
}

type RouterConfig struct {
	AllowedOrigins []string
	// Environment "development" accepts requests from any origin.
	Environment string
	// Timeout bounds every request when non-zero.
	Timeout time.Duration
}

// NewRouter mounts FetchGrade, the api docs and the health check.
func NewRouter(s Service, prober PortalProber, cfg RouterConfig, opts ...connect.HandlerOption) http.Handler {
	assert.NotNil(prober, "prober")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	corsOptions := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Connect-Protocol-Version"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if cfg.Environment == "development" {
		corsOptions.AllowOriginFunc = func(_ *http.Request, _ string) bool {
			return true
		}
	}
	r.Use(cors.Handler(corsOptions))

	opts = append(opts, connect.WithInterceptors(newRequestLogInterceptor(s.tel)))
	fetchGrade := NewFetchGradeHandler(s, opts...)
	r.Method(http.MethodPost, "/fetch-grade", fetchGrade)
	r.Method(http.MethodPost, FetchGradeProcedure, fetchGrade)

	r.Get("/", s.handleDocs)
	r.Get("/health", s.handleHealth(prober))

	return r
}

func (s Service) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		s.tel.ReportWarning(report_http_write, err)
	}
}

type endpointDoc struct {
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Body        map[string]string `json:"body,omitempty"`
	Example     any               `json:"example,omitempty"`
}

type semesterDoc struct {
	Code  semester.Code `json:"code"`
	Label string        `json:"label"`
}

type apiDocs struct {
	Status    string                 `json:"status"`
	Endpoints map[string]endpointDoc `json:"endpoints"`
	Semesters []semesterDoc          `json:"semesters"`
	Frontend  string                 `json:"frontend"`
}

func (s Service) handleDocs(w http.ResponseWriter, r *http.Request) {
	semesters := make([]semesterDoc, 0, len(semester.All()))
	for _, code := range semester.All() {
		semesters = append(semesters, semesterDoc{Code: code, Label: code.Label()})
	}

	fetchGrade := endpointDoc{
		Method:      http.MethodPost,
		Description: "Fetch the CGPA and SGPA of a student",
		Body: map[string]string{
			"roll":     "Student roll number (required)",
			"semester": "Semester code (required)",
		},
		Example: map[string]any{
			"request": FetchGradeRequest{Roll: "20XX1A0XXX", Semester: string(semester.YearTwoSemTwo)},
			"response": GradeReport{
				StudentName:    "Student Name",
				CGPA:           "8.5",
				SGPAValue:      8.21,
				Screenshots:    []Screenshot{{Name: "20XX1A0XXX_II_II", Data: "..."}},
				ProcessingTime: "12.34s",
			},
		},
	}

	s.writeJSON(w, http.StatusOK, apiDocs{
		Status: "API is running",
		Endpoints: map[string]endpointDoc{
			"/": {
				Method:      http.MethodGet,
				Description: "API documentation",
			},
			"/health": {
				Method:      http.MethodGet,
				Description: "Health check with portal reachability",
			},
			"/fetch-grade":      fetchGrade,
			FetchGradeProcedure: fetchGrade,
		},
		Semesters: semesters,
		Frontend:  frontendURL,
	})
}

type healthResponse struct {
	Status    string             `json:"status"`
	Timestamp string             `json:"timestamp"`
	Portal    portal.ProbeResult `json:"portal"`
}

func (s Service) handleHealth(prober PortalProber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := prober.Probe(r.Context())
		status := "healthy"
		if !result.Reachable {
			status = "degraded"
		}
		s.writeJSON(w, http.StatusOK, healthResponse{
			Status:    status,
			Timestamp: s.time.Now().Format(time.RFC3339),
			Portal:    result,
		})
	}
}
