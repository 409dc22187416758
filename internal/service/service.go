package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gradefetch-backend/internal/components/assert"
	"gradefetch-backend/internal/components/chrono"
	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/portal"
	"gradefetch-backend/internal/semester"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	tracer = otel.Tracer("gradefetch/internal/service")
	meter  = otel.Meter("gradefetch/internal/service")
)

const (
	report_fetch_grade   = "service.fetch-grade"
	report_metric_create = "metric.create"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

// ErrInvalidRequest is returned for requests that are rejected before any
// browser session is opened.
var ErrInvalidRequest = errors.New("invalid request")

// GradeFetcher reads a semester's results off the portal.
//
// note: fault injection point
type GradeFetcher interface {
	Fetch(ctx context.Context, roll string, code semester.Code) (portal.Capture, error)
}

type FetchGradeRequest struct {
	Roll     string `json:"roll"`
	Semester string `json:"semester"`
}

type Screenshot struct {
	Name string `json:"name"`
	// Data is the base64 encoded png.
	Data string `json:"data"`
}

type GradeReport struct {
	StudentName    string       `json:"studentName"`
	CGPA           string       `json:"cgpa"`
	SGPAValue      float64      `json:"sgpaValue"`
	Screenshots    []Screenshot `json:"screenshots"`
	ProcessingTime string       `json:"processingTime"`
}

// Service validates grade requests and assembles the portal's results into
// a GradeReport.
type Service struct {
	fetcher GradeFetcher
	time    chrono.API
	tel     telemetry.API

	duration metric.Float64Histogram
	requests metric.Int64Counter
}

func NewService(fetcher GradeFetcher, time chrono.API, opts ...Option) Service {
	assert.NotNil(fetcher, "fetcher")
	assert.NotNil(time, "time")

	var options serviceOptions
	for _, o := range opts {
		o(&options)
	}
	if options.tel == nil {
		options.tel = telemetry.SlogAPI{}
	}
	tel := telemetry.NewScopedAPI("service", options.tel)

	var duration metric.Float64Histogram = noop.Float64Histogram{}
	histogram, err := meter.Float64Histogram(
		"fetch_grade.duration",
		metric.WithDescription("Time taken to fetch and assemble a grade report."),
		metric.WithUnit("s"),
	)
	if err != nil {
		tel.ReportBroken(report_metric_create, err, "fetch_grade.duration")
	} else {
		duration = histogram
	}

	var requests metric.Int64Counter = noop.Int64Counter{}
	counter, err := meter.Int64Counter(
		"fetch_grade.requests",
		metric.WithDescription("Grade requests by outcome."),
	)
	if err != nil {
		tel.ReportBroken(report_metric_create, err, "fetch_grade.requests")
	} else {
		requests = counter
	}

	return Service{
		fetcher:  fetcher,
		time:     time,
		tel:      tel,
		duration: duration,
		requests: requests,
	}
}

type serviceOptions struct {
	tel telemetry.API
}

type Option func(o *serviceOptions)

func WithCustomTelemetryAPI(tel telemetry.API) Option {
	return func(o *serviceOptions) {
		o.tel = tel
	}
}

// NormalizeRoll removes formatting inconsistencies from user input.
func NormalizeRoll(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}

// Validate checks a request without touching the portal.
func Validate(req FetchGradeRequest) (roll string, code semester.Code, err error) {
	roll = NormalizeRoll(req.Roll)
	if roll == "" {
		return "", "", fmt.Errorf("%w: roll number required", ErrInvalidRequest)
	}
	if req.Semester == "" {
		return "", "", fmt.Errorf("%w: semester selection required", ErrInvalidRequest)
	}
	code, err = semester.Parse(req.Semester)
	if err != nil {
		suggestion := semester.Suggest(req.Semester)
		if suggestion == "" {
			return "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return "", "", fmt.Errorf("%w: %w (did you mean %s?)", ErrInvalidRequest, err, suggestion)
	}
	return roll, code, nil
}

func (s Service) record(ctx context.Context, outcome string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.requests.Add(ctx, 1, attrs)
	if outcome != outcomeInvalid {
		s.duration.Record(ctx, seconds, attrs)
	}
}

// FetchGrade logs into the portal as req.Roll and returns the report of
// req.Semester. Invalid requests fail with ErrInvalidRequest before any
// browser session is opened.
func (s Service) FetchGrade(ctx context.Context, req FetchGradeRequest) (GradeReport, error) {
	ctx, span := tracer.Start(ctx, "FetchGrade")
	defer span.End()

	start := s.time.Now()

	roll, code, err := Validate(req)
	if err != nil {
		s.tel.ReportDebug("rejected request", req.Roll, req.Semester, err)
		s.record(ctx, outcomeInvalid, 0)
		return GradeReport{}, err
	}

	capture, err := s.fetcher.Fetch(ctx, roll, code)
	elapsed := s.time.Now().Sub(start)
	if err != nil {
		s.tel.ReportBroken(report_fetch_grade, err, roll, code.String())
		s.record(ctx, outcomeFailed, elapsed.Seconds())
		return GradeReport{}, err
	}
	s.record(ctx, outcomeOK, elapsed.Seconds())

	return GradeReport{
		StudentName: capture.StudentName,
		CGPA:        capture.CGPA,
		SGPAValue:   capture.SGPA,
		Screenshots: []Screenshot{{
			Name: fmt.Sprintf("%s_%s", roll, code),
			Data: base64.StdEncoding.EncodeToString(capture.Screenshot),
		}},
		ProcessingTime: fmt.Sprintf("%.2fs", elapsed.Seconds()),
	}, nil
}
