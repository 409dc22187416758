package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gradefetch-backend/internal/components/assert"
	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/grades"
	"gradefetch-backend/internal/semester"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("gradefetch/internal/portal")

const (
	report_navigator_fetch    = "navigator.fetch"
	report_navigator_teardown = "navigator.teardown"
	report_navigator_extract  = "navigator.extract"
)

// selectors and link texts of the TKRCET student corner.
const (
	linkLogins        = "Logins"
	linkStudentLogin  = "Student Login"
	linkMarksDetails  = "Marks Details"
	linkOverallMarks  = "Overall Marks - Semwise"
	selectorUserID    = "#txtUserId"
	selectorPassword  = "#txtPwd"
	selectorLogin     = "#btnLogin"
	selectorStudent   = "#lblStudName"
	selectorFinalCGPA = "#cpStudCorner_lblFinalCGPA"
)

// Capture is everything read off the results page of one semester.
type Capture struct {
	StudentName string
	CGPA        string
	Screenshot  []byte
	Grades      grades.Extraction
	SGPA        float64
}

// Navigator drives a browser session through the portal's login and menus
// up to a semester's results page.
type Navigator struct {
	browser  Browser
	loginURL string
	tel      telemetry.API
}

func NewNavigator(browser Browser, cfg Config, opts ...NavigatorOption) Navigator {
	assert.NotNil(browser, "browser")

	var options navigatorOptions
	for _, o := range opts {
		o(&options)
	}
	if options.tel == nil {
		options.tel = telemetry.SlogAPI{}
	}

	return Navigator{
		browser:  browser,
		loginURL: cfg.GetLoginURL(),
		tel:      telemetry.NewScopedAPI("portal", options.tel),
	}
}

type navigatorOptions struct {
	tel telemetry.API
}

type NavigatorOption func(o *navigatorOptions)

func WithCustomTelemetryAPI(tel telemetry.API) NavigatorOption {
	return func(o *navigatorOptions) {
		o.tel = tel
	}
}

type step struct {
	name string
	run  func(ctx context.Context, session Session) error
}

// run executes every step in order, stopping at the first failure.
func run(ctx context.Context, session Session, steps []step) error {
	for _, s := range steps {
		stepCtx, span := tracer.Start(ctx, s.name)
		err := s.run(stepCtx, session)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return fmt.Errorf("portal: %s: %w", s.name, err)
		}
		span.End()
	}
	return nil
}

// Fetch logs into the portal with roll as both user id and password, opens
// the results of the given semester and captures them. The session is closed
// on every return path.
func (n Navigator) Fetch(ctx context.Context, roll string, code semester.Code) (capture Capture, err error) {
	sessionID := uuid.NewString()
	ctx, span := tracer.Start(
		ctx, "Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("session_id", sessionID),
			attribute.String("semester", code.String()),
		),
	)
	defer span.End()
	start := time.Now()

	var session Session
	defer func() {
		if session != nil {
			closeErr := session.Close()
			if closeErr != nil {
				n.tel.ReportWarning(report_navigator_teardown, errors.Join(err, closeErr), sessionID)
			}
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			n.tel.ReportBroken(report_navigator_fetch, err, sessionID, roll, code.String())
			return
		}
		n.tel.ReportDebug("fetch complete", sessionID, roll, code.String(), time.Since(start))
	}()

	err = run(ctx, nil, []step{
		{
			name: "Init",
			run: func(ctx context.Context, _ Session) error {
				var err error
				session, err = n.browser.Open(ctx)
				return err
			},
		},
	})
	if err != nil {
		return Capture{}, err
	}

	var html string
	err = run(ctx, session, []step{
		{
			name: "BlockFonts",
			run: func(ctx context.Context, s Session) error {
				return s.Block(ctx, ResourceFont)
			},
		},
		{
			name: "Navigate",
			run: func(ctx context.Context, s Session) error {
				return s.Navigate(ctx, n.loginURL)
			},
		},
		{
			name: "Authenticate",
			run: func(ctx context.Context, s Session) error {
				return doAll(
					func() error { return s.ClickText(ctx, "a", linkLogins) },
					func() error { return s.ClickText(ctx, "a", linkStudentLogin) },
					func() error { return s.Fill(ctx, selectorUserID, roll) },
					func() error { return s.Fill(ctx, selectorPassword, roll) },
					func() error { return s.Click(ctx, selectorLogin) },
				)
			},
		},
		{
			name: "AwaitLogin",
			run: func(ctx context.Context, s Session) error {
				return s.WaitFor(ctx, selectorStudent)
			},
		},
		{
			name: "NavigateToMarks",
			run: func(ctx context.Context, s Session) error {
				return doAll(
					func() error { return s.ClickText(ctx, "a", linkMarksDetails) },
					func() error { return s.ClickText(ctx, "a", linkOverallMarks) },
				)
			},
		},
		{
			name: "SelectSemester",
			run: func(ctx context.Context, s Session) error {
				return s.Click(ctx, code.Selector())
			},
		},
		{
			name: "AwaitResults",
			run: func(ctx context.Context, s Session) error {
				return s.WaitFor(ctx, selectorFinalCGPA)
			},
		},
		{
			name: "Capture",
			run: func(ctx context.Context, s Session) error {
				var err error
				capture.StudentName, err = s.Text(ctx, selectorStudent)
				if err != nil {
					return fmt.Errorf("student name: %w", err)
				}
				capture.CGPA, err = s.Text(ctx, selectorFinalCGPA)
				if err != nil {
					return fmt.Errorf("cgpa: %w", err)
				}
				capture.Screenshot, err = s.Screenshot(ctx, true)
				if err != nil {
					return fmt.Errorf("screenshot: %w", err)
				}
				html, err = s.HTML(ctx)
				if err != nil {
					return fmt.Errorf("page html: %w", err)
				}
				return nil
			},
		},
	})
	if err != nil {
		return Capture{}, err
	}

	capture.Grades, err = grades.ExtractReader(strings.NewReader(html))
	if err != nil {
		return Capture{}, fmt.Errorf("portal: Extract: %w", err)
	}
	if !capture.Grades.Found() {
		n.tel.ReportWarning(report_navigator_extract, capture.Grades.NotFound, sessionID, roll, code.String())
	}
	capture.SGPA = grades.SGPA(capture.Grades)

	span.SetAttributes(
		attribute.Int("grades.rows", capture.Grades.Count()),
		attribute.Bool("grades.fallback_layout", capture.Grades.Layout.Fallback),
	)
	return capture, nil
}

func doAll(actions ...func() error) error {
	for _, action := range actions {
		err := action()
		if err != nil {
			return err
		}
	}
	return nil
}
