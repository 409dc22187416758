package portal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gradefetch-backend/internal/components/telemetry"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

const report_rod_hijack = "rod.hijack"

// RodBrowser implements Browser with a chrome instance driven over the
// devtools protocol.
type RodBrowser struct {
	cfg Config
	tel telemetry.API
}

func NewRodBrowser(cfg Config, tel telemetry.API) RodBrowser {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return RodBrowser{
		cfg: cfg,
		tel: telemetry.NewScopedAPI("rod", tel),
	}
}

func (b RodBrowser) launcher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(b.cfg.IsHeadless()).
		NoSandbox(b.cfg.IsNoSandbox()).
		Set(flags.Flag("disable-dev-shm-usage")).
		Set(flags.Flag("disable-gpu"))
	if b.cfg.Bin != "" {
		l = l.Bin(b.cfg.Bin)
	}
	return l
}

// Open launches a new chrome process (or attaches to the configured one) and
// opens a page inside a fresh incognito context.
func (b RodBrowser) Open(ctx context.Context) (Session, error) {
	// the session outlives cancellation of ctx so that teardown can still
	// talk to chrome.
	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	session := &rodSession{cancel: cancel, tel: b.tel}

	controlURL := b.cfg.ControlURL
	if controlURL == "" {
		session.launcher = b.launcher(sessionCtx)
		u, err := session.launcher.Launch()
		if err != nil {
			session.release()
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(sessionCtx)
	err := browser.Connect()
	if err != nil {
		session.release()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	session.browser = browser

	incognito, err := browser.Incognito()
	if err != nil {
		session.release()
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	session.incognito = incognito

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		session.release()
		return nil, fmt.Errorf("create page: %w", err)
	}
	session.page = page

	return session, nil
}

type rodSession struct {
	tel       telemetry.API
	cancel    context.CancelFunc
	launcher  *launcher.Launcher
	browser   *rod.Browser
	incognito *rod.Browser
	page      *rod.Page
	router    *rod.HijackRouter
}

func (s *rodSession) Block(ctx context.Context, types ...ResourceType) error {
	router := s.page.HijackRequests()
	for _, t := range types {
		err := router.Add("*", proto.NetworkResourceType(t), func(h *rod.Hijack) {
			s.tel.ReportDebug(report_rod_hijack, "blocked", h.Request.URL().String())
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		})
		if err != nil {
			_ = router.Stop()
			return fmt.Errorf("block %s: %w", t, err)
		}
	}
	go router.Run()
	s.router = router
	return nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	err := page.Navigate(url)
	if err != nil {
		return err
	}
	return page.WaitLoad()
}

func (s *rodSession) ClickText(ctx context.Context, tag, text string) error {
	el, err := s.page.Context(ctx).ElementR(tag, regexp.QuoteMeta(text))
	if err != nil {
		return fmt.Errorf("find %s %q: %w", tag, text, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *rodSession) Click(ctx context.Context, selector string) error {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *rodSession) Fill(ctx context.Context, selector, value string) error {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	err = el.SelectAllText()
	if err != nil {
		return err
	}
	return el.Input(value)
}

func (s *rodSession) WaitFor(ctx context.Context, selector string) error {
	_, err := s.page.Context(ctx).Element(selector)
	return err
}

func (s *rodSession) Text(ctx context.Context, selector string) (string, error) {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", selector, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *rodSession) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	return s.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

func (s *rodSession) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

func (s *rodSession) Close() error {
	return s.release()
}

// release tears down whatever part of the session has been created so far.
func (s *rodSession) release() error {
	defer s.cancel()

	var errs []error
	if s.router != nil {
		err := s.router.Stop()
		if err != nil {
			errs = append(errs, fmt.Errorf("stop hijack router: %w", err))
		}
	}
	if s.incognito != nil {
		err := s.incognito.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close incognito context: %w", err))
		}
	}
	if s.launcher != nil {
		if s.browser != nil {
			err := s.browser.Close()
			if err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	return errors.Join(errs...)
}
