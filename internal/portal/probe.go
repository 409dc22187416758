package portal

import (
	"context"
	"net/http"
	"time"

	"gradefetch-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// ProbeResult is the reachability of the portal's login page.
type ProbeResult struct {
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code"`
	Latency    string `json:"latency"`
}

// Prober checks whether the portal is up without opening a browser.
type Prober struct {
	client *resty.Client
	url    string
}

func NewProber(cfg Config, tel telemetry.API) Prober {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}

	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("user-agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, telemetry.NewScopedAPI("portal_probe", tel))

	return Prober{client: client, url: cfg.GetLoginURL()}
}

// Probe requests the login page once, any response below 500 counts as
// reachable.
func (p Prober) Probe(ctx context.Context) ProbeResult {
	start := time.Now()
	res, err := p.client.R().SetContext(ctx).Get(p.url)
	latency := time.Since(start).Round(time.Millisecond).String()
	if err != nil {
		return ProbeResult{Latency: latency}
	}
	return ProbeResult{
		Reachable:  res.StatusCode() < http.StatusInternalServerError,
		StatusCode: res.StatusCode(),
		Latency:    latency,
	}
}
