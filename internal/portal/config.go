package portal

const DefaultLoginURL = "https://www.tkrcetautonomous.org/Login.aspx"

type Config struct {
	LoginURL string `json:"login_url"`
	// Headless defaults to true when unset.
	Headless *bool `json:"headless"`
	// NoSandbox defaults to true when unset, chrome's sandbox does not
	// work inside most containers.
	NoSandbox *bool `json:"no_sandbox"`
	// Bin is the path to the chrome binary, rod looks one up (or downloads
	// one) when empty.
	Bin string `json:"bin"`
	// ControlURL attaches to an already running chrome instead of
	// launching one per session.
	ControlURL string `json:"control_url"`
}

func (c Config) GetLoginURL() string {
	if c.LoginURL == "" {
		return DefaultLoginURL
	}
	return c.LoginURL
}

func (c Config) IsHeadless() bool {
	if c.Headless == nil {
		return true
	}
	return *c.Headless
}

func (c Config) IsNoSandbox() bool {
	if c.NoSandbox == nil {
		return true
	}
	return *c.NoSandbox
}
