package configs

import "time"

// Meta holds the registered OAuth application and the Graph API endpoints the
// proxy talks to. LoginBase serves the consent dialog; GraphBase serves the
// token exchange and the campaign reads. The bases are configurable so tests
// can point the client at a local server.
type Meta struct {
	// AppID and AppSecret identify the registered Meta application.
	AppID     string `env:"APP_ID"`
	AppSecret string `env:"APP_SECRET"`

	// RedirectURI is the callback registered with the provider.
	RedirectURI string `env:"REDIRECT_URI" envDefault:"http://localhost:8080/auth/callback"`

	// FrontendURL is where the browser lands after the flow completes.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	LoginBase  string `env:"LOGIN_BASE" envDefault:"https://www.facebook.com"`
	GraphBase  string `env:"GRAPH_BASE" envDefault:"https://graph.facebook.com"`
	APIVersion string `env:"API_VERSION" envDefault:"v24.0"`

	// DefaultAccountID is used when a campaigns request names no account.
	DefaultAccountID string `env:"ADVERTISER_ID"`

	// RequestTimeout bounds every upstream call; a call fails rather than
	// hang past it.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}
