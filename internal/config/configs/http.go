package configs

// HTTP configures the listening server.
type HTTP struct {
	// Port is the TCP port the server binds to.
	Port uint16 `env:"PORT" envDefault:"8080"`

	// SecureCookies marks session cookies as Secure. Enable whenever the
	// service is reached over HTTPS.
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"false"`
}
