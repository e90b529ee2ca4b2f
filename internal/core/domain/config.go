package domain

// Config holds the connection settings for one invocation.
// It is built once at start-up and passed into every service constructor.
type Config struct {
	// URL is the base URL of the Paperless server.
	URL string `validate:"required,url"`

	// AuthToken is the API token sent with every request.
	AuthToken string `validate:"required"`
}

// Config keys used by the config store.
const (
	ConfigKeyURL  = "url"
	ConfigKeyAuth = "auth"
)
