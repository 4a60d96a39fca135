package feed

// Config holds configuration for the merchant CSV feed.
type Config struct {
	// URL is the feed location. Required.
	URL string `mapstructure:"url" default:"" validate:"required,url"`
	// Delimiter is the field delimiter, fixed at configuration time.
	// Historically ';' (Shopware exports) or ','. Never auto-detected.
	Delimiter string `mapstructure:"delimiter" default:";"`
	// TimeoutSeconds is the fetch timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// DelimiterRune returns the configured delimiter as a rune, defaulting to ';'.
func (c Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ';'
	}
	return []rune(c.Delimiter)[0]
}
