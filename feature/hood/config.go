package hood

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// DefaultEndpoint is the production marketplace API endpoint.
const DefaultEndpoint = "https://www.hood.de/api.htm"

// Config holds configuration for the marketplace account and endpoint.
type Config struct {
	// AccountName is the marketplace account. Required.
	AccountName string `mapstructure:"account_name" default:"" validate:"required"`
	// Password is the plaintext account password, digested before use.
	// Either Password or PasswordMD5 must be set.
	Password string `mapstructure:"password" default:"" validate:"required_without=PasswordMD5"`
	// PasswordMD5 is the pre-hashed password. Overrides Password when set.
	PasswordMD5 string `mapstructure:"password_md5" default:""`
	// Endpoint is the marketplace API URL.
	Endpoint string `mapstructure:"endpoint" default:"https://www.hood.de/api.htm" validate:"required,url"`
	// TimeoutSeconds is the per-call timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// AccountPass returns the digested password the marketplace expects:
// one MD5 round over the UTF-8 plaintext, lower-case hex. This is the
// marketplace's authentication contract, not a design choice. A pre-hashed
// configuration value is passed through unchanged.
func (c Config) AccountPass() string {
	if c.PasswordMD5 != "" {
		return strings.ToLower(strings.TrimSpace(c.PasswordMD5))
	}
	sum := md5.Sum([]byte(c.Password))
	return hex.EncodeToString(sum[:])
}
