package session

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/wanmail/sauce-selenium/sauce"
)

// EnvPrefix is the prefix of every environment variable read by this package.
const EnvPrefix = "sauce"

// Config is the environment configuration:
//
//	SAUCE_USERNAME, SAUCE_ACCESS_KEY  account credentials (required)
//	SAUCE_REGION                      data center, default us-west-1
//	SAUCE_BUILD                       build name attached to every job
//	SAUCE_TUNNEL_NAME                 Sauce Connect tunnel to route through
type Config struct {
	Username   string `envconfig:"USERNAME"`
	AccessKey  string `envconfig:"ACCESS_KEY"`
	Region     string `envconfig:"REGION"`
	Build      string `envconfig:"BUILD"`
	TunnelName string `envconfig:"TUNNEL_NAME"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	var c Config
	err := envconfig.Process(EnvPrefix, &c)
	return c, err
}

// CredentialsProvider supplies account credentials at session-setup time.
type CredentialsProvider interface {
	Credentials() (sauce.Credentials, error)
}

// EnvCredentials reads SAUCE_USERNAME and SAUCE_ACCESS_KEY each time
// credentials are requested.
type EnvCredentials struct{}

// Credentials implements CredentialsProvider.
func (EnvCredentials) Credentials() (sauce.Credentials, error) {
	c, err := LoadConfig()
	if err != nil {
		return sauce.Credentials{}, err
	}
	return sauce.Credentials{Username: c.Username, AccessKey: c.AccessKey}, nil
}

// StaticCredentials is a fixed CredentialsProvider.
type StaticCredentials sauce.Credentials

// Credentials implements CredentialsProvider.
func (s StaticCredentials) Credentials() (sauce.Credentials, error) {
	return sauce.Credentials(s), nil
}

// NewNegotiatorFromEnv builds a Negotiator from Config. Credentials are not
// read here but on every Open.
func NewNegotiatorFromEnv() (*Negotiator, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, &ConfigurationError{Field: "environment", Err: err}
	}
	region, err := sauce.ParseRegion(c.Region)
	if err != nil {
		return nil, &ConfigurationError{Field: "SAUCE_REGION", Err: err}
	}
	return &Negotiator{
		Credentials: EnvCredentials{},
		Region:      region,
		Options: sauce.Options{
			Build:      c.Build,
			TunnelName: c.TunnelName,
		},
	}, nil
}
