// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/moov-io/base/http/bind"

	"github.com/bankfeed-io/bankfeed/internal/util"

	"github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	GoCardless GoCardless
	Pipeline   Pipeline
}

type Logging struct {
	Format string
	Level  string
}

type HTTP struct {
	BindAddress string `mapstructure:"bind_address"`
}

type Admin struct {
	BindAddress string `mapstructure:"bind_address"`
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: bind.Admin("bankfeed"),
		},
		Http: HTTP{
			BindAddress: bind.HTTP("bankfeed"),
		},
	}
}

func FromFile(path string) (*Config, error) {
	cfg := Empty()
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads path (when set) and applies the command line log format
// override.
func LoadConfig(path string, logFormat *string) (*Config, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return nil, err
	}
	if logFormat != nil && *logFormat != "" {
		cfg.Logging.Format = *logFormat
		cfg = setupLogger(cfg)
	}
	return cfg, nil
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := cfg.GoCardless.Validate(); err != nil {
		return fmt.Errorf("gocardless: %v", err)
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %v", err)
	}

	return nil
}

type GoCardless struct {
	Endpoint  string
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
}

// ID returns the secret ID used to mint access tokens. The environment
// overrides file based config so deployments can avoid writing credentials
// to disk.
func (cfg GoCardless) ID() string {
	return util.Or(os.Getenv("GOCARDLESS_SECRET_ID"), cfg.SecretID)
}

func (cfg GoCardless) Key() string {
	return util.Or(os.Getenv("GOCARDLESS_SECRET_KEY"), cfg.SecretKey)
}

func (cfg GoCardless) Validate() error {
	id, key := cfg.ID(), cfg.Key()
	if (id == "") != (key == "") {
		return errors.New("partial credentials: set both secret_id and secret_key")
	}
	return nil
}
