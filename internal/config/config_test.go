// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"strings"
	"testing"
)

func TestReadConfig(t *testing.T) {
	conf := []byte(`logging:
  format: json
gocardless:
  endpoint: "https://bankaccountdata.gocardless.com"
  secret_id: "id"
  secret_key: "key"
pipeline:
  stream:
    inmem:
      url: "mem://bankfeed"
`)
	cfg, err := Read(conf)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}

	if cfg == nil {
		t.Fatal("nil Config")
	}
	if cfg.Logger == nil {
		t.Fatal("nil Logger")
	}

	if cfg.GoCardless.Endpoint != "https://bankaccountdata.gocardless.com" {
		t.Errorf("gocardless endpoint: %q", cfg.GoCardless.Endpoint)
	}
	if cfg.GoCardless.ID() != "id" || cfg.GoCardless.Key() != "key" {
		t.Errorf("gocardless credentials: %#v", cfg.GoCardless)
	}

	if cfg.Pipeline.Stream.InMem.URL != "mem://bankfeed" {
		t.Errorf("missing pipeline stream config: %#v", cfg.Pipeline.Stream)
	}
}

func TestConfig__empty(t *testing.T) {
	cfg := Empty()
	if cfg.Http.BindAddress == "" || cfg.Admin.BindAddress == "" {
		t.Errorf("bind addresses: %#v %#v", cfg.Http, cfg.Admin)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestConfig__invalid(t *testing.T) {
	conf := []byte(`gocardless:
  secret_id: "id"
`)
	if _, err := Read(conf); err == nil {
		t.Error("expected error")
	} else if !strings.Contains(err.Error(), "partial credentials") {
		t.Errorf("got %v", err)
	}

	conf = []byte(`pipeline:
  stream:
    kafka:
      group: "bankfeed"
`)
	if _, err := Read(conf); err == nil {
		t.Error("expected error")
	}
}

func TestGoCardless__env(t *testing.T) {
	os.Setenv("GOCARDLESS_SECRET_ID", "env-id")
	os.Setenv("GOCARDLESS_SECRET_KEY", "env-key")
	defer os.Unsetenv("GOCARDLESS_SECRET_ID")
	defer os.Unsetenv("GOCARDLESS_SECRET_KEY")

	cfg := GoCardless{SecretID: "file-id", SecretKey: "file-key"}
	if v := cfg.ID(); v != "env-id" {
		t.Errorf("got %s", v)
	}
	if v := cfg.Key(); v != "env-key" {
		t.Errorf("got %s", v)
	}
}
