// Copyright (C) 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the shim's YAML configuration file.
//
// The file is looked up, in order, at the path given explicitly, at the path
// in the OVRXR_CONFIG environment variable and as ovrxr.yaml beside the
// running executable. A missing file yields the defaults.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/shim/hack"
	"gopkg.in/yaml.v3"
)

const (
	// EnvVar names the environment variable holding the configuration path.
	EnvVar = "OVRXR_CONFIG"
	// FileName is the configuration file looked for beside the executable.
	FileName = "ovrxr.yaml"
)

// Log configures logging.
type Log struct {
	Severity log.Severity `yaml:"severity"`
	Style    log.Style    `yaml:"style"`
}

// Config is the shim configuration.
type Config struct {
	Log Log `yaml:"log"`
	// ReadyTimeout bounds the wait for a probe session to become ready.
	// Zero waits indefinitely.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
	// Hacks override the builtin hack table.
	Hacks []hack.Record `yaml:"hacks"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Log: Log{Severity: log.Info, Style: log.Normal}}
}

// Parse decodes a configuration file over the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), err
	}
	for _, r := range c.Hacks {
		if err := r.Validate(); err != nil {
			return Default(), err
		}
	}
	return c, nil
}

// Load finds and reads the configuration. An explicit path that does not
// exist is an error. A missing implicit file yields the defaults.
func Load(ctx context.Context, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvVar)
		explicit = path != ""
	}
	if !explicit {
		exe, err := os.Executable()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(filepath.Dir(exe), FileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		log.D(ctx, "No configuration at %s", path)
		return Default(), nil
	case err != nil:
		return Default(), log.Errf(ctx, err, "Reading configuration")
	}
	c, err := Parse(data)
	if err != nil {
		return Default(), log.Errf(ctx, err, "Parsing %s", path)
	}
	c.Path = path
	return c, nil
}

// Bind returns ctx with logging configured to write to w.
func (c Config) Bind(ctx context.Context, w log.Writer) context.Context {
	ctx = log.PutMinSeverity(ctx, c.Log.Severity)
	return log.PutHandler(ctx, c.Log.Style.Handler(w))
}
