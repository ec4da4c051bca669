// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the window hellowin opens.
type Config struct {
	Class  string `yaml:"class"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Position is the top-left corner. Nil lets the system choose.
	Position *Position `yaml:"position"`

	// Initial is the value attached to the window.
	Initial int `yaml:"initial"`

	Debug    bool `yaml:"debug"`
	Simulate bool `yaml:"simulate"`
}

type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func defaultConfig() Config {
	return Config{
		Class:   "Test Window",
		Title:   "Test Window",
		Initial: 5,
	}
}

// loadConfig reads path over the defaults. Unknown fields are errors.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := decodeStrictYAML(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Class) == "" {
		return &ValidationError{Path: "class", Err: fmt.Errorf("class is required")}
	}
	if strings.ContainsRune(c.Class, 0) {
		return &ValidationError{Path: "class", Err: fmt.Errorf("class must not contain NUL")}
	}
	if strings.ContainsRune(c.Title, 0) {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title must not contain NUL")}
	}
	if (c.Width == 0) != (c.Height == 0) {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width and height must be set together")}
	}
	if c.Width < 0 || c.Height < 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("size must not be negative")}
	}
	return nil
}
