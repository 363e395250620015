package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Calendar       CalendarConfig `toml:"calendar"`
	Google         GoogleConfig   `toml:"google"`
	CalDAV         CalDAVConfig   `toml:"caldav"`
	OpenAI         OpenAIConfig   `toml:"openai"`
	VerbosityLevel int            `toml:"verbosity_level"`
}

type CalendarConfig struct {
	// Provider selects the backend: "google" (default) or "caldav".
	Provider string `toml:"provider"`
	// ID is the Google calendar ID ("primary" works for the main calendar)
	// or, for CalDAV, the full URL of the calendar collection.
	ID string `toml:"id"`
	// UTCOffset is applied to every timestamp read from or written to the
	// calendar, and to the reference time handed to the classifier.
	UTCOffset string `toml:"utc_offset"`
}

type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

type CalDAVConfig struct {
	ServerURL string `toml:"server_url"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

type OpenAIConfig struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

var configDir string
var verbosityLevel int

func readConfig(filename string) (*Config, error) {
	// Try first current dir, then `$HOME/.config/gcalagent/`
	data, err := os.ReadFile(filename)
	if err != nil {
		data, err = os.ReadFile(os.Getenv("HOME") + "/.config/gcalagent/" + filename)
		if err != nil {
			return nil, err
		}
		configDir = os.Getenv("HOME") + "/.config/gcalagent/"
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	verbosityLevel = config.VerbosityLevel

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Calendar.Provider == "" {
		c.Calendar.Provider = "google"
	}
	if c.Calendar.ID == "" && c.Calendar.Provider == "google" {
		c.Calendar.ID = "primary"
	}
	if c.Calendar.UTCOffset == "" {
		c.Calendar.UTCOffset = "-03:00"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.2
	}
}

// Validate fails fast on any missing required value, before any network
// call is attempted.
func (c *Config) Validate() error {
	switch c.Calendar.Provider {
	case "google":
		if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
			return fmt.Errorf("google.client_id and google.client_secret are required")
		}
	case "caldav":
		if c.CalDAV.ServerURL == "" {
			return fmt.Errorf("caldav.server_url is required")
		}
		if c.Calendar.ID == "" {
			return fmt.Errorf("calendar.id (calendar collection URL) is required for caldav")
		}
	default:
		return fmt.Errorf("unsupported calendar provider: %s (must be 'google' or 'caldav')", c.Calendar.Provider)
	}
	if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
		return fmt.Errorf("openai.api_key is required (or openai.base_url for a local provider)")
	}
	if _, err := parseUTCOffset(c.Calendar.UTCOffset); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured fixed UTC offset.
func (c *Config) Location() (*time.Location, error) {
	return parseUTCOffset(c.Calendar.UTCOffset)
}

// parseUTCOffset turns "±HH:MM" into a fixed-zone location.
func parseUTCOffset(offset string) (*time.Location, error) {
	s := strings.TrimSpace(offset)
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("invalid utc_offset %q (expected ±HH:MM)", offset)
	}
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid utc_offset %q (expected ±HH:MM)", offset)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil || hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid utc_offset %q (expected ±HH:MM)", offset)
	}
	seconds := hours*3600 + minutes*60
	if s[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+s, seconds), nil
}

func printVerbosely(verbosity int, format string, a ...interface{}) {
	// Print only if verbosity is higher than verbosityLevel
	// 0 - nothing beyond results and errors
	// 1 - report each resolved intent
	// 2 - report provider calls
	// 3 - report everything, including raw classifier output
	if verbosity <= verbosityLevel {
		fmt.Printf(format, a...)
	}
}
