package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/bbenesh/Snippets/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	BasePath string         `yaml:"basePath" validate:"omitempty,startswith=/"`
	Database DatabaseConfig `yaml:"database"`
	Roles    RolesConfig    `yaml:"roles"`
	Links    LinksConfig    `yaml:"links"`
	Members  MembersConfig  `yaml:"members"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,eq=postgres"`
	Source string `yaml:"source" validate:"required"`
}

// RoleConfig names a group role by the bundle it is scoped to
type RoleConfig struct {
	Bundle string `yaml:"bundle" validate:"required"`
	Name   string `yaml:"name" validate:"required"`
}

type RolesConfig struct {
	Teacher RoleConfig `yaml:"teacher"`
}

// LinksConfig controls the delete-membership link lookup
type LinksConfig struct {
	ContestMatch string `yaml:"contestMatch" validate:"omitempty,oneof=exact legacy"`
}

// MembersConfig sets defaults for member lookups
type MembersConfig struct {
	Order string `yaml:"order" validate:"omitempty,oneof=none gid"`
}

// ContestMatch returns the configured contest match mode.
func (c *Config) ContestMatch() models.ContestMatch {
	m, _ := models.ParseContestMatch(c.Links.ContestMatch)
	return m
}

// MembersOrder returns the configured default order of member lookups.
func (c *Config) MembersOrder() models.Order {
	o, _ := models.ParseOrder(c.Members.Order)
	return o
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	config := Default()
	if err := yaml.Unmarshal(buf.Bytes(), config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	if err := config.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return nil, err
	}

	return config, nil
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Host:     "localhost",
		BasePath: "/api",
		Database: DatabaseConfig{Driver: "postgres"},
		Roles: RolesConfig{
			Teacher: RoleConfig{Bundle: "school", Name: "teacher"},
		},
		Links:   LinksConfig{ContestMatch: "exact"},
		Members: MembersConfig{Order: "none"},
	}
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
