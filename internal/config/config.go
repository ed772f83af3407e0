package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// EnvPrefix prefixes environment variables overriding configuration keys,
// e.g. CSGEN_ENVIRONMENT_SECRET for environment.secret
const EnvPrefix = "CSGEN"

// Config represents the application configuration
type Config struct {
	Environment EnvironmentConfig `mapstructure:"environment"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	Output      OutputConfig      `mapstructure:"output"`
}

// EnvironmentConfig describes the CloudStack management server metadata is fetched from
type EnvironmentConfig struct {
	Scheme  string        `mapstructure:"scheme" validate:"required,oneof=http https"`
	Host    string        `mapstructure:"host" validate:"required"`
	Port    int           `mapstructure:"port" validate:"gte=0,lte=65535"` // 0 means the scheme default
	Path    string        `mapstructure:"path" validate:"required"`
	Key     string        `mapstructure:"key"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// GenerationConfig holds code generation settings
type GenerationConfig struct {
	Language    string `mapstructure:"language" validate:"required"`
	Namespace   string `mapstructure:"namespace"`
	TemplateDir string `mapstructure:"template_dir"` // Optional directory overriding embedded templates
	Workers     int    `mapstructure:"workers" validate:"gte=1,lte=64"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir" validate:"required"`
	FileName string   `mapstructure:"file_name" validate:"required"` // Base name of documentation artifacts
	Formats  []string `mapstructure:"formats" validate:"min=1,dive,required"`
}

var validate = validator.New()

// Load reads the configuration from a file, falling back to defaults when the
// file does not exist. Environment variables prefixed with CSGEN_ override both.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.scheme", "http")
	v.SetDefault("environment.host", "localhost")
	v.SetDefault("environment.port", 8080)
	v.SetDefault("environment.path", "/client/api")
	v.SetDefault("environment.key", "")
	v.SetDefault("environment.secret", "")
	v.SetDefault("environment.timeout", 30*time.Second)

	v.SetDefault("generation.language", "php")
	v.SetDefault("generation.namespace", `MyENA\CloudStackClientGenerator`)
	v.SetDefault("generation.template_dir", "")
	v.SetDefault("generation.workers", 4)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "cloudstack-api")
	v.SetDefault("output.formats", []string{"php"})
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	if c.Generation.TemplateDir != "" {
		absTemplates, err := filepath.Abs(c.Generation.TemplateDir)
		if err != nil {
			return fmt.Errorf("failed to resolve generation.template_dir: %w", err)
		}
		c.Generation.TemplateDir = absTemplates
	}

	return nil
}

// Validate checks the configuration against its struct constraints.
// The first violation is reported as a ConfigurationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		first := violations[0]
		return &model.ConfigurationError{
			Setting: settingName(first.Namespace()),
			Value:   fmt.Sprintf("%v", first.Value()),
			Reason:  "failed constraint " + strings.TrimSpace(first.Tag()+" "+first.Param()),
		}
	}
	return &model.ConfigurationError{Setting: "config", Reason: err.Error()}
}

// ValidateRemote checks the settings needed to call the management server
func (c *Config) ValidateRemote() error {
	if c.Environment.Key == "" {
		return &model.ConfigurationError{Setting: "environment.key", Reason: "api key is required to fetch metadata"}
	}
	if c.Environment.Secret == "" {
		return &model.ConfigurationError{Setting: "environment.secret", Reason: "secret key is required to fetch metadata"}
	}
	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// BaseURL returns the API endpoint of the configured management server
func (c *Config) BaseURL() string {
	host := c.Environment.Host
	if c.Environment.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(c.Environment.Port))
	}
	path := "/" + strings.TrimLeft(c.Environment.Path, "/")
	return c.Environment.Scheme + "://" + host + path
}

// GetOutputPath returns the path of a documentation artifact with the given extension
func (c *Config) GetOutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// LogPath returns the location of the run log
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "cloudstack-gen.log")
}

// Print displays the current configuration. Secrets are masked.
func (c *Config) Print() {
	fmt.Println("=== Generator Configuration ===")
	fmt.Printf("Endpoint:         %s\n", c.BaseURL())
	fmt.Printf("API Key:          %s\n", mask(c.Environment.Key))
	fmt.Printf("Language:         %s\n", c.Generation.Language)
	fmt.Printf("Namespace:        %s\n", c.Generation.Namespace)
	fmt.Printf("Template Dir:     %s\n", c.Generation.TemplateDir)
	fmt.Printf("Workers:          %d\n", c.Generation.Workers)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Formats:          %v\n", c.Output.Formats)
	fmt.Println("===============================")
}

// settingName turns a validator namespace ("Config.Environment.Scheme") into a config key
func settingName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
