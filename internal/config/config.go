package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Match      MatchConfig      `yaml:"match" mapstructure:"match"`
	Conversion ConversionConfig `yaml:"conversion" mapstructure:"conversion"`
	Zoom       ZoomConfig       `yaml:"zoom" mapstructure:"zoom"`
	Rules      RulesConfig      `yaml:"rules" mapstructure:"rules"`
	Claims     ClaimsConfig     `yaml:"claims" mapstructure:"claims"`
	Fonts      FontConfig       `yaml:"fonts" mapstructure:"fonts"`
	Score      ScoreConfig      `yaml:"score" mapstructure:"score"`
	Extract    ExtractConfig    `yaml:"extract" mapstructure:"extract"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// MatchConfig holds fuzzy-match thresholds.
type MatchConfig struct {
	NearThreshold float64 `yaml:"near_threshold" mapstructure:"near_threshold"`
}

// ConversionConfig holds the unit-conversion tolerance.
type ConversionConfig struct {
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"`
}

// ZoomConfig holds the visual-verification trigger rules.
type ZoomConfig struct {
	FontSizeThresholdPt float64  `yaml:"font_size_threshold_pt" mapstructure:"font_size_threshold_pt"`
	NegationWords       []string `yaml:"negation_words" mapstructure:"negation_words"`
}

// RulesConfig holds the capitalization rule tables.
type RulesConfig struct {
	Acronyms        []string `yaml:"acronyms" mapstructure:"acronyms"`
	INCIConnectors  []string `yaml:"inci_connectors" mapstructure:"inci_connectors"`
	UppercaseExempt []string `yaml:"uppercase_exempt" mapstructure:"uppercase_exempt"`
}

// ClaimsConfig configures claim risk assessment.
type ClaimsConfig struct {
	LexiconPath      string   `yaml:"lexicon_path" mapstructure:"lexicon_path"`
	RegulatedRegions []string `yaml:"regulated_regions" mapstructure:"regulated_regions"`
}

// FontConfig holds region-specific minimum font sizes in points.
type FontConfig struct {
	RegionMinimaPt map[string]float64 `yaml:"region_minima_pt" mapstructure:"region_minima_pt"`
}

// ScoreConfig configures score aggregation.
type ScoreConfig struct {
	TopFixesDisplay int `yaml:"top_fixes_display" mapstructure:"top_fixes_display"`
}

// ExtractConfig configures artwork text extraction.
type ExtractConfig struct {
	// Backend selects the extraction backend: auto, direct, or vision.
	// auto probes the PDF text layer and falls back to vision.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// MinTextRuns is the minimum number of usable text runs for the
	// direct backend to be considered viable in auto mode.
	MinTextRuns int `yaml:"min_text_runs" mapstructure:"min_text_runs"`
}

// AnthropicConfig holds Anthropic API settings for vision verification.
type AnthropicConfig struct {
	Key               string `yaml:"key" mapstructure:"key"`
	Model             string `yaml:"model" mapstructure:"model"`
	MaxTokens         int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	MaxAttempts       int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ARTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "artcheck.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("match.near_threshold", 95.0)
	v.SetDefault("conversion.tolerance", 0.10)

	v.SetDefault("zoom.font_size_threshold_pt", 6.5)
	v.SetDefault("zoom.negation_words", []string{
		"no", "not", "free", "only", "without", "never", "none", "zero",
		"moins", "sans", "non", "aucun",
	})

	v.SetDefault("rules.acronyms", []string{
		"ML", "FL", "OZ", "USA", "EU", "UK", "GB", "BE", "CA",
		"AHA", "BHA", "LHA", "PHA", "NP", "SPF", "UV", "UVA", "UVB",
		"PEG", "PPG", "EDTA", "BHT",
		"LLC", "INC", "CO", "LTD",
	})
	v.SetDefault("rules.inci_connectors", []string{
		"de", "du", "des", "la", "le", "les", "d'", "l'",
		"of", "the", "and", "with",
		"et", "cum",
	})
	v.SetDefault("rules.uppercase_exempt", []string{
		"Address Block",
		"Biorius Address",
		"Formula Country of Origin",
		"Formula Country",
		"Ingredient List",
		"Fill Weight",
		"Net Weight",
	})

	v.SetDefault("claims.regulated_regions", []string{"USA", "EU", "UK"})

	v.SetDefault("fonts.region_minima_pt", map[string]float64{
		"USA": 4.5,
		"EU":  6.0,
		"UK":  6.0,
	})

	v.SetDefault("score.top_fixes_display", 5)

	v.SetDefault("extract.backend", "auto")
	v.SetDefault("extract.min_text_runs", 5)

	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.requests_per_minute", 30)
	v.SetDefault("anthropic.max_attempts", 3)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
