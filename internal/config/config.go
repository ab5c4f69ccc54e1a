package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/subplane/subplane/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Event      EventConfig      `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BillingConfig carries the knobs of the billing core. Due-day defaults match
// the standard invoice terms: 30 days for cycle invoices, 7 for prorated ones.
type BillingConfig struct {
	DefaultCurrency     string `mapstructure:"default_currency" validate:"required,len=3"`
	InvoiceDueDays      int    `mapstructure:"invoice_due_days" validate:"required,gt=0"`
	ProratedDueDays     int    `mapstructure:"prorated_due_days" validate:"required,gt=0"`
	TrialDaysMax        int    `mapstructure:"trial_days_max" validate:"gte=0"`
	DefaultTrialDays    int    `mapstructure:"default_trial_days" validate:"gte=0"`
	HostSubscriptions   bool   `mapstructure:"host_subscriptions"`
	EnforceSingleActive bool   `mapstructure:"enforce_single_active"`
}

type EventConfig struct {
	Topic string `mapstructure:"topic" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/subplane")

	v.SetEnvPrefix("SUBPLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("billing.default_currency", "USD")
	v.SetDefault("billing.invoice_due_days", 30)
	v.SetDefault("billing.prorated_due_days", 7)
	v.SetDefault("billing.enforce_single_active", true)
	v.SetDefault("event.topic", "saas.events")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and for unit tests that do not read a config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Billing: BillingConfig{
			DefaultCurrency:     "USD",
			InvoiceDueDays:      30,
			ProratedDueDays:     7,
			EnforceSingleActive: true,
		},
		Event: EventConfig{Topic: "saas.events"},
	}
}
