package config

// Config represents the raptorboost CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Port int `mapstructure:"port"`
}
