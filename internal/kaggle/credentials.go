// filepath: internal/kaggle/credentials.go
package kaggle

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrNoCredentials is returned when no usable Kaggle credentials are found.
var ErrNoCredentials = errors.New("kaggle credentials not found: set KAGGLE_USERNAME and KAGGLE_KEY or create kaggle.json")

// Credentials holds a Kaggle API username and key pair.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// LoadCredentials resolves Kaggle API credentials the same way the official
// tooling does: the KAGGLE_USERNAME and KAGGLE_KEY environment variables
// first, then kaggle.json in the Kaggle config directory. The directory
// defaults to ~/.kaggle and can be overridden with KAGGLE_CONFIG_DIR.
func LoadCredentials() (Credentials, error) {
	v := viper.New()
	v.SetEnvPrefix("kaggle")
	v.AutomaticEnv()

	// Bind explicitly so the env vars are visible even without a config file.
	v.BindEnv("username")
	v.BindEnv("key")
	v.BindEnv("config_dir")

	if v.GetString("username") == "" || v.GetString("key") == "" {
		configDir := v.GetString("config_dir")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				configDir = filepath.Join(home, ".kaggle")
			}
		}
		if configDir != "" {
			v.SetConfigName("kaggle")
			v.SetConfigType("json")
			v.AddConfigPath(configDir)
			// A missing or unreadable file just leaves the values empty.
			_ = v.ReadInConfig()
		}
	}

	creds := Credentials{
		Username: v.GetString("username"),
		Key:      v.GetString("key"),
	}
	if creds.Username == "" || creds.Key == "" {
		return Credentials{}, ErrNoCredentials
	}

	return creds, nil
}
