package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pathomics/slidecheck/internal/model"
	"github.com/pathomics/slidecheck/internal/platform"
)

// Settings keys
const (
	KeyDatabaseDir   = "database_dir"
	KeySlidePath     = "slide_path"
	KeyVipsBin       = "vips_bin"
	KeySmokeCommand  = "smoke_command"
	KeySkipSmokeTest = "skip_smoke_test"
	KeyLogMode       = "log_mode"
)

// Default values
const (
	DefaultVipsBin = "vips"
	DefaultLogMode = "dev"
)

// DefaultSmokeCommand is the distributed-computing smoke test invocation
var DefaultSmokeCommand = []string{"python", "cellvit/inference/ray_test.py"}

// EnvPrefix is the prefix for environment variable overrides (SLIDECHECK_*)
const EnvPrefix = "SLIDECHECK"

// Settings manages harness configuration: defaults, an optional config
// file, environment overrides, and bound command-line flags
type Settings struct {
	v *viper.Viper
}

// NewSettings creates a settings manager with defaults applied
func NewSettings() *Settings {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if dir, err := platform.DefaultDatabaseDir(); err == nil {
		v.SetDefault(KeyDatabaseDir, dir)
	} else {
		v.SetDefault(KeyDatabaseDir, platform.DatabaseDirName)
	}
	v.SetDefault(KeyVipsBin, DefaultVipsBin)
	v.SetDefault(KeySmokeCommand, DefaultSmokeCommand)
	v.SetDefault(KeySkipSmokeTest, false)
	v.SetDefault(KeyLogMode, DefaultLogMode)

	return &Settings{v: v}
}

// LoadFile reads configuration from the given file path
func (s *Settings) LoadFile(path string) error {
	s.v.SetConfigFile(path)
	return s.v.ReadInConfig()
}

// BindFlags binds command-line flags to their settings keys
func (s *Settings) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyDatabaseDir:   "database-dir",
		KeySlidePath:     "slide",
		KeyVipsBin:       "vips",
		KeySmokeCommand:  "smoke-cmd",
		KeySkipSmokeTest: "skip-smoke-test",
		KeyLogMode:       "log-mode",
	}
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := s.v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// GetDatabaseDir returns the test database directory
func (s *Settings) GetDatabaseDir() string {
	return s.v.GetString(KeyDatabaseDir)
}

// SetDatabaseDir sets the test database directory
func (s *Settings) SetDatabaseDir(dir string) {
	s.v.Set(KeyDatabaseDir, dir)
}

// GetSlidePath returns the slide opened by the reader check. When unset it
// is derived from the database layout, so the check stays portable
func (s *Settings) GetSlidePath() string {
	path := s.v.GetString(KeySlidePath)
	if path == "" {
		return model.DefaultSlidePath(s.GetDatabaseDir())
	}
	return path
}

// SetSlidePath sets the slide opened by the reader check
func (s *Settings) SetSlidePath(path string) {
	s.v.Set(KeySlidePath, path)
}

// GetVipsBin returns the vips binary used for conversion and region reads
func (s *Settings) GetVipsBin() string {
	bin := s.v.GetString(KeyVipsBin)
	if bin == "" {
		return DefaultVipsBin
	}
	return bin
}

// GetSmokeCommand returns the smoke test command and its arguments
func (s *Settings) GetSmokeCommand() []string {
	cmd := s.v.GetStringSlice(KeySmokeCommand)
	if len(cmd) == 0 {
		return DefaultSmokeCommand
	}
	return cmd
}

// GetSkipSmokeTest returns whether the smoke test step is skipped
func (s *Settings) GetSkipSmokeTest() bool {
	return s.v.GetBool(KeySkipSmokeTest)
}

// GetLogMode returns the logger mode ("dev" or "prod")
func (s *Settings) GetLogMode() string {
	mode := s.v.GetString(KeyLogMode)
	if mode == "" {
		return DefaultLogMode
	}
	return mode
}
