package application

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/n-widmer/tableproof/crypto"
	"github.com/n-widmer/tableproof/crypto/seal"
	"github.com/n-widmer/tableproof/utils"
	"github.com/n-widmer/tableproof/utils/binutils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig contains the configuration values common to every
// tableproof executable: the config file path, the logger
// configuration, and the config loader.
type CommonConfig struct {
	Path     string
	Logger   *binutils.LoggerConfig `toml:"logger"`
	Encoding string
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *binutils.LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	return conf.loader
}

// Config is the configuration of the tableproof executable. All
// paths are resolved relative to the config file's directory.
type Config struct {
	*CommonConfig
	// StorePath is the record database directory.
	StorePath string `toml:"store_path"`
	// KeyPath is the base64-encoded field-encryption key file.
	KeyPath string `toml:"key_path"`
	// TrustedRootPath is the hex-encoded pinned root file.
	TrustedRootPath string `toml:"trusted_root_path"`
}

var _ AppConfig = (*Config)(nil)

// NewConfig assembles a configuration with the given paths.
func NewConfig(file, encoding string, logger *binutils.LoggerConfig,
	storePath, keyPath, rootPath string) *Config {
	return &Config{
		CommonConfig:    NewCommonConfig(file, encoding, logger),
		StorePath:       storePath,
		KeyPath:         keyPath,
		TrustedRootPath: rootPath,
	}
}

// Load initializes the configuration from the given file.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = NewCommonConfig(file, encoding, nil)
	return conf.GetLoader().Decode(conf)
}

// Save writes the configuration to its file.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

// GetPath returns the config file path.
func (conf *Config) GetPath() string {
	return conf.Path
}

// LoadSealKey reads the base64-encoded field-encryption key stored at
// the path specified in the config file. The key is provisioned
// out-of-band; it is never derived from user input and must never be
// logged.
func (conf *Config) LoadSealKey() (seal.Key, error) {
	path := utils.ResolvePath(conf.KeyPath, conf.Path)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read key file: %v", err)
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("Cannot decode key file: %v", err)
	}
	if len(key) != seal.KeySize {
		return nil, fmt.Errorf("Key must be %d bytes (got %d)", seal.KeySize, len(key))
	}
	return seal.Key(key), nil
}

// LoadTrustedRoot reads the pinned trusted root from the path
// specified in the config file. The root crosses the boundary as a
// fixed-length hex string (see EncodeDigest).
func (conf *Config) LoadTrustedRoot() ([]byte, error) {
	path := utils.ResolvePath(conf.TrustedRootPath, conf.Path)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read trusted root: %v", err)
	}
	root, err := DecodeDigest(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("Cannot parse trusted root: %v", err)
	}
	return root, nil
}

// SaveTrustedRoot pins root, overwriting any previously pinned value.
// Re-pinning is an explicit operator action after a legitimate bulk
// update; until then audits will (correctly) report mismatches.
func (conf *Config) SaveTrustedRoot(root []byte) error {
	if len(root) != crypto.HashSizeByte {
		return fmt.Errorf("Trusted root must be %d bytes (got %d)", crypto.HashSizeByte, len(root))
	}
	path := utils.ResolvePath(conf.TrustedRootPath, conf.Path)
	return os.WriteFile(path, []byte(EncodeDigest(root)+"\n"), 0600)
}
