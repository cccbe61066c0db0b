package application

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/n-widmer/tableproof/crypto"
	"github.com/n-widmer/tableproof/crypto/seal"
	"github.com/n-widmer/tableproof/utils/binutils"
)

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")

	conf := NewConfig(file, "toml",
		&binutils.LoggerConfig{Environment: "development"},
		"records.db", "key.b64", "trusted_root")
	require.NoError(t, conf.Save())

	loaded := new(Config)
	require.NoError(t, loaded.Load(file, "toml"))
	require.Equal(t, "records.db", loaded.StorePath)
	require.Equal(t, "key.b64", loaded.KeyPath)
	require.Equal(t, "trusted_root", loaded.TrustedRootPath)
	require.Equal(t, "development", loaded.Logger.Environment)
}

func TestLoadSealKey(t *testing.T) {
	dir := t.TempDir()
	conf := NewConfig(filepath.Join(dir, "config.toml"), "toml", nil,
		"records.db", "key.b64", "trusted_root")

	key, err := seal.NewKey()
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(key) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.b64"), []byte(encoded), 0600))

	loaded, err := conf.LoadSealKey()
	require.NoError(t, err)
	require.Equal(t, key, loaded)
}

func TestLoadSealKeyRejectsWrongLength(t *testing.T) {
	dir := t.TempDir()
	conf := NewConfig(filepath.Join(dir, "config.toml"), "toml", nil,
		"records.db", "key.b64", "trusted_root")
	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.b64"), []byte(short), 0600))

	_, err := conf.LoadSealKey()
	require.Error(t, err)
}

func TestTrustedRootPinAndRePin(t *testing.T) {
	dir := t.TempDir()
	conf := NewConfig(filepath.Join(dir, "config.toml"), "toml", nil,
		"records.db", "key.b64", "trusted_root")

	root1 := crypto.Digest([]byte("state one"))
	require.NoError(t, conf.SaveTrustedRoot(root1))
	got, err := conf.LoadTrustedRoot()
	require.NoError(t, err)
	require.Equal(t, root1, got)

	// re-pinning after a legitimate bulk change overwrites the old pin
	root2 := crypto.Digest([]byte("state two"))
	require.NoError(t, conf.SaveTrustedRoot(root2))
	got, err = conf.LoadTrustedRoot()
	require.NoError(t, err)
	require.Equal(t, root2, got)
}

func TestSaveTrustedRootRejectsBadLength(t *testing.T) {
	dir := t.TempDir()
	conf := NewConfig(filepath.Join(dir, "config.toml"), "toml", nil,
		"records.db", "key.b64", "trusted_root")
	require.Error(t, conf.SaveTrustedRoot([]byte("not a digest")))
}
