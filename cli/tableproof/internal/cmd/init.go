package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/application"
	"github.com/n-widmer/tableproof/cli"
	"github.com/n-widmer/tableproof/crypto/seal"
	"github.com/n-widmer/tableproof/utils"
	"github.com/n-widmer/tableproof/utils/binutils"
)

var initCmd = cli.NewInitCommand("tableproof", mkConfigOrExit)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".",
		"Location of directory for storing generated files")
}

func mkConfigOrExit(cmd *cobra.Command, args []string) {
	dir := cmd.Flag("dir").Value.String()
	file := path.Join(dir, "config.toml")

	key, err := seal.NewKey()
	if err != nil {
		fmt.Println("Couldn't generate field-encryption key. Error message: [" +
			err.Error() + "]")
		os.Exit(-1)
	}
	encoded := base64.StdEncoding.EncodeToString(key) + "\n"
	if err := utils.WriteFile(path.Join(dir, "key.b64"), []byte(encoded), 0600); err != nil {
		fmt.Println("Couldn't save field-encryption key. Error message: [" +
			err.Error() + "]")
		os.Exit(-1)
	}

	conf := application.NewConfig(file, "toml",
		&binutils.LoggerConfig{Environment: "development"},
		"records.db", "key.b64", "trusted_root")
	if err := conf.Save(); err != nil {
		fmt.Println("Couldn't save config. Error message: [" +
			err.Error() + "]")
		os.Exit(-1)
	}
}
