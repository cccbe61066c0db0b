package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/application"
	"github.com/n-widmer/tableproof/cli"
	"github.com/n-widmer/tableproof/storage/kv"
	"github.com/n-widmer/tableproof/storage/kv/leveldbkv"
	"github.com/n-widmer/tableproof/storage/recordkv"
	"github.com/n-widmer/tableproof/utils"
)

// RootCmd represents the base "tableproof" command when called
// without any subcommands (init, add, pin, ...).
var RootCmd = cli.NewRootCommand("tableproof",
	"Tamper-evident integrity auditing for sensitive record tables",
	`Tableproof maintains a Merkle commitment over a table of sensitive
records. An operator pins a trusted root once the table is believed
clean; every later audit recomputes per-record inclusion proofs and
verifies them against the pinned root, flagging any record that no
longer matches. The two derived demographic fields of each record are
stored under authenticated encryption and participate in the same
commitment as opaque ciphertext bytes.`)

func init() {
	RootCmd.AddCommand(cli.NewVersionCommand("tableproof"))
}

// loadConfigOrExit reads the configuration file named by the
// command's --config flag.
func loadConfigOrExit(cmd *cobra.Command) *application.Config {
	file := cmd.Flag("config").Value.String()
	conf := new(application.Config)
	if err := conf.Load(file, "toml"); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	return conf
}

// openStoreOrExit opens the record store configured in conf. The
// returned close function must be called before the process exits.
func openStoreOrExit(conf *application.Config) (*recordkv.Store, func()) {
	path := utils.ResolvePath(conf.StorePath, conf.GetPath())
	db, err := leveldbkv.OpenDB(path)
	if err != nil {
		fmt.Println("Couldn't open record store:", err)
		os.Exit(-1)
	}
	return recordkv.New(db), func() { closeOrWarn(db) }
}

func closeOrWarn(db kv.DB) {
	if err := db.Close(); err != nil {
		fmt.Println("Couldn't close record store:", err)
	}
}
