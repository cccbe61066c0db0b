package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/protocol"
)

// unreadableField is the display fallback for a field whose bundle
// failed authentication. It is constructed here, at the presentation
// boundary, and is distinguishable from every legitimate value; the
// core itself only ever reports the explicit failure.
const unreadableField = "<unreadable>"

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one record, decrypting its sensitive fields.",
	Long: `Show one record. The encrypted demographic bundle is decrypted with
the configured key; if its authentication tag no longer verifies, the
sensitive fields are displayed as ` + unreadableField + ` instead of
any guessed value.`,
	Run: showRecordOrExit,
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("config", "c", "config.toml",
		"Path to the tableproof configuration file")
	showCmd.Flags().Uint64("id", 0, "Identifier of the record to show")
}

func showRecordOrExit(cmd *cobra.Command, args []string) {
	conf := loadConfigOrExit(cmd)
	id, err := cmd.Flags().GetUint64("id")
	if err != nil || id == 0 {
		fmt.Println("A record identifier is required (--id)")
		os.Exit(-1)
	}
	key, err := conf.LoadSealKey()
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}

	store, closeStore := openStoreOrExit(conf)
	defer closeStore()
	rec, err := store.Get(id)
	if err != nil {
		fmt.Println("Couldn't read record:", err)
		os.Exit(-1)
	}

	gender, age := unreadableField, unreadableField
	if rec.Sensitive != nil {
		if d, err := protocol.OpenDemographics(key, rec.Sensitive); err == nil {
			gender = d.Gender
			age = fmt.Sprintf("%d", d.Age)
		}
	}

	fmt.Printf("Record %d\n", rec.ID)
	fmt.Printf("  Name:    %s %s\n", rec.FirstName, rec.LastName)
	fmt.Printf("  History: %s\n", rec.HealthHistory)
	fmt.Printf("  Weight:  %g\n", rec.Weight)
	fmt.Printf("  Height:  %g\n", rec.Height)
	fmt.Printf("  Gender:  %s\n", gender)
	fmt.Printf("  Age:     %s\n", age)
}
