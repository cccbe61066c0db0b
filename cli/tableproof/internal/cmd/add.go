package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/protocol"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record to the protected table.",
	Long: `Add a record to the protected table. The gender and age fields are
encrypted together under the configured key before anything is
stored; the remaining fields are stored in the clear. Remember to
re-pin the trusted root ("tableproof pin") after legitimate changes,
otherwise subsequent audits will report the new record as a mismatch.`,
	Run: addRecordOrExit,
}

func init() {
	RootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("config", "c", "config.toml",
		"Path to the tableproof configuration file")
	addCmd.Flags().String("first-name", "", "First name")
	addCmd.Flags().String("last-name", "", "Last name")
	addCmd.Flags().String("history", "", "Health history")
	addCmd.Flags().Float64("weight", 0, "Weight in kg")
	addCmd.Flags().Float64("height", 0, "Height in cm")
	addCmd.Flags().String("gender", "", "Gender (encrypted at rest)")
	addCmd.Flags().Int64("age", 0, "Age (encrypted at rest)")
}

func addRecordOrExit(cmd *cobra.Command, args []string) {
	conf := loadConfigOrExit(cmd)
	key, err := conf.LoadSealKey()
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}

	gender := cmd.Flag("gender").Value.String()
	age, err := cmd.Flags().GetInt64("age")
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	bundle, err := protocol.SealDemographics(key, &protocol.Demographics{
		Gender: gender,
		Age:    age,
	})
	if err != nil {
		fmt.Println("Couldn't encrypt demographics:", err)
		os.Exit(-1)
	}

	weight, _ := cmd.Flags().GetFloat64("weight")
	height, _ := cmd.Flags().GetFloat64("height")
	rec := &protocol.Record{
		FirstName:     cmd.Flag("first-name").Value.String(),
		LastName:      cmd.Flag("last-name").Value.String(),
		HealthHistory: cmd.Flag("history").Value.String(),
		Weight:        weight,
		Height:        height,
		Sensitive:     bundle,
	}

	store, closeStore := openStoreOrExit(conf)
	defer closeStore()
	id, err := store.Append(rec)
	if err != nil {
		fmt.Println("Couldn't store record:", err)
		os.Exit(-1)
	}
	fmt.Println("Stored record", id)
}
