package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/application"
	"github.com/n-widmer/tableproof/merkletree"
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Emit the inclusion proof for one record.",
	Long: `Emit the inclusion proof for one record as JSON. A verifier holding
only the pinned trusted root can recompute the root from the printed
leaf digest and sibling path, without access to the rest of the
table.`,
	Run: proveRecordOrExit,
}

func init() {
	RootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringP("config", "c", "config.toml",
		"Path to the tableproof configuration file")
	proveCmd.Flags().Uint64("id", 0, "Identifier of the record to prove")
}

func proveRecordOrExit(cmd *cobra.Command, args []string) {
	conf := loadConfigOrExit(cmd)
	id, err := cmd.Flags().GetUint64("id")
	if err != nil || id == 0 {
		fmt.Println("A record identifier is required (--id)")
		os.Exit(-1)
	}

	store, closeStore := openStoreOrExit(conf)
	defer closeStore()
	records, err := store.Snapshot()
	if err != nil {
		fmt.Println("Couldn't read table snapshot:", err)
		os.Exit(-1)
	}

	index := -1
	for i := range records {
		if records[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		fmt.Println("No record with identifier", id)
		os.Exit(-1)
	}

	leaves, err := committedLeaves(records)
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	proof, err := merkletree.ProveInclusion(leaves, index)
	if err != nil {
		fmt.Println("Couldn't derive proof:", err)
		os.Exit(-1)
	}

	// the emitted leaf is recomputed from the record's live data, so
	// the proof verifies against the pinned root only if the record
	// still matches what was committed
	canonical, err := records[index].CanonicalBytes()
	if err != nil {
		fmt.Println("Couldn't serialize record:", err)
		os.Exit(-1)
	}
	msg, err := application.MarshalProof(id, merkletree.LeafHash(canonical), proof)
	if err != nil {
		fmt.Println("Couldn't encode proof:", err)
		os.Exit(-1)
	}
	fmt.Println(string(msg))
}
