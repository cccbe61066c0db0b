package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n-widmer/tableproof/application"
	"github.com/n-widmer/tableproof/merkletree"
	"github.com/n-widmer/tableproof/protocol"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Compute the table's current root and pin it as trusted.",
	Long: `Compute the Merkle root over the current table snapshot and pin it
as the trusted root for future audits. Pinning asserts that the table
is in a known-good state right now; run this once after initial
population and again after every legitimate bulk update.`,
	Run: pinRootOrExit,
}

func init() {
	RootCmd.AddCommand(pinCmd)
	pinCmd.Flags().StringP("config", "c", "config.toml",
		"Path to the tableproof configuration file")
}

func pinRootOrExit(cmd *cobra.Command, args []string) {
	conf := loadConfigOrExit(cmd)
	store, closeStore := openStoreOrExit(conf)
	defer closeStore()

	records, err := store.Snapshot()
	if err != nil {
		fmt.Println("Couldn't read table snapshot:", err)
		os.Exit(-1)
	}
	leaves, err := committedLeaves(records)
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}

	root := merkletree.BuildRoot(leaves)
	if err := conf.SaveTrustedRoot(root); err != nil {
		fmt.Println("Couldn't pin trusted root:", err)
		os.Exit(-1)
	}
	fmt.Printf("Pinned root over %d records: %s\n",
		len(records), application.EncodeDigest(root))
}

// committedLeaves collects the snapshot's leaf digests as committed
// by the store at write time. The pin and prove paths always work
// from the committed digests, never from digests recomputed over
// possibly tampered data.
func committedLeaves(records []protocol.Record) ([][]byte, error) {
	leaves := make([][]byte, len(records))
	for i := range records {
		if len(records[i].LeafDigest) == 0 {
			return nil, fmt.Errorf("Record %d carries no committed leaf digest", records[i].ID)
		}
		leaves[i] = records[i].LeafDigest
	}
	return leaves, nil
}
