package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
)

func ImportAllowListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-allow-list [file]",
		Short: "Import collection identities into the persisted allow-list",
		Args:  cobra.ExactArgs(1),
		Run:   importAllowList,
	}

	return cmd
}

func importAllowList(cmd *cobra.Command, args []string) {
	err := importAllowListE(cmd, args)
	if err != nil {
		log.Err(err).Msg("Failed to import allow-list")
		os.Exit(1)
	}

	os.Exit(0)
}

func importAllowListE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}

	filename := args[0]
	fd, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fd.Close()

	var collections []string
	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		collection := strings.TrimSpace(sc.Text())
		if collection == "" {
			continue
		}
		collections = append(collections, collection)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(collections) == 0 {
		return fmt.Errorf("empty allow-list file")
	}

	// The running engine only picks up imported collections on restart since
	// the in-memory allow-list is restored from this document at startup.
	if err := dbClient.AddAllowedCollections(ctx, collections); err != nil {
		if db.IsNotFoundError(err) {
			return fmt.Errorf("ledger state has not been initialized, start the server once first")
		}
		return err
	}

	fmt.Printf("Imported %d collections into the allow-list\n", len(collections))
	return nil
}
