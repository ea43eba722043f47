/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strings"

	"github.com/Seednode/bingo/games/bingo"
	"github.com/spf13/cobra"
)

func newEncodeCmd(cfg *Config) *cobra.Command {
	var (
		dataset int
		marked  []int
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the state token for a dataset and set of marked tiles.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validateDatasets(); err != nil {
				return err
			}
			if err := cfg.loadCatalog(); err != nil {
				return err
			}
			if !cfg.catalog.Has(dataset) {
				return fmt.Errorf("%w: %d", bingo.ErrUnknownDataset, dataset)
			}

			s := bingo.State{DatasetID: dataset}
			for _, tile := range marked {
				if tile < 0 || tile >= bingo.TileCount {
					return fmt.Errorf("%w: %d", bingo.ErrInvalidTile, tile)
				}
				s.Tiles[tile] = true
			}

			token, err := bingo.Encode(s)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&dataset, "dataset", "d", 0, "dataset id")
	fs.IntSliceVarP(&marked, "marked", "m", nil, "comma-separated tile indexes (0-23) to mark")

	return cmd
}

func newDecodeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <state>",
		Short: "Print the dataset and marked tiles held in a state token.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validateDatasets(); err != nil {
				return err
			}
			if err := cfg.loadCatalog(); err != nil {
				return err
			}

			s, err := bingo.Decode(args[0])
			if err != nil {
				return err
			}

			name := "(unknown)"
			if d, err := cfg.catalog.Get(s.DatasetID); err == nil {
				name = d.Name
			}

			marked := make([]string, 0, bingo.TileCount)
			for _, tile := range s.Tiles.Marked() {
				marked = append(marked, fmt.Sprint(tile))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dataset: %d (%s)\n", s.DatasetID, name)
			fmt.Fprintf(out, "marked:  [%s]\n", strings.Join(marked, ","))
			fmt.Fprintf(out, "bingo:   %t\n", bingo.HasWin(s.Tiles))

			return nil
		},
	}
}
