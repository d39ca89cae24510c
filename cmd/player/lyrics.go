package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jscyril/mediacore/internal/lyrics"
	"github.com/spf13/cobra"
)

func newLyricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lyrics <file.lrc> <seconds>",
		Short: "Print the previous, current and next lyric lines at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cues, err := lyrics.ParseLRC(f)
			if err != nil {
				return err
			}

			lines := lyrics.Sync(cues, seconds)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s\n> %s\n  %s\n", lines.Previous, lines.Current, lines.Next)
			return nil
		},
	}
}
