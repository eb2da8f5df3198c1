package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sukalov/lyricsheet/internal/bot/sheets"
	"github.com/sukalov/lyricsheet/internal/lyrics/linetype"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

func newClassifyCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the type of every line",
		Long: `Print every line of a song sheet prefixed with its type.

Examples:
  lyricsheet classify song.txt
  cat song.txt | lyricsheet classify --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			sh := sheet.Parse(text)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sh)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sheets.FormatClassified(sh))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print lines as JSON")
	return cmd
}

func newSectionsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sections [file]",
		Short: "List the sections of a song sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			sh := sheet.Parse(text)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sh.Sections())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sheets.FormatSections(sh))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print sections as JSON")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Replace section keywords in title lines with markers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformLines(cmd, args, linetype.EncodeTitles)
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Replace markers with their section keywords",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformLines(cmd, args, linetype.DecodeTitles)
		},
	}
}

func transformLines(cmd *cobra.Command, args []string, transform func([]string) []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	lines := sheet.SplitLines(text)
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(transform(lines), "\n"))
	return err
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
