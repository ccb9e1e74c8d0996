package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccrypt/ccrypt/internal/catalog"
	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/workflows"
)

var (
	listSort  string
	searchMax int
)

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "sort the catalog by name, recent, size or type")
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", 20, "maximum number of matches")
}

func resetListCommandState() {
	listSort = ""
}

func resetSearchCommandState() {
	searchMax = 20
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	Long: `Lists every container in the catalog.

--sort reorders the catalog itself, so the numbers shown stay valid for
decrypt, info, rename and delete.

Examples:
  ccrypt list
  ccrypt list --sort size`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		opts := workflows.ListOptions{}
		if listSort != "" {
			criterion, err := catalog.ParseCriterion(listSort)
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
				return nil
			}
			opts.Sort = &criterion
		}

		result, err := workflows.List(context.Background(), lib.Catalog, opts)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list catalog: %v", err)
		}
		if err := saveLibrary(lib); err != nil {
			return Logger.ErrorfAndReturn("failed to save catalog: %v", err)
		}

		if len(result.Entries) == 0 {
			fmt.Println("No encrypted files in catalog.")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ccrypt encrypt <file>") + " to add one")
			return nil
		}

		fmt.Printf("Catalog (%d entries):\n", len(result.Entries))
		return renderEntries(result.Entries)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <substring>",
	Short: "Search the catalog by original file name",
	Long: `Finds catalog entries whose original file name contains the substring.
Matching is case-sensitive.

Examples:
  ccrypt search report
  ccrypt search .csv --max 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command for %q", args[0])

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		result, err := workflows.Search(context.Background(), lib.Catalog, workflows.SearchOptions{
			Query: args[0],
			Max:   searchMax,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to search catalog: %v", err)
		}

		if len(result.Entries) == 0 {
			fmt.Println("No catalog entries match " + ui.Highlight.Sprint(args[0]) + ".")
			return nil
		}

		fmt.Printf("Found %d match(es):\n", len(result.Entries))
		return renderEntries(result.Entries)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <number>",
	Short: "Show the details of one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		index, err := parseIndex(args[0])
		if err != nil {
			fmt.Println(formatError("show entry", err))
			return nil
		}

		entry, err := workflows.Info(context.Background(), lib.Catalog, index)
		if err != nil {
			fmt.Println(formatError("show entry", err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		printRecord(entry)
		return nil
	},
}

func renderEntries(entries []workflows.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		r := e.Record
		rows = append(rows, []string{
			strconv.Itoa(e.Index + 1),
			r.OriginalName,
			ui.Size(r.OriginalSize),
			ui.Size(r.ArtifactSize),
			r.Method.String(),
			ui.YesNo(r.Compressed),
			r.CreatedAt.Local().Format("2006-01-02"),
			typeOrDash(r.FileType),
		})
	}
	header := []string{"No.", "Name", "Size", "Stored", "Method", "Compressed", "Date", "Type"}
	return ui.Table(os.Stdout, header, rows)
}

func printRecord(entry *workflows.Entry) {
	r := entry.Record
	fmt.Printf("Entry %s\n", ui.Highlight.Sprintf("#%d", entry.Index+1))
	fmt.Printf("  %-14s %s\n", "Original name:", r.OriginalName)
	fmt.Printf("  %-14s %s\n", "Container:", ui.Path.Sprint(r.ArtifactName))
	fmt.Printf("  %-14s %s (%d bytes)\n", "Size:", ui.Size(r.OriginalSize), r.OriginalSize)
	fmt.Printf("  %-14s %s (%d bytes)\n", "Stored:", ui.Size(r.ArtifactSize), r.ArtifactSize)
	fmt.Printf("  %-14s %s\n", "Method:", r.Method)
	fmt.Printf("  %-14s %s\n", "Compressed:", ui.YesNo(r.Compressed))
	fmt.Printf("  %-14s %s\n", "Checksum:", r.Checksum)
	fmt.Printf("  %-14s %s\n", "Type:", typeOrDash(r.FileType))
	fmt.Printf("  %-14s %s\n", "Created:", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  %-14s %d\n", "Sequence id:", r.SequenceID)
}

func typeOrDash(t string) string {
	if t == "" {
		return "-"
	}
	return t
}
