package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/query"
	"marketbrowse/internal/core/urlcodec"
	"marketbrowse/internal/platform/config"
)

// env is shared by every subcommand, resolved once in PersistentPreRunE
type env struct {
	catalogFile string
	disabled    []string

	cat     *catalog.Catalog
	codec   *urlcodec.Codec
	builder *query.Builder
}

func newRootCmd() *cobra.Command {
	e := &env{}
	bc := config.New().Prefix("BROWSE_")

	root := &cobra.Command{
		Use:           "marketbrowse",
		Short:         "Resolve, encode and plan marketplace browse queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cat, err := catalog.Load(e.catalogFile)
			if err != nil {
				return err
			}
			e.cat = cat.WithDisabled(e.disabled...)
			e.codec = urlcodec.New(e.cat)
			e.builder = query.NewBuilder(e.cat)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.catalogFile, "catalog", bc.MayString("CATALOG_FILE", ""), "vendor catalog yaml, empty uses the embedded one")
	pf.StringSliceVar(&e.disabled, "disable", bc.MayCSV("DISABLED_VENDORS", nil), "partner vendors to switch off")

	root.AddCommand(
		newResolveCmd(e),
		newEncodeCmd(e),
		newDecodeCmd(e),
		newPlanCmd(e),
		newSectionsCmd(e),
		newLinkCmd(e),
		newFetchCmd(e),
		newEventsCmd(),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
