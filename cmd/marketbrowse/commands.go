package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marketbrowse/internal/adapters/marketapi"
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/locations"
	"marketbrowse/internal/core/paging"
	"marketbrowse/internal/core/query"
	"marketbrowse/internal/platform/config"
	perr "marketbrowse/internal/platform/errors"
)

// resolved is what resolve and fetch print
type resolved struct {
	Options browse.Options `json:"options"`
	URL     string         `json:"url"`
	Request *query.Request `json:"request,omitempty"`
}

type locationFlags struct {
	path   string
	query  string
	change string
	view   string
	wallet string
}

func (f *locationFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", browse.PathBrowse, "location pathname")
	cmd.Flags().StringVar(&f.query, "query", "", "location query string")
	cmd.Flags().StringVar(&f.change, "change", "", "partial options as json applied over the location")
	cmd.Flags().StringVar(&f.view, "view", "", "view hint: market, account, atlas, load_more")
	cmd.Flags().StringVar(&f.wallet, "wallet", "", "connected wallet for /account")
}

// resolve derives the canonical options for the flags the same way the API does
func (e *env) resolve(f locationFlags) (resolved, error) {
	hint := browse.View(f.view)
	if hint != "" && !hint.Valid() {
		return resolved{}, perr.InvalidArgf("unknown view %q", f.view)
	}
	if !strings.HasPrefix(f.path, "/") {
		return resolved{}, perr.InvalidArgf("path must start with /")
	}

	next := browse.Load(f.path, e.codec.Sanitize(e.codec.Decode(f.query)), hint)
	if f.change != "" {
		var change browse.Options
		if err := json.Unmarshal([]byte(f.change), &change); err != nil {
			return resolved{}, perr.JSONErrf("change: %v", err)
		}
		if err := e.codec.Check(change); err != nil {
			return resolved{}, err
		}
		if hint == "" {
			hint = browse.ViewFor(f.path)
		}
		next = browse.Resolve(next, e.codec.Sanitize(change), hint)
	}
	next.Address = browse.ResolveAddress(f.path, f.wallet)
	if !e.cat.Enabled(next.Vendor) {
		return resolved{}, perr.InvalidArgf("vendor %s is disabled", next.Vendor)
	}

	out := resolved{Options: next, URL: f.path}
	if qs := e.codec.Encode(next); qs != "" {
		out.URL += "?" + qs
	}
	if !next.Map() {
		req := e.builder.Build(next)
		out.Request = &req
	}
	return out, nil
}

func newResolveCmd(e *env) *cobra.Command {
	var f locationFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a location and an optional change into options, URL and request",
		Example: `  marketbrowse resolve --path /collectibles --query 'section=wearables_hat&page=2'
  marketbrowse resolve --path /collectibles --query 'page=1' --change '{"page":2}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := e.resolve(f)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f.bind(cmd)
	return cmd
}

func newEncodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "encode <options-json>",
		Short:   "Encode options into a query string",
		Example: `  marketbrowse encode '{"section":"wearables_hat","page":2,"wearableRarities":["rare"]}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var o browse.Options
			if err := json.Unmarshal([]byte(args[0]), &o); err != nil {
				return perr.JSONErrf("options: %v", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), e.codec.Encode(o))
			return err
		},
	}
}

func newDecodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "decode <query>",
		Short:   "Decode a query string into partial options, invalid values are dropped",
		Example: `  marketbrowse decode '?section=wearables_hat&rarities=rare_epic&page=x'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), e.codec.Decode(args[0]))
		},
	}
}

func newPlanCmd(e *env) *cobra.Command {
	var (
		page     int
		view     string
		vendor   string
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the fetch window of a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := browse.View(view)
			if !v.Valid() {
				return perr.InvalidArgf("unknown view %q", view)
			}
			if !catalog.IsVendor(vendor) {
				return perr.InvalidArgf("unknown vendor %q", vendor)
			}
			size := e.cat.MaxQuerySize(catalog.Vendor(vendor))
			return printJSON(cmd.OutOrStdout(), paging.WithPageSize(pageSize).Plan(page, v, size))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&view, "view", string(browse.ViewMarket), "view: market, account, atlas, load_more")
	cmd.Flags().StringVar(&vendor, "vendor", string(catalog.DefaultVendor), "vendor whose query cap applies")
	cmd.Flags().IntVar(&pageSize, "page-size", paging.PageSize, "rows per page")
	return cmd
}

func newSectionsCmd(e *env) *cobra.Command {
	var vendor string
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the section taxonomy of a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := catalog.Vendor(vendor)
			if v != catalog.DefaultVendor && !slices.Contains(e.cat.Partners(), v) {
				return perr.NotFoundf("vendor %q is not enabled", vendor)
			}
			w := cmd.OutOrStdout()
			for _, s := range catalog.Sections(v) {
				if _, err := fmt.Fprintf(w, "%-28s %-10s %s\n", s.Section, s.Category, s.WearableCategory); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor", string(catalog.DefaultVendor), "vendor")
	return cmd
}

func newLinkCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build site links",
	}
	say := func(cmd *cobra.Command, s string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	}
	links := func() *locations.Builder { return locations.New(e.codec) }
	decoded := func(raw string) *browse.Options {
		o := e.codec.Decode(raw)
		return &o
	}

	var q string
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse page with the options of --query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return say(cmd, links().Browse(decoded(q)))
		},
	}
	browseCmd.Flags().StringVar(&q, "query", "", "query string")

	var aq string
	accountCmd := &cobra.Command{
		Use:   "account <address>",
		Short: "Account page of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return say(cmd, links().Account(strings.ToLower(args[0]), decoded(aq)))
		},
	}
	accountCmd.Flags().StringVar(&aq, "query", "", "query string")

	nftCmd := &cobra.Command{
		Use:   "nft <contract> <token-id>",
		Short: "Token detail page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return say(cmd, locations.NFT(args[0], args[1]))
		},
	}
	itemCmd := &cobra.Command{
		Use:   "item <contract> <item-id>",
		Short: "Item detail page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return say(cmd, locations.Item(args[0], args[1]))
		},
	}
	buyCmd := &cobra.Command{
		Use:   "buy <nft|item> <contract> <id>",
		Short: "Purchase page of a token or item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := catalog.ResultType(args[0])
			if t != catalog.ResultNFT && t != catalog.ResultItem {
				return perr.InvalidArgf("result type must be nft or item, got %q", args[0])
			}
			return say(cmd, locations.Buy(t, args[1], args[2]))
		},
	}

	cmd.AddCommand(browseCmd, accountCmd, nftCmd, itemCmd, buyCmd)
	return cmd
}

func newFetchCmd(e *env) *cobra.Command {
	var (
		f       locationFlags
		baseURL string
		timeout time.Duration
	)
	bc := config.New().Prefix("BROWSE_")
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Resolve a location and run its request against the market API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := e.resolve(f)
			if err != nil {
				return err
			}
			if out.Request == nil {
				return perr.InvalidArgf("map views do not fetch")
			}
			client := marketapi.NewClient(marketapi.Options{
				BaseURL:   baseURL,
				UserAgent: "marketbrowse-cli",
				Timeout:   timeout,
			})
			page, err := client.Fetch(cmd.Context(), *out.Request)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				resolved
				Page marketapi.Page `json:"page"`
			}{out, page})
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", bc.MayString("MARKET_API_URL", ""), "market API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", bc.MayDuration("MARKET_API_TIMEOUT", 10*time.Second), "request timeout")
	return cmd
}
