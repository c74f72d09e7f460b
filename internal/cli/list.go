package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rflinks/internal/store"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// listPage is the JSON shape of list output.
type listPage struct {
	Page     int            `json:"page"`
	Pages    int            `json:"pages"`
	PageSize int            `json:"page_size"`
	Matched  int            `json:"matched"`
	Links    []types.Record `json:"links"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		search string
		page   int
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List links, optionally filtered by a search term",
		Long: `List one page of links. With --search, only links where some field
contains the term (case-insensitive) are shown. Pages are numbered from 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				pageSize := s.cfg.GetPageSize()
				matched := s.store.Search(search)
				result := listPage{
					Page:     page,
					Pages:    store.PageCount(len(matched), pageSize),
					PageSize: pageSize,
					Matched:  len(matched),
					Links:    store.Paginate(matched, page, pageSize),
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				renderTable(out, result.Links)
				renderPageFooter(out, result.Page, result.Pages, result.Matched)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().Int("page-size", types.DefaultPageSize, "links per page")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				rec, err := s.store.Get(args[0])
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, rec)
				}
				renderRecord(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total links, unique locations and unique POPs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				stats := s.store.Stats()
				if a.flags.jsonMode {
					return writeJSON(cmd, stats)
				}
				renderStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
}
