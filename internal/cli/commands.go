package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/http/dto"
	"github.com/itunescache/itunescache/internal/search"
)

func (a *app) newSearchCmd() *cobra.Command {
	var (
		media string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search the upstream catalog, caching the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.SearchRequest{
				Term:    strings.Join(args, " "),
				Media:   domain.MediaType(media),
				Country: a.v.GetString("country"),
			}
			if cmd.Flags().Changed("limit") {
				req.Limit = &limit
			}
			return a.run(cmd, func(ctx context.Context, svc *search.Service) (any, error) {
				out, err := svc.Search(ctx, req)
				if err != nil {
					return nil, err
				}
				return dto.NewSearchResponse(out), nil
			})
		},
	}
	cmd.Flags().StringVarP(&media, "media", "m", "", "Media type, e.g. music, movie, podcast")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (1-200, default 50)")
	return cmd
}

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List searched terms, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc *search.Service) (any, error) {
				entries, err := svc.History(ctx)
				if err != nil {
					return nil, err
				}
				return dto.NewHistoryResponse(entries), nil
			})
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached searches with their results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc *search.Service) (any, error) {
				if cmd.Flags().Changed("term") {
					queries, err := svc.ListByTerm(ctx, term)
					if err != nil {
						return nil, err
					}
					return dto.NewResultsByTermResponse(strings.TrimSpace(term), queries), nil
				}
				queries, err := svc.ListAll(ctx)
				if err != nil {
					return nil, err
				}
				return dto.NewSearchesResponse(queries), nil
			})
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", "", "Only list searches for this exact term")
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one cached search and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := dto.ParseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, svc *search.Service) (any, error) {
				q, err := svc.GetByID(ctx, id)
				if err != nil {
					return nil, err
				}
				return dto.NewSearchByIDResponse(q), nil
			})
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cached search and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := dto.ParseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, svc *search.Service) (any, error) {
				if err := svc.Delete(ctx, id); err != nil {
					return nil, err
				}
				return dto.NewDeleteResponse(id), nil
			})
		},
	}
}
