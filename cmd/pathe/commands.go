package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yama6a/pathe-portal/internal/app/crawler"
	"github.com/yama6a/pathe-portal/internal/pkg/config"
	"github.com/yama6a/pathe-portal/internal/pkg/export"
	"github.com/yama6a/pathe-portal/internal/pkg/http"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/rawhttp"
	"go.uber.org/zap"
)

const (
	historySourceReservations = "reservations"
	historySourceCards        = "cards"
	historySourceExport       = "export"
	historySourceAPI          = "api"

	formatProfile = "profile"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "pathe",
		Short:             "Client for the Pathé loyalty portal.",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "File with PATHE_* variables, ignored when missing.")
	root.PersistentFlags().StringVar(&a.account, "account", "", "Name of the configured account to use. Defaults to the first one.")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging.")

	root.AddCommand(
		newHistoryCmd(a),
		newProfileCmd(a),
		newCardsCmd(a),
		newCrawlCmd(a),
		newParseCmd(a),
	)
	return root
}

func newHistoryCmd(a *app) *cobra.Command {
	var source, xlsxPath, search string

	cmd := &cobra.Command{
		Use:   "history [--source reservations|cards|export|api] [--xlsx <file>]",
		Short: "Shows the visit history of an account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := a.selectedAccount()
			if err != nil {
				return err
			}

			items, err := a.fetchHistory(cmd.Context(), acc, source)
			if err != nil {
				return err
			}

			return writeHistory(cmd.OutOrStdout(), filterByTitle(items, search), xlsxPath)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only show titles containing or resembling this text.")
	cmd.Flags().StringVar(&source, "source", historySourceReservations, "Where to read the history from: reservations, cards, export or api.")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the history to this XLSX file.")
	return cmd
}

func (a *app) fetchHistory(ctx context.Context, acc config.Account, source string) ([]model.HistoryItem, error) {
	if source == historySourceAPI {
		return loggedInHistory{app: a, acc: acc}.History(ctx)
	}

	client, err := a.portalClient(acc)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx); err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			a.logger.Warn("logout failed", zap.Error(err))
		}
	}()

	switch source {
	case historySourceReservations:
		return client.ReservationHistory(ctx) //nolint:wrapcheck // already descriptive
	case historySourceCards:
		return client.CardHistory(ctx) //nolint:wrapcheck // already descriptive
	case historySourceExport:
		return client.ExportHistory(ctx) //nolint:wrapcheck // already descriptive
	}
	return nil, fmt.Errorf("unknown history source %q", source)
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Shows the personal data of an account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := a.selectedAccount()
			if err != nil {
				return err
			}
			client, err := a.portalClient(acc)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := client.Login(ctx); err != nil {
				return err //nolint:wrapcheck // already descriptive
			}
			defer func() {
				if err := client.Logout(ctx); err != nil {
					a.logger.Warn("logout failed", zap.Error(err))
				}
			}()

			pd, err := client.PersonalData(ctx)
			if err != nil {
				return err //nolint:wrapcheck // already descriptive
			}
			renderProfile(cmd.OutOrStdout(), &pd)
			return nil
		},
	}
}

func newCardsCmd(a *app) *cobra.Command {
	withClient := func(cmd *cobra.Command, fn func(ctx context.Context, client cardsClient) error) error {
		acc, err := a.selectedAccount()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		client, err := a.apiClient(ctx, acc)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Logout(ctx); err != nil {
				a.logger.Warn("api logout failed", zap.Error(err))
			}
		}()
		if err := fn(ctx, client); err != nil {
			return err
		}
		cards, err := client.Cards(ctx)
		if err != nil {
			return err //nolint:wrapcheck // already descriptive
		}
		renderCards(cmd.OutOrStdout(), cards)
		return nil
	}

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Lists the cards linked to an account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(context.Context, cardsClient) error { return nil })
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <number>",
			Short: "Links a card to the account.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, client cardsClient) error {
					return client.AddCard(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <number>",
			Short: "Unlinks a card from the account.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, client cardsClient) error {
					return client.RemoveCard(ctx, args[0])
				})
			},
		},
	)
	return cmd
}

type cardsClient interface {
	AddCard(ctx context.Context, number string) error
	RemoveCard(ctx context.Context, number string) error
}

func newCrawlCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Crawls the history of all configured accounts into the store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(a.cfg.Accounts) == 0 {
				return errNoAccount
			}

			ctx := cmd.Context()
			s, closeStore, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			crawlers := make([]crawler.AccountCrawler, 0, len(a.cfg.Accounts))
			for _, acc := range a.cfg.Accounts {
				source, err := a.historySource(acc)
				if err != nil {
					return err
				}
				crawlers = append(crawlers, crawler.NewHistoryCrawler(acc.Name, source, a.logger.Named("crawler")))
			}

			crawler.NewService(s, crawlers, a.logger.Named("crawler-svc")).Crawl(ctx)

			for _, acc := range a.cfg.Accounts {
				items, err := s.GetHistoryItems(acc.Name)
				if err != nil {
					return fmt.Errorf("failed to read history of %s: %w", acc.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items\n", acc.Name, len(items))
			}
			return nil
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	var format, xlsxPath, search string
	var cp1252 bool

	cmd := &cobra.Command{
		Use:   "parse --format reservations|cards|export|profile <file|->",
		Short: "Parses a saved portal page or a raw HTTP response captured with curl -i.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			text := http.DecoderUtf8(raw)
			if cp1252 {
				text = http.DecoderWindows1252(raw)
			}
			text = responseBody(text, a.logger)

			p := a.parser()
			switch format {
			case formatProfile:
				pd, err := p.ParsePersonalData(text)
				if err != nil {
					return err //nolint:wrapcheck // already descriptive
				}
				renderProfile(cmd.OutOrStdout(), &pd)
				return nil
			case historySourceExport:
				return writeHistory(cmd.OutOrStdout(), filterByTitle(p.ParseExport(text), search), xlsxPath)
			case historySourceReservations:
				items, err := p.ParseReservations(text)
				if err != nil {
					return err //nolint:wrapcheck // already descriptive
				}
				return writeHistory(cmd.OutOrStdout(), filterByTitle(items, search), xlsxPath)
			case historySourceCards:
				items, err := p.ParseCardHistory(text)
				if err != nil {
					return err //nolint:wrapcheck // already descriptive
				}
				return writeHistory(cmd.OutOrStdout(), filterByTitle(items, search), xlsxPath)
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", historySourceReservations, "Page type: reservations, cards, export or profile.")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write parsed history to this XLSX file.")
	cmd.Flags().StringVar(&search, "search", "", "Only show titles containing or resembling this text.")
	cmd.Flags().BoolVar(&cp1252, "cp1252", false, "Decode the input as Windows-1252.")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// responseBody strips the status line and headers from dumps made with curl -i.
func responseBody(text string, logger *zap.Logger) string {
	if !strings.HasPrefix(strings.ToLower(text), "http/") {
		return text
	}
	resp := rawhttp.Decode(text)
	logger.Debug("decoded raw http response",
		zap.Int("status", resp.StatusCode),
		zap.String("contentType", resp.Headers["Content-Type"]),
	)
	return resp.Body
}

func writeHistory(w io.Writer, items []model.HistoryItem, xlsxPath string) (err error) {
	renderHistory(w, items)
	if xlsxPath == "" {
		return nil
	}

	f, err := os.Create(xlsxPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", xlsxPath, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return export.WriteHistoryXLSX(f, items) //nolint:wrapcheck // already descriptive
}
