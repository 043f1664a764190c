package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkersey/graphmail/internal/store"
)

// cachePath picks the store location: flag first, then config.
func cachePath(rootOpts *RootOptions, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if rootOpts.Config != nil && rootOpts.Config.CachePath != "" {
		return rootOpts.Config.CachePath, nil
	}
	return "", fmt.Errorf("no cache database: pass --db or set cache_path in the config")
}

// NewCachedCommand creates the cached command.
func NewCachedCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, fingerprint string

	cmd := &cobra.Command{
		Use:   "cached",
		Short: "List locally cached query results",
		Long: `List the message snapshots cached under a query fingerprint. Use
"graphmail compile" to obtain the fingerprint of a query.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCached(rootOpts, dbPath, fingerprint, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "cache database path")
	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "query fingerprint to list")
	cmd.MarkFlagRequired("fingerprint")

	return cmd
}

func runCached(rootOpts *RootOptions, dbPath, fingerprint string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	path, err := cachePath(rootOpts, dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cached", err)
	}

	s, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cached", err)
	}
	defer s.Close()

	msgs, err := s.CachedMessages(cmd.Context(), fingerprint)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cached", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(msgs)
	}

	if len(msgs) == 0 {
		fmt.Fprintln(formatter.Writer, "no cached results for this fingerprint")
		return nil
	}
	for _, m := range msgs {
		read := " "
		if !m.IsRead {
			read = "*"
		}
		fmt.Fprintf(formatter.Writer, "%s %s  %-40s %s\n",
			read, m.ReceivedAt.Format(time.DateTime), truncate(m.Subject, 40), m.From)
	}
	return nil
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "audit",
		Short:         "List recorded bulk actions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "cache database path")

	return cmd
}

func runAudit(rootOpts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	path, err := cachePath(rootOpts, dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "audit", err)
	}

	s, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "audit", err)
	}
	defer s.Close()

	recs, err := s.BulkActions(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "audit", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(formatter.Writer, "no bulk actions recorded")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(formatter.Writer, "%s  %-12s affected=%-4d token=%s\n",
			rec.RecordedAt.Format(time.DateTime), rec.Action, rec.Affected, rec.Token)
	}
	return nil
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
