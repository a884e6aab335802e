package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cypherfrag/internal/canonical"
	"github.com/roach88/cypherfrag/internal/store"
)

// CatalogList is the output of catalog list.
type CatalogList struct {
	Entries []store.Entry `json:"entries"`
}

// String renders the text output, one entry per line.
func (l CatalogList) String() string {
	if len(l.Entries) == 0 {
		return "Catalog is empty."
	}
	var b strings.Builder
	for i, e := range l.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s  %-20s %s", e.Seq, truncateID(e.ID), e.Name, e.Query)
	}
	return b.String()
}

// CatalogEntry is the output of catalog show.
type CatalogEntry struct {
	store.Entry
}

// String renders all fields of one entry.
func (e CatalogEntry) String() string {
	params, err := canonical.Marshal(e.Params)
	if err != nil {
		params = []byte(fmt.Sprint(e.Params))
	}
	return fmt.Sprintf("ID:          %s\nName:        %s\nSeq:         %d\nFingerprint: %s\nQuery:       %s\nParams:      %s",
		e.ID, e.Name, e.Seq, e.Fingerprint, e.Query, params)
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect a fragment catalog",
		Long: `Inspect fragments recorded with "cypherfrag build --record".

Examples:
  cypherfrag catalog list catalog.db
  cypherfrag catalog show catalog.db 01920000-0000-7000-8000-000000000000
  cypherfrag catalog show catalog.db <fingerprint>`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list <db>",
		Short:         "List recorded fragments in insertion order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(cmd.Context(), rootOpts, args[0], cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "show <db> <id-or-fingerprint>",
		Short:         "Show one recorded fragment",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(cmd.Context(), rootOpts, args[0], args[1], cmd)
		},
	})

	return cmd
}

// openCatalog opens an existing catalog; it never creates one.
func openCatalog(f *OutputFormatter, path string) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, commandError(f, ErrCodeNotFound, fmt.Sprintf("catalog not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, commandError(f, ErrCodeCatalogOpen, err.Error())
	}
	return st, nil
}

func runCatalogList(ctx context.Context, opts *RootOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts, cmd)

	st, err := openCatalog(formatter, path)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(ctx)
	if err != nil {
		return commandError(formatter, ErrCodeCatalogRead, err.Error())
	}
	formatter.VerboseLog("Read %d entries from %s", len(entries), path)

	return formatter.Success(CatalogList{Entries: entries})
}

func runCatalogShow(ctx context.Context, opts *RootOptions, path, key string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts, cmd)

	st, err := openCatalog(formatter, path)
	if err != nil {
		return err
	}
	defer st.Close()

	entry, err := st.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		entry, err = st.FindByFingerprint(ctx, key)
	}
	if errors.Is(err, store.ErrNotFound) {
		return commandError(formatter, ErrCodeUnknownEntry, fmt.Sprintf("no entry with id or fingerprint %q", key))
	}
	if err != nil {
		return commandError(formatter, ErrCodeCatalogRead, err.Error())
	}

	return formatter.Success(CatalogEntry{Entry: entry})
}

// truncateID shortens an entry ID for list output.
func truncateID(id string) string {
	if len(id) <= 13 {
		return id
	}
	return id[:13]
}
