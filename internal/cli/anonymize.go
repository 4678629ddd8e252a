package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pedikit/pedikit/pkg/pedigree"
)

// anonymizeOpts holds the command-line flags for the anonymize command.
type anonymizeOpts struct {
	output    string // output file path; "-" writes to stdout
	keepNotes bool   // keep free-text notes instead of dropping them
}

// newAnonymizeCmd creates the anonymize command. It replaces every
// individual name (and the parent references and twin markers that mention
// names) with opaque identifiers, so a dataset can be shared without
// exposing who is in it. Structure, sex, and status flags survive untouched,
// which is all the layout and the chart need.
func newAnonymizeCmd() *cobra.Command {
	var opts anonymizeOpts

	cmd := &cobra.Command{
		Use:   "anonymize [file]",
		Short: "Replace individual names with opaque identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnonymize(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>_anon.json, - for stdout)")
	cmd.Flags().BoolVar(&opts.keepNotes, "keep-notes", false, "keep free-text notes (dropped by default)")

	return cmd
}

func runAnonymize(ctx context.Context, input string, opts *anonymizeOpts) error {
	logger := loggerFromContext(ctx)

	ped, err := pedigree.ImportFile(input)
	if err != nil {
		return err
	}

	anon := anonymizePedigree(ped, opts.keepNotes)

	data, err := pedigree.WriteJSON(anon)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "_anon.json"
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Debugf("Anonymized %d individuals", ped.Len())
	printSuccess("Anonymized %s", input)
	printFile(path)
	return nil
}

// anonymizePedigree returns a copy of ped with every name replaced by an
// identifier derived from a run-scoped random namespace. The same name maps
// to the same identifier within one run, so parent references and twin
// groups stay intact, while separate runs over the same dataset produce
// unlinkable output.
func anonymizePedigree(ped *pedigree.Pedigree, keepNotes bool) *pedigree.Pedigree {
	namespace := uuid.New()

	rename := func(name string) string {
		if name == "" {
			return ""
		}
		id := uuid.NewSHA1(namespace, []byte(name))
		return "P-" + strings.ToUpper(id.String()[:8])
	}
	remark := func(marker string) string {
		if marker == "" {
			return ""
		}
		id := uuid.NewSHA1(namespace, []byte("twin:"+marker))
		return "T-" + id.String()[:8]
	}

	individuals := make([]*pedigree.Individual, 0, ped.Len())
	for _, ind := range ped.Individuals() {
		clone := *ind
		clone.Name = rename(ind.Name)
		clone.Mother = rename(ind.Mother)
		clone.Father = rename(ind.Father)
		clone.MZTwin = remark(ind.MZTwin)
		clone.DZTwin = remark(ind.DZTwin)
		if !keepNotes {
			clone.Note = ""
		}
		individuals = append(individuals, &clone)
	}
	return pedigree.New(individuals)
}
