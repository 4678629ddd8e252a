package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pedikit/pedikit/pkg/errors"
	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pedigree"
)

// newCheckCmd creates the check command for dataset validation.
// It reports every integrity violation rather than stopping at the first,
// so a dataset can be fixed in one pass.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a pedigree dataset and report all violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0])
		},
	}
}

func runCheck(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Checking %s", input)

	ped, err := pedigree.ImportFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d individuals: %s", ped.Len(), strings.Join(ped.Names(), ", "))

	if err := pedigree.Validate(ped); err != nil {
		var verr *errors.ValidationError
		if stderrors.As(err, &verr) {
			printError("%s has %d violation(s)", input, len(verr.Violations))
			for _, v := range verr.Violations {
				printDetail("%s: %s", v.Name, v.Message)
			}
			return fmt.Errorf("validation failed")
		}
		return err
	}

	gens := layout.AssignGenerations(ped)
	parts := pedigree.BuildPartnerships(ped)

	printSuccess("%s is valid", input)
	printDetail("%d individuals, %d partnerships, %d generations",
		ped.Len(), len(parts), generationCount(gens))
	printNextStep("Render it", fmt.Sprintf("pedikit render %s", input))
	return nil
}
