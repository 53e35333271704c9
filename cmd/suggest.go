package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/zittyzoom/internal/places"
)

var suggestChoose int

var suggestCmd = &cobra.Command{
	Use:   "suggest <input...>",
	Short: "Autocomplete a place search",
	Long:  "Lists autocomplete predictions biased to the current location. With --choose N the Nth prediction is searched using the same session token.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runSuggest(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env, strings.Join(args, " "), suggestChoose)
	},
}

func runSuggest(ctx context.Context, out, errOut io.Writer, env *clientEnv, input string, choose int) error {
	loc := startLocation(ctx, errOut, env, useDefaultLocation)
	orch := env.session.Orchestrator()

	var lat, lng *float64
	if loc.HasCoordinates() {
		lat, lng = loc.Lat, loc.Lng
	}

	preds, err := orch.Suggest(ctx, input, lat, lng)
	if err != nil {
		return eris.Wrap(err, "suggest")
	}

	if choose <= 0 {
		return render(out, preds, func(out io.Writer) error {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tDESCRIPTION\tPLACE ID")
			fmt.Fprintln(w, "-\t-----------\t--------")
			for i, p := range preds {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, truncate(p.Description, 60), p.PlaceID)
			}
			return w.Flush()
		})
	}

	if choose > len(preds) {
		return eris.Errorf("suggest: --choose %d out of range (%d predictions)", choose, len(preds))
	}

	var opts []places.SearchOption
	if lat != nil && lng != nil {
		opts = append(opts, places.WithCoordinates(*lat, *lng))
	}
	st := orch.ChooseSuggestion(ctx, preds[choose-1], opts...)
	if st.Status == places.StatusError {
		return eris.New(st.Message)
	}
	fprintAdvisory(errOut, st.Message)

	view := env.session.View()
	return render(out, view, func(w io.Writer) error {
		return writeView(w, view)
	})
}

func init() {
	suggestCmd.Flags().IntVar(&suggestChoose, "choose", 0, "search the Nth prediction")
	addClientFlags(suggestCmd)
	rootCmd.AddCommand(suggestCmd)
}
