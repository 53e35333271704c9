package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/internal/places"
	"github.com/sells-group/zittyzoom/internal/session"
)

type searchOptions struct {
	category   string
	selectN    int
	useDefault bool
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search places near the current location",
	Long:  "Runs a free-text or category search around the detected location. With no query and no category the default query is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		searchOpts.useDefault = useDefaultLocation
		return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env, strings.Join(args, " "), searchOpts)
	},
}

// startLocation resolves the session location and applies --default-location.
func startLocation(ctx context.Context, errOut io.Writer, env *clientEnv, useDefault bool) model.LocationData {
	r := env.session.Resolver()
	loc := env.session.Start(ctx)
	if useDefault && r.UsingDetected() {
		env.session.Toggle(ctx)
		if cur := r.Current(); cur != nil {
			loc = *cur
		}
	}
	fprintAdvisory(errOut, r.Advisory())
	return loc
}

func runSearch(ctx context.Context, out, errOut io.Writer, env *clientEnv, query string, opts searchOptions) error {
	loc := startLocation(ctx, errOut, env, opts.useDefault)
	orch := env.session.Orchestrator()

	var st places.State
	switch {
	case opts.category != "":
		keyword := opts.category
		if c, ok := model.LookupCategory(opts.category); ok {
			keyword = c.Keyword
		}
		st = orch.SelectCategory(ctx, keyword, &loc)
	case strings.TrimSpace(query) == "":
		st = env.session.Rerun(ctx, &loc)
	default:
		var at []places.SearchOption
		if loc.HasCoordinates() {
			lat, lng := loc.Coordinates()
			at = append(at, places.WithCoordinates(lat, lng))
		}
		st = orch.SearchByQuery(ctx, query, at...)
	}

	if st.Status == places.StatusError {
		return eris.New(st.Message)
	}
	fprintAdvisory(errOut, st.Message)

	if opts.selectN > 0 {
		if opts.selectN > len(st.Results) {
			return eris.Errorf("search: --select %d out of range (%d results)", opts.selectN, len(st.Results))
		}
		orch.SelectPlace(&st.Results[opts.selectN-1])
	}

	view := env.session.View()
	return render(out, view, func(w io.Writer) error {
		return writeView(w, view)
	})
}

func writeView(out io.Writer, v session.View) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tVICINITY\tRATING\tTYPES\tLAT,LNG")
	fmt.Fprintln(w, "\t----\t--------\t------\t-----\t-------")

	for _, p := range v.PlaceList {
		marker := ""
		if v.SelectedPlaceID != "" && v.SelectedPlaceID == p.PlaceID {
			marker = "*"
		}
		rating := "-"
		if p.Rating != nil {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s,%s\n",
			marker,
			truncate(p.Name, 40),
			truncate(orDash(p.Vicinity), 50),
			rating,
			typeLabels(p.Types, 3),
			formatCoord(p.Geometry.Location.Lat),
			formatCoord(p.Geometry.Location.Lng),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if v.MapCenter != nil {
		fmt.Fprintf(out, "\ncenter: %s,%s\n", formatCoord(v.MapCenter.Lat), formatCoord(v.MapCenter.Lng))
	}
	fmt.Fprintf(out, "%d place(s)\n", len(v.PlaceList))
	return nil
}

func init() {
	searchCmd.Flags().StringVar(&searchOpts.category, "category", "", "search a category by keyword or name (see categories)")
	searchCmd.Flags().IntVar(&searchOpts.selectN, "select", 0, "select the Nth result and center on it")
	addClientFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
