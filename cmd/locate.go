package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/zittyzoom/internal/model"
)

var locateToggle bool

// locateResult reports the published location and how it was obtained.
type locateResult struct {
	Location      *model.LocationData `json:"location"`
	UsingDetected bool                `json:"usingDetected"`
	Advisory      string              `json:"advisory,omitempty"`
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve the current location",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runLocate(cmd.Context(), cmd.OutOrStdout(), env, locateToggle || useDefaultLocation)
	},
}

func runLocate(ctx context.Context, out io.Writer, env *clientEnv, toggle bool) error {
	r := env.session.Resolver()
	env.session.Start(ctx)
	if toggle {
		env.session.Toggle(ctx)
	}

	res := locateResult{
		Location:      r.Current(),
		UsingDetected: r.UsingDetected(),
		Advisory:      r.Advisory(),
	}
	return render(out, res, func(out io.Writer) error {
		source := "default"
		if res.UsingDetected {
			source = "detected"
		}
		loc := model.LocationData{}
		if res.Location != nil {
			loc = *res.Location
		}
		lat, lng := loc.Coordinates()
		fmt.Fprintf(out, "%s,%s %s, %s (%s)\n",
			formatCoord(lat), formatCoord(lng),
			orDash(loc.CityName()), orDash(loc.CountryName()), source)
		fprintAdvisory(out, res.Advisory)
		return nil
	})
}

func init() {
	locateCmd.Flags().BoolVar(&locateToggle, "toggle", false, "toggle between detected and default location")
	addClientFlags(locateCmd)
	rootCmd.AddCommand(locateCmd)
}
