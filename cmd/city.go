package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/model"
)

var (
	cityName    string
	cityCountry string
)

// cityInfo is the city panel: history, a hero image and things to do.
// Failed sections are left empty and listed in Unavailable.
type cityInfo struct {
	City        string           `json:"city"`
	Country     string           `json:"country"`
	History     string           `json:"history"`
	ImageURL    string           `json:"imageUrl"`
	Activities  []model.Activity `json:"activities"`
	Unavailable []string         `json:"unavailable,omitempty"`
}

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "Show history, an image and activities for a city",
	Long:  "Shows the city panel for --city/--country, or for the resolved location when omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runCity(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env, cityName, cityCountry)
	},
}

func runCity(ctx context.Context, out, errOut io.Writer, env *clientEnv, city, country string) error {
	if city == "" {
		loc := startLocation(ctx, errOut, env, useDefaultLocation)
		city, country = loc.CityName(), loc.CountryName()
	}
	if city == "" {
		return eris.New("city: could not resolve a city; pass --city")
	}

	info := cityInfo{City: city, Country: country, Activities: []model.Activity{}}

	if h, err := env.gw.CityHistory(ctx, city, country); err != nil {
		zap.L().Debug("city: history unavailable", zap.String("city", city), zap.Error(err))
		info.Unavailable = append(info.Unavailable, "history")
	} else {
		info.History = h
	}
	if img, err := env.gw.CityImage(ctx, city, country); err != nil {
		zap.L().Debug("city: image unavailable", zap.String("city", city), zap.Error(err))
		info.Unavailable = append(info.Unavailable, "image")
	} else {
		info.ImageURL = img
	}
	if acts, err := env.gw.CityActivities(ctx, city, country); err != nil {
		zap.L().Debug("city: activities unavailable", zap.String("city", city), zap.Error(err))
		info.Unavailable = append(info.Unavailable, "activities")
	} else if acts != nil {
		info.Activities = acts
	}

	return render(out, info, func(out io.Writer) error {
		return writeCity(out, info)
	})
}

func writeCity(out io.Writer, info cityInfo) error {
	title := info.City
	if info.Country != "" {
		title += ", " + info.Country
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "History: %s\n", orDash(info.History))
	fmt.Fprintf(out, "Image:   %s\n", orDash(info.ImageURL))

	if len(info.Activities) > 0 {
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ACTIVITY\tOPEN\tHOURS")
		fmt.Fprintln(w, "--------\t----\t-----")
		for _, a := range info.Activities {
			open := "-"
			if a.OpenNow != nil {
				open = "no"
				if *a.OpenNow {
					open = "yes"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(a.Name, 40), open, truncate(a.Hours, 60))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, u := range info.Unavailable {
		fmt.Fprintf(out, "\n%s unavailable", u)
	}
	if len(info.Unavailable) > 0 {
		fmt.Fprintln(out)
	}
	return nil
}

func init() {
	cityCmd.Flags().StringVar(&cityName, "city", "", "city name (default: resolved location)")
	cityCmd.Flags().StringVar(&cityCountry, "country", "", "country name")
	addClientFlags(cityCmd)
	rootCmd.AddCommand(cityCmd)
}
