package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current weather at the resolved location",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runWeather(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env)
	},
}

func runWeather(ctx context.Context, out, errOut io.Writer, env *clientEnv) error {
	loc := startLocation(ctx, errOut, env, useDefaultLocation)
	if !loc.HasCoordinates() {
		return eris.New("weather: no location available")
	}
	lat, lng := loc.Coordinates()

	wx, err := env.gw.Weather(ctx, lat, lng)
	if err != nil {
		return eris.Wrap(err, "weather")
	}

	return render(out, wx, func(out io.Writer) error {
		_, err := fmt.Fprintf(out, "%s: %d°C, %s\n", wx.City, wx.TempC, wx.Description)
		return err
	})
}

func init() {
	addClientFlags(weatherCmd)
	rootCmd.AddCommand(weatherCmd)
}
