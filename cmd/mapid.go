package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var mapIDCmd = &cobra.Command{
	Use:   "mapid",
	Short: "Print the map identifier the gateway hands to front ends",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newClientEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		id, err := env.gw.MapID(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "mapid")
		}
		return render(cmd.OutOrStdout(), map[string]string{"mapId": id}, func(out io.Writer) error {
			_, err := fmt.Fprintln(out, id)
			return err
		})
	},
}

func init() {
	addClientFlags(mapIDCmd)
	rootCmd.AddCommand(mapIDCmd)
}
