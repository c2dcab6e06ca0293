package main

import (
	"os"

	"github.com/EvilPatrick06/battlemap/internal/server"
	"github.com/EvilPatrick06/battlemap/pkg/logger"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/spf13/cobra"
)

func init() {
	logger.Init()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "battlemap",
		Short: "Tactical grid engine for vision, lighting, and movement",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(pathCmd())
	rootCmd.AddCommand(reachCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a battle map without printing overlays",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func snapshotCmd() *cobra.Command {
	var ascii bool

	cmd := &cobra.Command{
		Use:   "snapshot [project-path]",
		Short: "Compute the vision, lighting, and movement overlays",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSnapshot(args[0], ascii)
		},
	}

	cmd.Flags().BoolVar(&ascii, "ascii", false, "render party vision as an ASCII grid")
	return cmd
}

func pathCmd() *cobra.Command {
	var (
		from   string
		to     string
		budget float64
		ascii  bool
	)

	cmd := &cobra.Command{
		Use:   "path [project-path]",
		Short: "Find the cheapest route between two cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPath(args[0], from, to, budget, ascii)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start cell as x,y")
	cmd.Flags().StringVar(&to, "to", "", "goal cell as x,y")
	cmd.Flags().Float64Var(&budget, "budget", pathfind.NoBudget, "movement budget in feet (negative for unlimited)")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "render the route as an ASCII grid")
	return cmd
}

func reachCmd() *cobra.Command {
	var (
		token  string
		from   string
		budget float64
	)

	cmd := &cobra.Command{
		Use:   "reach [project-path]",
		Short: "List every cell reachable within a movement budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runReach(args[0], token, from, budget)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token id to move (origin and speed come from the map)")
	cmd.Flags().StringVar(&from, "from", "", "origin cell as x,y when no token is given")
	cmd.Flags().Float64Var(&budget, "budget", pathfind.NoBudget, "movement budget in feet (default: token speed)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local table server with live websocket updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv, err := server.New(args[0], port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
