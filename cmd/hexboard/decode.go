package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/boardurl"
	"github.com/talgya/hexboard/internal/engine"
)

var (
	decodeCorners        bool
	decodeStyle          string
	decodeResourceOnPort bool
)

func init() {
	decodeCmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Rebuild a board from its token",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().BoolVar(&decodeCorners, "corners", false, "List the best corners with their score notes")
	decodeCmd.Flags().StringVar(&decodeStyle, "style", string(engine.StyleStandard), "Game style to score for")
	decodeCmd.Flags().BoolVar(&decodeResourceOnPort, "resource-on-port", false, "Score hexes that produce their own port's resource")

	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(args[0])
	b, err := boardurl.Deserialize(token)
	if err != nil {
		return err
	}
	opts := engine.DefaultOptions()
	if opts.GameStyle, err = engine.ParseGameStyle(decodeStyle); err != nil {
		return err
	}
	opts.AllowResourceOnPort = decodeResourceOnPort
	quality := engine.Evaluate(b, opts, settings.EngineConfig().BestSpotWeight)

	fmt.Printf("%s (%s)\n", b.Spec.Name, b.Shape())
	fmt.Printf("Quality: %.2f\n", quality)
	if boardurl.HasCustomPorts(token) {
		fmt.Printf("Ports:   %s (custom)\n\n", describePorts(b))
	} else {
		fmt.Printf("Ports:   %s\n\n", describePorts(b))
	}
	fmt.Println(renderBoard(b))

	if decodeCorners {
		corners := append(b.Corners()[:0:0], b.Corners()...)
		sortCornersByScore(corners)
		for i, c := range corners {
			if i == 5 || c.Score == 0 {
				break
			}
			fmt.Printf("%v  %.2f\n", c.Coord, c.Score)
			for _, note := range strings.Split(c.Notes, "\n") {
				if note != "" {
					fmt.Printf("    %s\n", note)
				}
			}
		}
	}
	return nil
}
