package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// sampleCount is the number of leading serial numbers shown by `space`.
const sampleCount = 5

// spaceCommand creates the space command for inspecting a permutation space.
func (c *CLI) spaceCommand() *cobra.Command {
	var sf spaceFlags

	cmd := &cobra.Command{
		Use:   "space",
		Short: "Inspect a serial number space",
		Long: `Inspect a serial number space.

A space holds every combination of sign and per-slot shim counts:
2 * shims^slots serial numbers. A seeded linear congruential generator
visits all of them exactly once, so consecutive indices map to visually
unrelated serial numbers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSpace(c.resolveSpace(cmd, sf))
		},
	}
	addSpaceFlags(cmd, &sf)
	return cmd
}

func (c *CLI) runSpace(sp serial.Space) error {
	if err := sp.Validate(); err != nil {
		return err
	}
	size, err := sp.Size()
	if err != nil {
		return err
	}

	printKeyValue("shims (x)", strconv.FormatUint(sp.X, 10))
	printKeyValue("slots (y)", strconv.FormatUint(sp.Y, 10))
	printKeyValue("seed", strconv.FormatUint(sp.Seed, 10))
	printKeyValue("size", strconv.FormatUint(size, 10))
	printKeyValue("generator", fmt.Sprintf("(%d*index + %d) mod %d", 2*sp.X+1, sp.Increment(), size))
	printNewline()

	printInfo("First serial numbers")
	for i := uint64(0); i < min(sampleCount, size); i++ {
		n, err := sp.At(i)
		if err != nil {
			return err
		}
		printDetail("%6d  %s", i, n)
	}
	printNewline()
	printNextStep("Export the space", fmt.Sprintf("%s export -x %d -y %d --seed %d", appName, sp.X, sp.Y, sp.Seed))
	return nil
}
