package main

import (
	"fmt"

	"matchbook/internal/fixedpoint"
	"matchbook/internal/simulator"

	"github.com/spf13/cobra"
)

func lockDemoCmd() *cobra.Command {
	var (
		goroutines int
		orders     int
	)

	cmd := &cobra.Command{
		Use:   "lockdemo",
		Short: "Show the conservation invariant breaking without the book mutex",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := simulator.DefaultLockDemoConfig()
			cfg.Goroutines = goroutines
			cfg.OrdersPerGoroutine = orders

			fmt.Println("=== ORDER BOOK RACE CONDITION DEMO ===")
			fmt.Println()

			fmt.Println("--- UNSAFE (no locks) ---")
			printReport(simulator.RunUnsafeDemo(cfg))
			fmt.Println()

			fmt.Println("--- SAFE (with locks) ---")
			printReport(simulator.RunLockedDemo(cfg))
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&goroutines, "goroutines", 10, "Concurrent submitters per side")
	fs.IntVar(&orders, "orders", 1000, "Orders each submitter sends")

	return cmd
}

func printReport(report simulator.LockDemoReport) {
	fmt.Printf("Input qty per side: %s\n", fixedpoint.Format(report.InputQtyPerSide))
	fmt.Printf("Total traded:       %s\n", fixedpoint.Format(report.TotalTraded))
	if report.ReadFault {
		fmt.Println("CRASHED reading book state")
	} else {
		fmt.Printf("Bids remaining:     %s\n", fixedpoint.Format(report.BidsRemaining))
		fmt.Printf("Asks remaining:     %s\n", fixedpoint.Format(report.AsksRemaining))
	}
	fmt.Printf("Faults caught:      %d\n", report.Faults)

	if report.ConservationHolds() {
		fmt.Println("INVARIANT HOLDS - locking works correctly")
	} else {
		fmt.Println("INVARIANT VIOLATED - race conditions detected")
	}
}
