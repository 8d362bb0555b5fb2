package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vietddude/bizday/internal/control"
	"github.com/vietddude/bizday/internal/core/calendar"
	"github.com/vietddude/bizday/internal/core/logging"
	"github.com/vietddude/bizday/internal/infra/store"
)

var (
	seedTable  string
	seedRegion string
)

var seedCmd = &cobra.Command{
	Use:   "seed [year...]",
	Short: "Write national holidays for the given years into a holiday table",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTable, "table", "", "holiday table name")
	seedCmd.Flags().StringVar(&seedRegion, "region", "", "store region (default from config)")
	_ = seedCmd.MarkFlagRequired("table")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	years := make([]int, 0, len(args))
	for _, a := range args {
		y, err := strconv.Atoi(a)
		if err != nil || y < 1 {
			fmt.Printf("Invalid year: %s\n", a)
			os.Exit(1)
		}
		years = append(years, y)
	}

	cfg := loadConfig()
	if seedRegion == "" {
		seedRegion = cfg.Store.Region
	}

	log := logging.ForProcess("seed")
	ctx := context.Background()
	backend, err := control.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = backend.Close()
	}()

	n, err := seedHolidays(ctx, backend, seedTable, seedRegion, cfg.Registry.DateAttribute, years)
	if err != nil {
		log.Error("Failed to seed holidays", "error", err, "written", n)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d holidays to %s/%s\n", n, seedRegion, seedTable)
}

// seedHolidays writes one item per national holiday and returns how many
// were written before any error.
func seedHolidays(ctx context.Context, p store.Putter, table, region, dateAttr string, years []int) (int, error) {
	n := 0
	for _, y := range years {
		for _, h := range calendar.NationalHolidays(y) {
			item := store.Item{dateAttr: h.Date.String(), "nome": h.Name}
			if err := p.Put(ctx, table, region, item); err != nil {
				return n, fmt.Errorf("put %s: %w", h.Date, err)
			}
			n++
		}
	}
	return n, nil
}
