package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/bizday/internal/businessday"
	"github.com/vietddude/bizday/internal/control"
	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/core/logging"
	"github.com/vietddude/bizday/internal/core/validation"
	"github.com/vietddude/bizday/internal/registry"
)

var (
	nextTable    string
	nextRegion   string
	nextDecendio bool
)

var nextCmd = &cobra.Command{
	Use:   "next [date] [day_count]",
	Short: "Print the business day day_count business days after date",
	Args:  cobra.ExactArgs(2),
	Run:   runNext,
}

func init() {
	nextCmd.Flags().StringVar(&nextTable, "table", "", "holiday table name")
	nextCmd.Flags().StringVar(&nextRegion, "region", "", "store region (default from config)")
	nextCmd.Flags().BoolVar(&nextDecendio, "decendio", false, "align the result to the next decendio")
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if nextRegion == "" {
		nextRegion = cfg.Store.Region
	}

	log := logging.ForProcess("next")
	ctx := context.Background()
	backend, err := control.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = backend.Close()
	}()

	mode := businessday.ModeNext
	if nextDecendio {
		mode = businessday.ModeDecendio
	}

	svc := businessday.NewService(registry.New(backend, cfg.Registry))
	result, err := svc.Calculate(ctx, validation.Input{
		Date:      args[0],
		DayCount:  args[1],
		TableName: nextTable,
		Region:    nextRegion,
	}, mode)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			out, _ := json.Marshal(derr)
			fmt.Fprintln(os.Stderr, string(out))
		} else {
			log.Error("Calculation failed", "error", err)
		}
		os.Exit(1)
	}

	fmt.Println(result)
}
