package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/LJTian/HeadlineHub/internal/config"
	"github.com/LJTian/HeadlineHub/internal/export"
	"github.com/LJTian/HeadlineHub/internal/logger"
	"github.com/LJTian/HeadlineHub/internal/processor"
	"github.com/LJTian/HeadlineHub/internal/service"
	"github.com/spf13/cobra"
)

// 一个仅执行一次抽取的命令行入口：打印表格，可选导出 CSV
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		sources []string
		csvPath string
		english bool
		list    bool
	)

	cmd := &cobra.Command{
		Use:          "collect",
		Short:        "Extract headlines from the built-in news sources once",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			reg := collector.DefaultRegistry()
			if list {
				for _, n := range reg.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine := collector.NewEngine(collector.NewCollyFetcher(cfg.FetchTimeout, cfg.UserAgent), lg)
			svc := service.New(reg, engine, processor.NewSimpleProcessor(processor.Options{Dedupe: cfg.Dedupe}), nil, 0, lg)

			res, err := svc.Headlines(ctx, sources)
			if err != nil {
				return fmt.Errorf("available sources: %s: %w", strings.Join(reg.Names(), ", "), err)
			}

			header := export.SpanishHeader
			if english {
				header = export.EnglishHeader
			}
			export.RenderTable(cmd.OutOrStdout(), res, header)

			if csvPath == "" {
				return nil
			}
			if err := writeCSVFile(csvPath, res.Headlines, header); err != nil {
				return err
			}
			lg.Info("csv written", "path", csvPath, "rows", len(res.Headlines))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&sources, "sources", "s", nil, "comma-separated source names (default: all)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the table to this CSV file")
	cmd.Flags().BoolVar(&english, "english", false, "use English column labels")
	cmd.Flags().BoolVar(&list, "list", false, "list source names and exit")
	return cmd
}

func writeCSVFile(path string, table collector.ResultTable, header export.Header) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, table, header); err != nil {
		_ = f.Close()
		return err
	}
	// 关闭失败意味着数据可能没有落盘
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
