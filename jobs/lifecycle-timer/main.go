package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/batch"
)

func main() {
	slog.Info("Starting lifecycle timer job")
	start := time.Now()

	reports := batch.RunAllJobs(time.Now())
	for _, report := range reports {
		if report.FailedCount > 0 {
			errs := make([]string, len(report.Errors))
			for i, itemErr := range report.Errors {
				errs[i] = itemErr.AppID + ": " + itemErr.Error
			}
			slog.Error("Lifecycle check finished with errors",
				slog.String("check", report.Name),
				slog.Int("processed", report.Count),
				slog.Int("failed", report.FailedCount),
				slog.String("errors", strings.Join(errs, "; ")),
			)
			continue
		}
		slog.Info("Lifecycle check finished",
			slog.String("check", report.Name),
			slog.Int("processed", report.Count),
		)
	}

	slog.Info("Lifecycle timer job completed", slog.String("duration", time.Since(start).String()))
}
