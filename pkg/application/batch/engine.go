package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	appdb "github.com/icgc-argo/dac-api-sub000/pkg/db/application"
	"go.mongodb.org/mongo-driver/bson"
)

const processingChunkSize = 20

var (
	applicationDBService *appdb.ApplicationDBService
	lifecycleConfig      types.LifecycleConfig
)

func Init(
	appDB *appdb.ApplicationDBService,
	cfg types.LifecycleConfig,
) {
	applicationDBService = appDB
	lifecycleConfig = cfg
}

// runCheck loads all candidates for one check and processes them in chunks
// with one goroutine per item. Every item is attempted, failures are
// collected rather than aborting the run.
func runCheck(name string, filter bson.M, process func(app types.Application) error) JobReport {
	report := JobReport{Name: name}

	count, err := applicationDBService.CountApplications(filter)
	if err != nil {
		slog.Error("batch check could not count candidates", slog.String("check", name), slog.String("error", err.Error()))
		report.FailedCount = 1
		report.Errors = append(report.Errors, JobItemError{Error: err.Error()})
		return report
	}
	if count == 0 {
		return report
	}

	var candidates []types.Application
	err = applicationDBService.FindAndExecuteOnApplications(context.Background(), filter, false, func(app types.Application) error {
		candidates = append(candidates, app)
		return nil
	})
	if err != nil {
		slog.Error("batch check could not load candidates", slog.String("check", name), slog.String("error", err.Error()))
		report.FailedCount = 1
		report.Errors = append(report.Errors, JobItemError{Error: err.Error()})
		return report
	}

	var mu sync.Mutex
	for start := 0; start < len(candidates); start += processingChunkSize {
		end := start + processingChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}

		var wg sync.WaitGroup
		for _, app := range candidates[start:end] {
			wg.Add(1)
			go func(app types.Application) {
				defer wg.Done()
				err := processItem(name, app, process)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.FailedCount++
					report.Errors = append(report.Errors, JobItemError{AppID: app.AppID, Error: err.Error()})
					return
				}
				report.Count++
				report.IDs = append(report.IDs, app.AppID)
			}(app)
		}
		wg.Wait()
	}

	slog.Info("batch check finished",
		slog.String("check", name),
		slog.Int("processed", report.Count),
		slog.Int("failed", report.FailedCount))
	return report
}

func processItem(checkName string, app types.Application, process func(app types.Application) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while processing application",
				slog.String("check", checkName),
				slog.String("appId", app.AppID))
			err = fmt.Errorf("panic while processing %s: %v", app.AppID, r)
		}
	}()
	return process(app)
}
