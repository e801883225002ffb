// One-shot converter: turn a local Schoology export into rendered forms and
// a results log, without running the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/config"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/convert"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/forms"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/logger"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/results"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

func main() {
	var (
		archivePath = flag.String("archive", "", "path to the exported .zip (required)")
		outDir      = flag.String("out", "./forms-out", "directory for rendered forms")
		logPath     = flag.String("log", "./conversion-log.csv", "results CSV path")
	)
	flag.Parse()
	if *archivePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	blob, err := os.ReadFile(*archivePath)
	if err != nil {
		log.Fatalf("read archive: %v", err)
	}

	bs, err := storage.NewFSStore(*outDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	store, err := results.NewCSVStore(*logPath)
	if err != nil {
		log.Fatalf("results log: %v", err)
	}

	ctx := context.Background()
	svc := convert.New(storage.NewWorkspace(cfg.WorkspacePath), zl)
	res, err := svc.Convert(ctx, blob)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	formSvc := forms.NewLocalService(bs)
	created := 0
	for _, quiz := range res.Quizzes {
		rec, err := formSvc.CreateForm(ctx, quiz)
		if err != nil {
			zl.Error("form creation failed", zap.String("quiz", quiz.ID), zap.Error(err))
			continue
		}
		if err := store.Append(ctx, results.RowFromRecord(rec)); err != nil {
			zl.Error("result log append failed", zap.String("form", rec.FormID), zap.Error(err))
		}
		created++
		fmt.Printf("%-30s %3d questions  %s\n", quiz.Title, rec.QuestionCount, rec.ViewURL)
	}

	for _, o := range res.Outcomes {
		if o.Kind != "" {
			fmt.Printf("%-30s degraded to placeholder (%s)\n", o.Title, o.Kind)
		}
	}
	fmt.Printf("%d/%d quizzes converted to forms\n", created, len(res.Quizzes))
}
