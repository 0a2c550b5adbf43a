package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bryanwahyu/scanbridge/internal/application"
	appai "github.com/bryanwahyu/scanbridge/internal/application/ai"
	appscans "github.com/bryanwahyu/scanbridge/internal/application/scans"
	"github.com/bryanwahyu/scanbridge/internal/config"
	aiopenai "github.com/bryanwahyu/scanbridge/internal/infra/ai/openai"
	"github.com/bryanwahyu/scanbridge/internal/infra/codescanning"
	"github.com/bryanwahyu/scanbridge/internal/infra/ghactions"
	"github.com/bryanwahyu/scanbridge/internal/infra/scanclient"
	minioStore "github.com/bryanwahyu/scanbridge/internal/infra/storage"
)

func main() {
	// .env convenience untuk run lokal; di runner semua sudah ada di env
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	gctx := ghactions.FromEnv()

	cfg, err := config.Load()
	if err != nil {
		emitter := ghactions.NewEmitter(false)
		emitter.Fail(err)
		os.Exit(1)
	}
	emitter := ghactions.NewEmitter(cfg.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := &appscans.Service{
		Client: scanclient.New(cfg.ServerURL, cfg.Token, cfg.OrgID),
		Clock:  application.SystemClock{},
	}

	if cfg.GitHubToken != "" && gctx.Owner != "" {
		svc.Publisher = codescanning.NewPublisher(
			gctx.APIBase, cfg.GitHubToken, gctx.Owner, gctx.Repo, gctx.CommitSHA, gctx.Ref)
	}

	if cfg.Mirror.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Mirror.Endpoint,
			cfg.Mirror.Region,
			cfg.Mirror.Bucket,
			cfg.Mirror.AccessKey,
			cfg.Mirror.SecretKey,
			cfg.Mirror.UseSSL,
		)
		if err != nil {
			// mirror is convenience only, never fatal
			log.Printf("warning: artifact mirror unavailable: %v", err)
		} else {
			svc.Artifacts = store
		}
	}

	if cfg.AI.APIKey != "" {
		svc.Summarizer = appai.NewService(aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model))
	}

	outputs, err := svc.Run(ctx, appscans.RunCommand{
		Org:                cfg.OrgID,
		RepoURL:            cfg.RepoURL,
		Branch:             cfg.Branch,
		Wait:               cfg.Wait,
		TimeoutSec:         cfg.TimeoutSec,
		PollIntervalSec:    cfg.PollIntervalSec,
		OutputFormat:       cfg.OutputFormat,
		OutputFile:         cfg.OutputFile,
		ServerURL:          cfg.ServerURL,
		UploadSARIF:        cfg.UploadSARIF,
		FailOnCritical:     cfg.FailOnCritical,
		FailOnHigh:         cfg.FailOnHigh,
		MaxViolations:      cfg.MaxViolations,
		SkipImportIfExists: cfg.SkipImportIfExists,
		Verbose:            cfg.Verbose,
		Actor:              gctx.Actor,
		Workflow:           gctx.Workflow,
		RunID:              gctx.RunID,
		EventName:          gctx.EventName,
		CommitSHA:          gctx.CommitSHA,
	})

	// threshold breaches still come with outputs; emit them before failing
	if outputs != nil {
		if emitErr := emitter.Emit(outputs); emitErr != nil {
			log.Printf("warning: could not write step outputs: %v", emitErr)
		}
	}
	if err != nil {
		emitter.Fail(err)
		os.Exit(1)
	}
}
