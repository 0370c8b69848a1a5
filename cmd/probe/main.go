package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Goden-Gun/httpcall-lib/pkg/apiclient"
	"github.com/Goden-Gun/httpcall-lib/pkg/auth"
	"github.com/Goden-Gun/httpcall-lib/pkg/bootstrap"
	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &probeConfig{}
	secrets := []config.SecretDefinition{
		{Name: "PROBE_REDIS_PASSWORD", Target: &cfg.Redis.Password},
		{Name: "PROBE_KAFKA_PASSWORD", Target: &cfg.Kafka.Password},
	}
	if err := config.LoadConfigWithSecrets(cfg, secrets, config.LoadOptions{EnvPrefix: "PROBE", AllowNoConfig: true}); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.App.Env = config.GetEnv()

	if err := bootstrap.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	reporter, closeReporter, err := bootstrap.InitReporter(cfg.Report, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("init reporter: %w", err)
	}
	defer func() { _ = closeReporter() }()

	session, closeSession, err := bootstrap.InitSession(ctx, cfg.Session, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	defer func() { _ = closeSession() }()
	if token := config.GetSecretOrEnv("PROBE_ACCESS_TOKEN", ""); token != "" {
		if err := session.SetToken(ctx, token); err != nil {
			log.WithError(err).Warn("ignoring access token")
		}
	}

	reauth := auth.NewReauthRule(session,
		auth.WithReauthCodes(cfg.Session.ReauthCodes...),
		auth.WithOnExpired(func(ctx context.Context, code codes.ReturnCode, _ string) {
			log.WithTrace(ctx).WithField("return_code", code.String()).Warn("session expired, sign in again")
		}),
	)
	clientOpts := []apiclient.Option{
		apiclient.WithRules(reauth),
		apiclient.WithMiddleware(auth.BearerMiddleware(session)),
		apiclient.WithReporter(reporter),
	}
	if cfg.Report.IncludeBody {
		clientOpts = append(clientOpts, apiclient.WithReportBody(cfg.Report.MaxBodyBytes))
	}
	client, err := apiclient.New(cfg.HTTP, clientOpts...)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	path := "/"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	display, err := apiclient.ParseDisplay(os.Getenv("PROBE_DISPLAY"))
	if err != nil {
		return err
	}
	if display == apiclient.DisplayNone {
		display = apiclient.DisplayReplace
	}

	bus := viewchange.NewBus()
	defer bus.Close()
	sub, err := bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	screen := viewchange.NewScreen(consoleView{})
	defer screen.Release()

	var data json.RawMessage
	resp, callErr := client.Get(ctx, path,
		apiclient.WithDisplay(display),
		apiclient.WithEmitter(bus),
		apiclient.WithProgressMessage("Loading "+path),
		apiclient.WithResult(&data),
		apiclient.WithEmpty("Nothing here yet", nil),
		apiclient.WithRetry(func() { fmt.Println("(retry requested)") }),
	)

	for {
		e, ok := sub.TryNext()
		if !ok {
			break
		}
		screen.Dispatch(e)
	}

	fmt.Printf("outcome=%s status=%d request_id=%s\n", resp.Kind, resp.HTTPStatus, resp.RequestID)
	if len(data) > 0 {
		fmt.Println(string(data))
	}
	if callErr != nil && !resp.Handled {
		return callErr
	}
	return nil
}
