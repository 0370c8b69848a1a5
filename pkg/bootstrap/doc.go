// Package bootstrap wires the ambient infrastructure a client process needs
// before it makes calls:
//   - Logger setup with optional file rotation
//   - Redis connection for shared session storage
//   - OpenTelemetry tracing
//   - Failure reporter (log or Kafka)
//
// Example usage:
//
//	func main() {
//	    cfg := &ProbeConfig{}
//	    if err := config.LoadConfig(cfg); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    if err := bootstrap.InitLoggerWithFile(cfg.Log, "probe"); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
//	    if err != nil {
//	        log.Warn(err)
//	    }
//	    defer shutdown(ctx)
//
//	    reporter, closeReporter, err := bootstrap.InitReporter(cfg.Report, cfg.Kafka)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer closeReporter()
//	}
package bootstrap
