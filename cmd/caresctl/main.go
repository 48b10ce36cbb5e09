// Command caresctl is a small diagnostic CLI around the caresgo query
// engine: it submits one lookup, logs the outcome with a per-query
// request id, and, when -metrics-addr is set, exposes the channel's
// query metrics on an HTTP endpoint for the duration of the run.
package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/caresgo/caresgo/channel"
	"github.com/caresgo/caresgo/internal/hostent"
	"github.com/caresgo/caresgo/internal/metrics"
	"github.com/caresgo/caresgo/internal/transport"
)

func main() {
	name := flag.String("name", "example.com", "hostname to resolve")
	server := flag.String("server", "8.8.8.8", "nameserver to query")
	timeout := flag.Duration("timeout", 2*time.Second, "per-query timeout")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics here for the run's duration")
	logLevel := flag.String("log-level", "info", "log level: debug/info/warn/error")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch *logLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if kv := transport.KernelVersion(); kv != "" {
		log.Debug().Str("kernel", kv).Msg("host kernel")
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics server exited")
			}
		}()
		defer srv.Close()
	}

	ch, err := channel.New(
		channel.WithServers(*server),
		channel.WithTimeout(*timeout),
		channel.WithMetrics(rec),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create channel")
	}
	defer ch.Destroy()

	requestID := uuid.New().String()
	logger := log.With().Str("request_id", requestID).Str("name", *name).Logger()

	done := make(chan struct{})
	err = ch.GetHostByName(*name, syscall.AF_INET, func(status int, timeouts int, host *hostent.Hostent) {
		defer close(done)
		if host == nil {
			logger.Warn().Int("status", status).Int("timeouts", timeouts).Msg("lookup failed")
			return
		}
		for _, addr := range host.Addrs {
			logger.Info().Str("addr", net.IP(addr).String()).Msg("resolved")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("submit query")
	}

	logger.Debug().Msg("driving channel")
	drive(ch, done)
}

// drive busy-polls Fds/Process until done fires; a production caller
// should build this around the platform's own select/poll/epoll loop
// instead.
func drive(ch *channel.Channel, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		readFds, writeFds, _ := ch.Fds()
		ch.Process(toSet(readFds), toSet(writeFds))
		time.Sleep(5 * time.Millisecond)
	}
}

func toSet(fds []int) map[int]bool {
	set := make(map[int]bool, len(fds))
	for _, fd := range fds {
		set[fd] = true
	}
	return set
}
