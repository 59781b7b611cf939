package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/config"
	"github.com/luckyjian/my/internal/result"
	"github.com/luckyjian/my/internal/sntp"
)

// newTimeCmds returns the time-facing commands. date is purely local;
// time and datetime synchronize against the configured NTP server and fail
// the whole command when synchronization fails — a time reading without a
// measured offset is not silently passed off as a synchronized one.
func newTimeCmds(cfg *config.Config, format *result.Format) []*cobra.Command {
	date := &cobra.Command{
		Use:   "date",
		Short: "Find out the current date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeResult(cmd, *format, "date", result.NewDate(time.Now()))
		},
	}

	timeCmd := &cobra.Command{
		Use:   "time",
		Short: "Find out the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, offset, err := syncedTime(cmd.Context(), cfg)
			if err != nil {
				return writeFailure(cmd, *format, "time", err)
			}
			return writeResult(cmd, *format, "time", result.NewTime(now, offset))
		},
	}

	datetime := &cobra.Command{
		Use:   "datetime",
		Short: "Find out the current date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, offset, err := syncedTime(cmd.Context(), cfg)
			if err != nil {
				return writeFailure(cmd, *format, "datetime", err)
			}
			return writeResult(cmd, *format, "datetime", result.DateTime{
				Date: result.NewDate(now),
				Time: result.NewTime(now, offset),
			})
		},
	}

	return []*cobra.Command{date, timeCmd, datetime}
}

// syncedTime obtains the server's current time in the local zone, along with
// the measured clock offset in seconds. The engine performs one round trip
// per call; this is the one place allowed to call it again, up to the
// configured attempt bound, with every attempt logged.
func syncedTime(ctx context.Context, cfg *config.Config) (time.Time, float64, error) {
	client := sntp.NewClient(cfg.NTP.Server, cfg.NTP.Timeout)

	var lastErr error
	for attempt := 1; attempt <= cfg.NTP.Attempts; attempt++ {
		log.Debug().
			Str("server", cfg.NTP.Server).
			Int("attempt", attempt).
			Int("max_attempts", cfg.NTP.Attempts).
			Msg("clock synchronization")

		sample, err := client.Exchange(ctx)
		if err == nil {
			return sample.Time().Local(), sample.Offset().Seconds(), nil
		}
		lastErr = err
		log.Debug().Err(err).Int("attempt", attempt).Msg("clock synchronization failed")
	}
	return time.Time{}, 0, lastErr
}
