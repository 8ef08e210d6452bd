// Package main implements the radacct CLI, grounded on
// marmos91-dittofs/cmd/dittofs/commands's single-root-command-with-flags
// wiring style, collapsed to one command since the CLI surface (spec 6.3)
// has no subcommands, only a flat set of flags.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mrodriguez-lopez/radacct/acctconfig"
	"github.com/mrodriguez-lopez/radacct/acctlog"
	"github.com/mrodriguez-lopez/radacct/acctmetrics"
	"github.com/mrodriguez-lopez/radacct/radclient"
	"github.com/mrodriguez-lopez/radacct/radiuscore"
)

var (
	flagDestination string
	flagSecret      string
	flagStart       bool
	flagStop        bool
	flagInterim     bool
	flagRestart     bool
	flagUsername    string
	flagIMSI        string
	flagIMEI        string
	flagFramedIP    string
	flagCallingID   string
	flagCalledID    string
	flagAVPs        []string
	flagDelay       float64
	flagClean       bool
	flagPath        string
	flagVerbose     bool
	flagMetricsAddr string
)

var rootCmd = &cobra.Command{
	Use:           "radacct",
	Short:         "RADIUS accounting session management tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagDestination, "destination", "d", "", "ip of radius endpoint")
	flags.StringVarP(&flagSecret, "secret", "p", "", "radius secret")
	flags.BoolVarP(&flagStart, "start", "S", false, "start session")
	flags.BoolVarP(&flagStop, "stop", "T", false, "stop session")
	flags.BoolVarP(&flagInterim, "interim", "I", false, "send interim update")
	flags.BoolVarP(&flagRestart, "restart", "R", false, "restart session")
	flags.StringVarP(&flagUsername, "username", "u", "", "username")
	flags.StringVarP(&flagIMSI, "imsi", "i", "", "subscriber imsi")
	flags.StringVarP(&flagIMEI, "imei", "t", "", "subscriber imei")
	flags.StringVarP(&flagFramedIP, "framed-ip", "f", "", "framed ip, optionally /mask")
	flags.StringVarP(&flagCallingID, "calling-id", "c", "", "3GPP calling id")
	flags.StringVarP(&flagCalledID, "called-id", "C", "", "3GPP called id")
	flags.StringArrayVarP(&flagAVPs, "avp", "a", nil, "add an avp name=value (can be repeated)")
	flags.Float64VarP(&flagDelay, "delay", "D", 0, "delay between stopping and starting in restart mode")
	flags.BoolVarP(&flagClean, "clean", "L", false, "clean the cached configuration")
	flags.StringVarP(&flagPath, "path", "P", "", "path to the dictionary files")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&flagMetricsAddr, "metrics-addr", "", "expose prometheus metrics on this address (e.g. :9090) while sending")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveAction applies spec 6.3's mutual-exclusion rule: of -S/-T/-I/-R,
// whichever was given last on the command line wins. With SortFlags off,
// pflag's Visit walks the set flags in the order each was first given on
// the command line (rather than sorted by name), so the last one processed
// here is authoritative.
func resolveAction(cmd *cobra.Command, fallback acctconfig.Action) acctconfig.Action {
	action := fallback
	flags := cmd.Flags()
	flags.SortFlags = false
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "start":
			action = acctconfig.Start
		case "stop":
			action = acctconfig.Stop
		case "interim":
			action = acctconfig.Interim
		case "restart":
			action = acctconfig.Restart
		}
	})
	return action
}

func run(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		acctlog.SetVerbose(true)
	}
	log := acctlog.GetLogger()

	var metrics *acctmetrics.Metrics
	if flagMetricsAddr != "" {
		metrics = acctmetrics.New()
		go func() {
			if err := metrics.ServeHTTP(flagMetricsAddr); err != nil {
				log.Errorw("metrics server stopped", "error", err)
			}
		}()
		log.Debugw("metrics exporter listening", "addr", flagMetricsAddr)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	if flagClean {
		if err := acctconfig.RemoveCached(workDir); err != nil {
			return fmt.Errorf("cleaning cached configuration: %w", err)
		}
		log.Debugw("cache cleaned")
	}

	settings := acctconfig.Default()
	if cached, found, err := acctconfig.LoadCached(workDir); err != nil {
		return fmt.Errorf("loading cached configuration: %w", err)
	} else if found {
		log.Debugw("cache found, loading")
		settings = cached
	}

	applyFlags(&settings)

	extraAVPs, err := parseExtraAVPs(flagAVPs)
	if err != nil {
		return err
	}
	if len(extraAVPs) > 0 {
		settings.ExtraAVPs = extraAVPs
	}

	action := resolveAction(cmd, settings.Action)
	settings.Action = action

	log.Debugw("session action", "action", actionName(action))

	radiuscore.Configure(settings.DictPath, settings.DictFile)
	dict, err := radiuscore.GlobalDictionary()
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}

	if action == acctconfig.Restart {
		if err := sendEvent(dict, settings, acctconfig.Stop, log, metrics); err != nil {
			return err
		}
		time.Sleep(settings.Delay)
		if err := sendEvent(dict, settings, acctconfig.Start, log, metrics); err != nil {
			return err
		}
	} else {
		if err := sendEvent(dict, settings, action, log, metrics); err != nil {
			return err
		}
	}

	log.Debugw("caching configuration for future use")
	if err := acctconfig.SaveCached(workDir, settings); err != nil {
		return fmt.Errorf("saving cached configuration: %w", err)
	}

	return nil
}

func sendEvent(dict *radiuscore.Dictionary, settings acctconfig.Settings, action acctconfig.Action, log *zap.SugaredLogger, metrics *acctmetrics.Metrics) error {
	msg, err := acctconfig.BuildMessage(dict, settings, action)
	if err != nil {
		return fmt.Errorf("building %s request: %w", actionName(action), err)
	}
	if metrics != nil {
		metrics.AVPsBuilt.Add(float64(len(msg.AVPs)))
	}

	packet, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", actionName(action), err)
	}

	if err := radclient.Send(settings.RadiusDest, settings.RadiusPort, packet); err != nil {
		if metrics != nil {
			metrics.SendErrors.WithLabelValues(actionName(action)).Inc()
		}
		return fmt.Errorf("sending %s request: %w", actionName(action), err)
	}
	if metrics != nil {
		metrics.PacketsSent.WithLabelValues(actionName(action)).Inc()
		metrics.BytesSent.Add(float64(len(packet)))
	}
	log.Debugw("sent accounting request", "action", actionName(action), "bytes", len(packet))
	return nil
}

func actionName(a acctconfig.Action) string {
	switch a {
	case acctconfig.Start:
		return "start"
	case acctconfig.Stop:
		return "stop"
	case acctconfig.Interim:
		return "interim-update"
	case acctconfig.Restart:
		return "restart"
	default:
		return "unknown"
	}
}

func applyFlags(s *acctconfig.Settings) {
	if flagDestination != "" {
		s.RadiusDest = flagDestination
	}
	if flagSecret != "" {
		s.RadiusSecret = flagSecret
	}
	if flagUsername != "" {
		s.Username = flagUsername
	}
	if flagIMSI != "" {
		s.IMSI = flagIMSI
	}
	if flagIMEI != "" {
		s.IMEI = flagIMEI
	}
	if flagFramedIP != "" {
		ip := flagFramedIP
		if idx := strings.IndexByte(ip, '/'); idx >= 0 {
			maskPart := ip[idx+1:]
			ip = ip[:idx]
			if mask, err := strconv.Atoi(maskPart); err == nil {
				if mask > 128 {
					mask = 128
				}
				s.FramedMask = mask
			}
		}
		s.FramedIP = ip
	}
	if flagCallingID != "" {
		s.CallingID = flagCallingID
	}
	if flagCalledID != "" {
		s.CalledID = flagCalledID
	}
	if flagDelay > 0 {
		s.Delay = time.Duration(flagDelay * float64(time.Second))
	}
	if flagPath != "" {
		s.DictPath = flagPath
	}
}

func parseExtraAVPs(raw []string) ([]acctconfig.ExtraAVP, error) {
	avps := make([]acctconfig.ExtraAVP, 0, len(raw))
	for _, entry := range raw {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid avp format %q, expected name=value", entry)
		}
		avps = append(avps, acctconfig.ExtraAVP{Name: name, Literal: value})
	}
	return avps, nil
}
