// cmd/toyotomi-dump/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/pulse"
)

var commands = map[string]protocol.Word{
	"power-off":     protocol.CommandPowerOff,
	"air-direction": protocol.CommandAirDirection,
	"swing":         protocol.CommandSwing,
	"clean-air":     protocol.CommandCleanAir,
	"led":           protocol.CommandLEDDisplay,
	"turbo":         protocol.CommandTurbo,
}

type options struct {
	temperature int
	mode        string
	fan         string
	timerOn     string
	timerOff    string
	command     string
	powerOn     bool
	noRepeat    bool
	noHeader    bool
	noColor     bool
	verbose     bool
}

func main() {
	var o options

	flag.IntVar(&o.temperature, "temp", protocol.DefaultTemperature, "set point in degrees Celsius (clamped to 17-30)")
	flag.StringVar(&o.mode, "mode", "auto", "auto, cool, dry, heat or fan")
	flag.StringVar(&o.fan, "fan", "default", "none, default, low, medium or high")
	flag.StringVar(&o.timerOn, "timer-on", "off", "on-timer delay, e.g. 1h30m")
	flag.StringVar(&o.timerOff, "timer-off", "off", "off-timer delay, e.g. 8h")
	flag.StringVar(&o.command, "command", "", "send a fixed command instead: "+strings.Join(commandNames(), ", "))
	flag.BoolVar(&o.powerOn, "power-on", false, "encode the power-on frame (timers ignored)")
	flag.BoolVar(&o.noRepeat, "no-repeat", false, "emit the frame once")
	flag.BoolVar(&o.noHeader, "no-header", false, "omit the header burst (implies -no-repeat)")
	flag.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	flag.BoolVar(&o.verbose, "v", false, "log pulse trains to stderr")
	flag.Parse()

	if o.noColor {
		color.NoColor = true
	}

	if err := run(os.Stdout, o); err != nil {
		fmt.Fprintf(os.Stderr, "toyotomi-dump: %v\n", err)
		os.Exit(1)
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// buildFrame resolves the flags into the frame to dump and whether the
// remote would repeat it.
func buildFrame(o options) (protocol.Frame, bool, error) {
	repeat := !o.noRepeat && !o.noHeader

	if o.command != "" {
		w, ok := commands[o.command]
		if !ok {
			return protocol.Frame{}, false, fmt.Errorf("unknown command %q", o.command)
		}
		// the remote never repeats air-direction
		if w == protocol.CommandAirDirection {
			repeat = false
		}
		return protocol.CommandFrame(w), repeat, nil
	}

	mode, err := protocol.ParseMode(o.mode)
	if err != nil {
		return protocol.Frame{}, false, err
	}
	fan, err := protocol.ParseFanSpeed(o.fan)
	if err != nil {
		return protocol.Frame{}, false, err
	}
	timerOn, err := protocol.ParseTimer(o.timerOn)
	if err != nil {
		return protocol.Frame{}, false, err
	}
	timerOff, err := protocol.ParseTimer(o.timerOff)
	if err != nil {
		return protocol.Frame{}, false, err
	}
	if timerOn.Active() && timerOn == timerOff {
		return protocol.Frame{}, false, errors.New("on and off timers must differ")
	}

	s := protocol.State{
		Temperature: protocol.ClampTemperature(o.temperature),
		Mode:        mode,
		FanSpeed:    fan,
		TimerOn:     timerOn,
		TimerOff:    timerOff,
	}
	if !mode.AllowsFanControl() {
		s.FanSpeed = protocol.FanNone
	} else if fan == protocol.FanNone {
		s.FanSpeed = protocol.FanDefault
	}
	if mode == protocol.ModeFan {
		s.Temperature = protocol.NoTemperature
	}

	if o.powerOn {
		return protocol.ComposePowerOn(s), repeat, nil
	}
	return protocol.Compose(s), repeat, nil
}

func run(w io.Writer, o options) error {
	frame, repeat, err := buildFrame(o)
	if err != nil {
		return err
	}

	bits := frame.Bits()

	train := pulse.BuildTrain(bits, repeat)
	if o.noHeader {
		train = pulse.BuildTrainNoHeader(bits)
	}

	label := color.New(color.Bold).SprintFunc()
	normal := color.New(color.FgCyan).SprintFunc()
	inverted := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %s / %s\n", label("frame   "), normal(frame.Normal.String()), inverted(frame.Inverted.String()))
	fmt.Fprintf(w, "%s %s\n", label("bits    "), protocol.FormatBits(bits))
	fmt.Fprintf(w, "%s %d marks, %s, repeat=%t\n", label("train   "), train.Marks(), train.Duration(), repeat)

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tx := pulse.NewTransmitter(pulse.NewDumpDriver(w), logger)
	if o.noHeader {
		return tx.TransmitNoHeader(bits)
	}
	return tx.Transmit(bits, repeat)
}
