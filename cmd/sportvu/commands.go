package main

import (
	"io"

	"github.com/urfave/cli/v2"

	service "github.com/okian/sportvu/internal/app"
	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/model"
)

// runner carries what every command needs to build its service.
type runner struct {
	cfg  *config.Config
	out  io.Writer
	opts []service.Option
}

func (r *runner) service() *service.Service {
	base := []service.Option{
		service.WithConfig(r.cfg),
		service.WithOutput(r.out),
	}
	return service.New(append(base, r.opts...)...)
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:      "sportvu",
		Usage:     "replay SportVU tracking data and measure team spacing",
		Writer:    r.out,
		ErrWriter: io.Discard,
		// Errors are reported once by main.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			replayCommand(r),
			spacingCommand(r),
			regressCommand(r),
			sampleCommand(r),
			batchCommand(r),
		},
	}
}

// Flags keep parse state, so each command gets its own instances.
func pathFlag() cli.Flag {
	return &cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "game file (.7z or .json)", Required: true}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "team", Usage: "side whose hull is drawn: home or visitor (default from config)"},
		&cli.BoolFlag{Name: "tty", Usage: "play frames in the terminal"},
		&cli.StringFlag{Name: "out", Usage: "directory for one SVG file per frame"},
	}
}

func replayCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "replay one event of a game",
		Flags: append([]cli.Flag{
			pathFlag(),
			&cli.IntFlag{Name: "event", Aliases: []string{"e"}, Usage: "event index"},
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			side, err := parseTeam(c.String("team"))
			if err != nil {
				return err
			}
			_, err = r.service().Replay(c.Context, service.ReplayRequest{
				Path:   c.String("path"),
				Event:  c.Int("event"),
				Side:   side,
				Output: output(c),
			})
			return err
		},
	}
}

func spacingCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "spacing",
		Usage: "pool every event of a game and report team spacing",
		Flags: append([]cli.Flag{
			pathFlag(),
			&cli.StringFlag{Name: "chart", Usage: "SVG file for the defensive spacing bar chart"},
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			side, err := parseTeam(c.String("team"))
			if err != nil {
				return err
			}
			req := service.SpacingRequest{
				Path:  c.String("path"),
				Side:  side,
				Chart: c.String("chart"),
			}
			// A chart alone is a complete report; otherwise play something.
			if req.Chart == "" || c.Bool("tty") || c.String("out") != "" {
				req.Output = output(c)
			}
			_, err = r.service().Spacing(c.Context, req)
			return err
		},
	}
}

func regressCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "regress",
		Usage: "fit score differential against spacing differential",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "path", Aliases: []string{"p"}, Usage: "game file, repeatable", Required: true},
			&cli.StringFlag{Name: "plot", Usage: "SVG file for the scatter plot"},
		},
		Action: func(c *cli.Context) error {
			_, err := r.service().Regress(c.Context, service.RegressRequest{
				Paths: c.StringSlice("path"),
				Plot:  c.String("plot"),
			})
			return err
		},
	}
}

func sampleCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "print the event count and the first events of a game",
		Flags: []cli.Flag{
			pathFlag(),
			&cli.IntFlag{Name: "num_events", Aliases: []string{"n"}, Value: 1, Usage: "events to print"},
		},
		Action: func(c *cli.Context) error {
			return r.service().Sample(c.Context, c.String("path"), c.Int("num_events"))
		},
	}
}

func batchCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "rank teams by opponent defensive spacing over a manifest of games",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "YAML manifest of games", Required: true},
			&cli.StringFlag{Name: "chart", Usage: "SVG file for the ranking bar chart"},
		},
		Action: func(c *cli.Context) error {
			_, err := r.service().Batch(c.Context, service.BatchRequest{
				Manifest: c.String("manifest"),
				Chart:    c.String("chart"),
			})
			return err
		},
	}
}

// output defaults to the terminal when no frame directory is given.
func output(c *cli.Context) service.Output {
	o := service.Output{TTY: c.Bool("tty"), Dir: c.String("out")}
	if o.Dir == "" {
		o.TTY = true
	}
	return o
}

func parseTeam(s string) (model.Side, error) {
	if s == "" {
		return "", nil
	}
	return model.ParseSide(s)
}
