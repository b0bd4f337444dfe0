// Command rbtree replays insert/delete scripts against a red-black tree
// and prints the tree after checking its invariants.
//
//	rbtree run ops.txt           # replay a script file
//	rbtree run < ops.txt         # or stdin
//	rbtree scenario 3            # replay a canned scenario
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlonMell/redblack/internal/config"
	"github.com/AlonMell/redblack/internal/script"
	"github.com/AlonMell/redblack/internal/session"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	root, err := newRootCmd(ctx, log, os.Stdin, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("failed to set up command")
	}
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("rbtree failed")
		os.Exit(1)
	}
}

func newRootCmd(ctx context.Context, log *logrus.Logger, stdin io.Reader, stdout io.Writer) (*cobra.Command, error) {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "rbtree",
		Short:         "Replay operations against a red-black tree",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if err := config.Bind(root, v); err != nil {
		return nil, err
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run [file...]",
			Short: "Replay script files, or stdin when none are given",
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := newSession(v, log, stdout)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					args = []string{"-"}
				}
				for _, path := range args {
					sc, err := readScript(path, stdin)
					if err != nil {
						return err
					}
					if _, err := s.Run(ctx, sc); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "scenario <n>",
			Short: fmt.Sprintf("Replay canned scenario n (0-%d)", script.Scenarios()-1),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrapf(script.ErrUnknownScenario, "%q", args[0])
				}
				sc, err := script.Scenario(n)
				if err != nil {
					return err
				}
				s, err := newSession(v, log, stdout)
				if err != nil {
					return err
				}
				_, err = s.Run(ctx, sc)
				return err
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(stdout, version)
				return err
			},
		},
	)

	return root, nil
}

func newSession(v *viper.Viper, log *logrus.Logger, out io.Writer) (*session.Session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.Level())
	return session.New(cfg, out, log), nil
}

func readScript(path string, stdin io.Reader) (*script.Script, error) {
	if path == "-" {
		return script.Parse("stdin", stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open script %s", path)
	}
	defer f.Close()

	return script.Parse(path, f)
}
