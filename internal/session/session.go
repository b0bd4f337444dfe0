// Package session replays scripts against an integer red-black tree,
// checking invariants and drawing the tree as it goes.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/relistan/go-director"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/AlonMell/redblack/internal/config"
	"github.com/AlonMell/redblack/internal/rbtree"
	"github.com/AlonMell/redblack/internal/render"
	"github.com/AlonMell/redblack/internal/script"
)

// Summary counts the outcomes of a replay.
type Summary struct {
	Inserted   int
	Duplicates int
	Deleted    int
	Missing    int
	Cleared    int
}

func (s *Summary) add(o script.Outcome) {
	switch {
	case o.Entry.Op == script.OpClear:
		s.Cleared++
	case o.Entry.Op == script.OpInsert && o.Applied:
		s.Inserted++
	case o.Entry.Op == script.OpInsert:
		s.Duplicates++
	case o.Applied:
		s.Deleted++
	default:
		s.Missing++
	}
}

// Session owns one tree. Scripts replayed on the same session build on
// each other.
type Session struct {
	ID string

	tree *rbtree.Tree[int]
	cfg  *config.Config
	out  io.Writer
	log  *logrus.Entry
}

// New creates a session writing rendered trees to out.
func New(cfg *config.Config, out io.Writer, log *logrus.Logger) *Session {
	id := uuid.NewV4().String()
	return &Session{
		ID:   id,
		tree: rbtree.New[int](),
		cfg:  cfg,
		out:  out,
		log:  log.WithField("session", id),
	}
}

// Tree returns the session tree.
func (s *Session) Tree() *rbtree.Tree[int] { return s.tree }

// Run replays sc one entry per tick of the configured interval. It stops
// at the first invariant violation, render failure or when ctx is done.
func (s *Session) Run(ctx context.Context, sc *script.Script) (Summary, error) {
	var summary Summary
	llog := s.log.WithField("script", sc.Name)

	if sc.Len() == 0 {
		llog.Warn("script is empty")
		if s.cfg.Render {
			return summary, s.draw()
		}
		return summary, nil
	}

	llog.WithField("entries", sc.Len()).Debug("replaying script")

	var (
		looper director.Looper
		next   int
	)
	if s.cfg.Interval > 0 {
		looper = director.NewTimedLooper(sc.Len(), s.cfg.Interval, make(chan error, 1))
	} else {
		looper = director.NewFreeLooper(sc.Len(), make(chan error, 1))
	}

	looper.Loop(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e := sc.Entries[next]
		next++

		outcome := script.Apply(s.tree, e)
		summary.add(outcome)

		llog.WithFields(logrus.Fields{
			"op":      e.Op.String(),
			"key":     e.Key,
			"line":    e.Line,
			"applied": outcome.Applied,
			"size":    s.tree.Len(),
			"height":  s.tree.Height(),
		}).Info(outcome.String())

		if s.cfg.Verify {
			if err := s.tree.Verify(); err != nil {
				return errors.Wrapf(err, "after %q", e.String())
			}
		}

		if s.cfg.RenderSteps {
			if _, err := fmt.Fprintf(s.out, "-- %s\n", outcome); err != nil {
				return errors.Wrap(err, "failed to write step header")
			}
			return s.draw()
		}
		return nil
	})

	if err := looper.Wait(); err != nil {
		return summary, errors.Wrapf(err, "replay of %s stopped", sc.Name)
	}

	llog.WithFields(logrus.Fields{
		"inserted":   summary.Inserted,
		"duplicates": summary.Duplicates,
		"deleted":    summary.Deleted,
		"missing":    summary.Missing,
		"cleared":    summary.Cleared,
	}).Info("script replayed")

	if s.cfg.Render && !s.cfg.RenderSteps {
		return summary, s.draw()
	}
	return summary, nil
}

func (s *Session) draw() error {
	if err := render.Write(s.out, s.tree.Root(), render.Options{ANSI: s.cfg.ANSI}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "size=%d height=%d black-height=%d\n",
		s.tree.Len(), s.tree.Height(), s.tree.BlackHeight())
	return errors.Wrap(err, "failed to write tree summary")
}
