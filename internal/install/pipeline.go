package install

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/async"
	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/messages"
)

// Saver persists the installer config before the procedure runs.
type Saver interface {
	Save(cfg *config.InstallerConfig) error
}

// StatusLabel is the surface element that shows the latest status text.
// It is only touched on the presentation goroutine.
type StatusLabel interface {
	SetStatus(text string)
}

// Outcome is the terminal result of a pipeline run.
type Outcome struct {
	Success bool
	Code    int
	Err     error
}

// Pipeline runs the terminal step: save, install, then report the outcome.
type Pipeline struct {
	Store     Saver
	Procedure Procedure
	Presenter async.Presenter
	Bridge    *async.Bridge
	Label     StatusLabel
	Log       log.FieldLogger
}

// Run starts the pipeline in a background task and returns immediately.
// done is invoked on the presentation goroutine exactly once.
func (p *Pipeline) Run(ctx context.Context, cfg *config.InstallerConfig, done func(Outcome)) {
	if done == nil {
		done = func(Outcome) {}
	}
	if p.Procedure == nil {
		p.fail(errors.New(messages.InstallProcedureRequired), done)
		return
	}
	snapshot := cfg.Clone()
	p.bridge().Go(ctx, "install", func(ctx context.Context) error {
		p.save(snapshot)
		code, err := p.Procedure.Install(ctx, snapshot, SinkFunc(p.handle))
		if err != nil {
			return err
		}
		p.finish(code, done)
		return nil
	}, func(err error) {
		p.fail(err, done)
	})
}

func (p *Pipeline) save(cfg *config.InstallerConfig) {
	if p.Store == nil {
		return
	}
	p.logger().Debug(messages.InstallSavingState)
	if err := p.Store.Save(cfg); err != nil {
		p.logger().WithError(err).Error(messages.ConfigSaveStateFailed)
	}
}

func (p *Pipeline) handle(event StatusEvent) {
	logger := p.logger().WithField("stage", event.Stage)
	if event.IsError() {
		logger.WithError(event.Err).Error(event.Message)
	} else {
		logger.Info(event.Message)
	}
	message := event.Message
	p.dispatch(func() {
		p.setStatus(message)
	})
}

func (p *Pipeline) finish(code int, done func(Outcome)) {
	if code == CodeSuccess {
		p.dispatch(func() {
			p.setStatus(messages.InstallSuccess)
			done(Outcome{Success: true, Code: code})
		})
		return
	}
	p.logger().Warnf(messages.InstallFinishedCodeFmt, code)
	p.dispatch(func() {
		done(Outcome{Code: code})
	})
}

func (p *Pipeline) fail(err error, done func(Outcome)) {
	entry := p.logger().WithError(err)
	var pe *async.PanicError
	if errors.As(err, &pe) {
		entry = entry.WithField("stack", string(pe.Stack))
	}
	entry.Error(messages.InstallUnexpectedLog)
	text := fmt.Sprintf(messages.InstallUnexpectedErrFmt, err)
	p.dispatch(func() {
		p.setStatus(text)
		done(Outcome{Code: CodeFailed, Err: err})
	})
}

func (p *Pipeline) setStatus(text string) {
	if p.Label != nil {
		p.Label.SetStatus(text)
	}
}

func (p *Pipeline) dispatch(fn func()) {
	if p.Presenter == nil {
		fn()
		return
	}
	p.Presenter.Dispatch(fn)
}

func (p *Pipeline) bridge() *async.Bridge {
	if p.Bridge == nil {
		p.Bridge = async.NewBridge(p.logger())
	}
	return p.Bridge
}

func (p *Pipeline) logger() log.FieldLogger {
	if p.Log == nil {
		return log.StandardLogger()
	}
	return p.Log
}
