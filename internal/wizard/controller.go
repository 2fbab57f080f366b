package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/async"
	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/install"
	"github.com/conn-castle/hinstaller/internal/manifest"
	"github.com/conn-castle/hinstaller/internal/messages"
)

var (
	errWizardBack      = errors.New("wizard back requested")
	errWizardCancelled = errors.New("wizard cancelled")
	errRepeatStep      = errors.New("repeat step")

	// ErrCancelled is returned when the user aborts a prompt with Ctrl+C.
	ErrCancelled = errors.New(messages.WizardCancelled)
	// ErrExited is returned when the user confirms leaving the wizard.
	ErrExited = errors.New(messages.WizardExited)
	// ErrTermsDeclined is returned when the user declines the terms and exits.
	ErrTermsDeclined = errors.New(messages.WizardTermsDeclined)
	// ErrInstallFailed wraps every failed install outcome.
	ErrInstallFailed = errors.New(messages.WizardInstallFailed)
)

// IsUserExit reports whether err means the user left without installing.
func IsUserExit(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, ErrExited) || errors.Is(err, ErrTermsDeclined)
}

// Surface is the screen the wizard renders status onto.
type Surface interface {
	Open(title string)
	SetStatus(text string)
	Section(title string, body string)
	Success(text string)
	Failure(text string)
}

// StateStore loads and persists the InstallerConfig.
type StateStore interface {
	Load() *config.InstallerConfig
	Save(cfg *config.InstallerConfig) error
}

// ManifestFetcher retrieves the latest version manifest.
type ManifestFetcher interface {
	Fetch(ctx context.Context) (*manifest.VersionManifest, error)
}

// Options are the per-run wizard settings.
type Options struct {
	// Local skips the manifest fetch and version selection.
	Local bool
	// DefaultInstallDir is offered when no previous install directory exists.
	DefaultInstallDir string
	// LogPath is shown on the done screen.
	LogPath string
}

// Deps are the collaborators a Controller drives.
type Deps struct {
	UI        UI
	Surface   Surface
	Store     StateStore
	Fetcher   ManifestFetcher
	Procedure install.Procedure
	Log       log.FieldLogger
	// Presenter overrides the presentation loop. Run requires the default loop.
	Presenter async.Presenter
}

// Controller owns the InstallerConfig and drives the step queue.
// Everything except the background tasks runs on the presentation goroutine.
type Controller struct {
	opts      Options
	ui        UI
	surface   Surface
	store     StateStore
	fetcher   ManifestFetcher
	procedure install.Procedure
	log       log.FieldLogger

	loop      *async.Loop
	presenter async.Presenter
	bridge    *async.Bridge
	handlers  map[StepKind]stepHandler

	ctx        context.Context
	cfg        *config.InstallerConfig
	manifest   *manifest.VersionManifest
	queue      *Queue
	rendezvous *Rendezvous

	finishOnce sync.Once
	result     error
	finished   chan struct{}
}

// New builds a Controller. Nothing runs until Start or Run.
func New(opts Options, deps Deps) *Controller {
	logger := deps.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	c := &Controller{
		opts:      opts,
		ui:        deps.UI,
		surface:   deps.Surface,
		store:     deps.Store,
		fetcher:   deps.Fetcher,
		procedure: deps.Procedure,
		log:       logger,
		bridge:    async.NewBridge(logger),
		handlers:  defaultHandlers(),
		finished:  make(chan struct{}),
	}
	if deps.Presenter != nil {
		c.presenter = deps.Presenter
	} else {
		c.loop = async.NewLoop(logger)
		c.presenter = c.loop
	}
	return c
}

// Run starts the wizard and drives the presentation loop on the calling goroutine
// until the run finishes or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	if c.loop == nil {
		return errors.New(messages.WizardRunNeedsLoop)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.Start(ctx)
	loopErr := c.loop.Run(ctx)
	cancel()
	c.bridge.Wait()

	select {
	case <-c.finished:
		return c.result
	default:
		return loopErr
	}
}

// Start loads state, starts the manifest fetch and schedules the first step.
func (c *Controller) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.log.Infof(messages.WizardStartingFmt, c.opts.Local)

	c.log.Debug(messages.WizardLoadingSettings)
	c.cfg = c.loadConfig()
	if c.opts.Local {
		c.cfg.Version = manifest.Local()
	}

	c.queue = NewQueue(BuildSteps(c.opts.Local), c.presenter, c.activate)
	c.rendezvous = NewRendezvous(func() {
		c.log.Debug(messages.WizardRendezvousReady)
		c.queue.Advance()
	})

	c.presenter.Dispatch(func() {
		c.log.Debug(messages.WizardOpeningSurface)
		c.surface.Open(messages.WizardScreenTitle)
		c.queue.Advance()
		c.rendezvous.Arrive(PartySurface)
	})

	if c.opts.Local || c.fetcher == nil {
		c.rendezvous.Arrive(PartyManifest)
		return
	}
	c.log.Debug(messages.ManifestLoading)
	c.bridge.Go(ctx, "manifest", func(ctx context.Context) error {
		m, err := c.fetcher.Fetch(ctx)
		if err != nil {
			return err
		}
		c.presenter.Dispatch(func() { c.onManifest(m, nil) })
		return nil
	}, func(err error) {
		c.presenter.Dispatch(func() { c.onManifest(nil, err) })
	})
}

// Config returns the live InstallerConfig. Only read it on the presentation goroutine.
func (c *Controller) Config() *config.InstallerConfig {
	return c.cfg
}

// Manifest returns the fetched manifest, or nil when unavailable.
func (c *Controller) Manifest() *manifest.VersionManifest {
	return c.manifest
}

// Queue returns the step queue built by Start.
func (c *Controller) Queue() *Queue {
	return c.queue
}

// Done is closed once the run has a result.
func (c *Controller) Done() <-chan struct{} {
	return c.finished
}

// Result returns the run result after Done is closed.
func (c *Controller) Result() error {
	select {
	case <-c.finished:
		return c.result
	default:
		return nil
	}
}

func (c *Controller) loadConfig() *config.InstallerConfig {
	if c.store == nil {
		return config.NewInstallerConfig()
	}
	cfg := c.store.Load()
	if cfg == nil {
		return config.NewInstallerConfig()
	}
	return cfg
}

func (c *Controller) onManifest(m *manifest.VersionManifest, err error) {
	if err != nil {
		c.log.WithError(err).Warn(messages.ManifestLoadFailed)
	} else {
		c.manifest = m
		c.log.Infof(messages.ManifestLoadedFmt, m.ID, m.Build)
	}
	c.rendezvous.Arrive(PartyManifest)
}

func (c *Controller) advance() {
	c.queue.Advance()
}

func (c *Controller) activate(step StepKind) {
	if c.isFinished() {
		return
	}
	handler, ok := c.handlers[step]
	if !ok {
		c.finish(fmt.Errorf(messages.WizardUnknownStepFmt, step))
		return
	}
	c.log.WithField("step", step.String()).Debugf(messages.WizardStepActivatedFmt, step)
	if err := handler(c); err != nil {
		c.handleStepError(step, err)
	}
}

func (c *Controller) handleStepError(step StepKind, err error) {
	switch {
	case errors.Is(err, errRepeatStep):
		c.repeat(step)
	case errors.Is(err, errWizardCancelled):
		c.finish(ErrCancelled)
	case errors.Is(err, errWizardBack):
		exit := false
		if confirmErr := c.ui.Confirm(messages.WizardExitPrompt, &exit); confirmErr != nil {
			if errors.Is(confirmErr, errWizardBack) {
				c.repeat(step)
				return
			}
			if errors.Is(confirmErr, errWizardCancelled) {
				c.finish(ErrCancelled)
				return
			}
			c.finish(confirmErr)
			return
		}
		if exit {
			c.finish(ErrExited)
			return
		}
		c.repeat(step)
	default:
		c.finish(err)
	}
}

func (c *Controller) repeat(step StepKind) {
	c.presenter.Dispatch(func() { c.activate(step) })
}

func (c *Controller) isFinished() bool {
	select {
	case <-c.finished:
		return true
	default:
		return false
	}
}

// finish records the run result once and stops the presentation loop.
func (c *Controller) finish(err error) {
	c.finishOnce.Do(func() {
		c.result = err
		c.log.Infof(messages.WizardFinishedFmt, err)
		close(c.finished)
		if c.loop != nil {
			c.loop.Stop()
		}
	})
}
