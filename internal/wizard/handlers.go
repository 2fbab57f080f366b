package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/hinstaller/internal/install"
	"github.com/conn-castle/hinstaller/internal/manifest"
	"github.com/conn-castle/hinstaller/internal/messages"
)

// stepHandler renders a step and advances the queue when the step is complete.
// A returned error is classified by Controller.handleStepError.
type stepHandler func(c *Controller) error

const (
	versionLatest   = "latest"
	versionPrevious = "previous"
)

var expandPathFunc = homedir.Expand

func defaultHandlers() map[StepKind]stepHandler {
	return map[StepKind]stepHandler{
		StepLoading:    loadingStep,
		StepWelcome:    welcomeStep,
		StepSettings:   settingsStep,
		StepVersion:    versionStep,
		StepAddons:     addonsStep,
		StepTerms:      termsStep,
		StepPrivacy:    privacyStep,
		StepInstalling: installingStep,
	}
}

// loadingStep waits for the startup rendezvous, which advances the queue.
func loadingStep(c *Controller) error {
	body := messages.WizardLoadingBody
	if c.opts.Local {
		body = messages.WizardLoadingSettings
	}
	c.surface.Section(messages.WizardLoadingTitle, body)
	return nil
}

func welcomeStep(c *Controller) error {
	if err := c.ui.Note(messages.WizardWelcomeTitle, messages.WizardWelcomeBody); err != nil {
		return err
	}
	c.advance()
	return nil
}

func settingsStep(c *Controller) error {
	c.surface.Section(messages.WizardSettingsTitle, "")
	dir := c.cfg.InstallDir
	if dir == "" {
		dir = c.opts.DefaultInstallDir
	}
	if err := c.ui.Input(messages.WizardInstallDirPrompt, &dir); err != nil {
		return err
	}
	expanded, err := expandPathFunc(strings.TrimSpace(dir))
	if err != nil {
		return fmt.Errorf(messages.WizardExpandDirFmt, dir, err)
	}

	createProfile := c.cfg.CreateProfile
	if err := c.ui.Confirm(messages.WizardCreateProfilePrompt, &createProfile); err != nil {
		return err
	}

	c.cfg.InstallDir = filepath.Clean(expanded)
	c.cfg.CreateProfile = createProfile
	c.advance()
	return nil
}

// versionStep offers the fetched manifest and the previous selection.
// Without a manifest it falls back to the previous selection or the local build.
func versionStep(c *Controller) error {
	c.surface.Section(messages.WizardVersionTitle, "")
	previous := c.cfg.PreviousVersion
	if c.manifest == nil {
		if err := c.ui.Note(messages.WizardVersionOfflineTitle, messages.WizardVersionOfflineBody); err != nil {
			return err
		}
		if previous != nil {
			c.cfg.Version = previous.Clone()
		} else {
			c.cfg.Version = manifest.Local()
		}
		c.advance()
		return nil
	}

	choices := []Choice{{
		Label: fmt.Sprintf(messages.WizardVersionLatestFmt, c.manifest.Label()),
		Value: versionLatest,
	}}
	if previous != nil && !previous.IsLocal() && !previous.Equal(c.manifest) {
		choices = append(choices, Choice{
			Label: fmt.Sprintf(messages.WizardVersionPreviousFmt, previous.Label()),
			Value: versionPrevious,
		})
	}
	selected := versionLatest
	if err := c.ui.Select(messages.WizardVersionPrompt, choices, &selected); err != nil {
		return err
	}

	if selected == versionPrevious && previous != nil {
		c.cfg.Version = previous.Clone()
	} else {
		c.cfg.Version = c.manifest.Clone()
	}
	c.advance()
	return nil
}

// addonsStep drops unknown addons carried over from older state, then prompts.
func addonsStep(c *Controller) error {
	c.surface.Section(messages.WizardAddonsTitle, "")
	known, dropped := install.FilterAddons(c.cfg.Addons)
	for _, err := range dropped {
		c.log.Warnf(messages.WizardAddonDroppedFmt, err)
		c.surface.SetStatus(fmt.Sprintf(messages.WizardAddonDroppedFmt, err))
	}

	catalog := install.Addons()
	choices := make([]Choice, len(catalog))
	for i, a := range catalog {
		choices[i] = Choice{Label: a.Name + " - " + a.Description, Value: a.ID}
	}
	selected := known
	if err := c.ui.MultiSelect(messages.WizardAddonsPrompt, choices, &selected); err != nil {
		return err
	}
	c.cfg.Addons = selected
	c.advance()
	return nil
}

func termsStep(c *Controller) error {
	c.surface.Section(messages.WizardTermsTitle, "")
	accepted := c.cfg.AcceptedTerms
	if err := c.ui.Confirm(messages.WizardTermsPrompt, &accepted); err != nil {
		return err
	}
	if !accepted {
		exit := true
		if err := c.ui.Confirm(messages.WizardTermsExitPrompt, &exit); err != nil {
			return err
		}
		if exit {
			return ErrTermsDeclined
		}
		return errRepeatStep
	}
	c.cfg.AcceptedTerms = true
	c.advance()
	return nil
}

func privacyStep(c *Controller) error {
	if err := c.ui.Note(messages.WizardPrivacyTitle, messages.WizardPrivacyBody); err != nil {
		return err
	}
	c.advance()
	return nil
}

// installingStep is terminal: it hands the config to the pipeline and never advances.
func installingStep(c *Controller) error {
	c.surface.Section(messages.WizardInstallingTitle, "")
	pipeline := &install.Pipeline{
		Store:     c.store,
		Procedure: c.procedure,
		Presenter: c.presenter,
		Bridge:    c.bridge,
		Label:     c.surface,
		Log:       c.log,
	}
	pipeline.Run(c.ctx, c.cfg, c.onInstalled)
	return nil
}

func (c *Controller) onInstalled(outcome install.Outcome) {
	if outcome.Success {
		c.surface.Section(messages.WizardDoneTitle, "")
		c.surface.Success(fmt.Sprintf(messages.WizardDoneBodyFmt, c.cfg.InstallDir, c.opts.LogPath))
		c.finish(nil)
		return
	}
	c.surface.Failure(messages.WizardInstallFailed)
	if outcome.Err != nil {
		c.finish(fmt.Errorf(messages.WizardInstallErrFmt, ErrInstallFailed, outcome.Err))
		return
	}
	c.finish(fmt.Errorf(messages.WizardInstallCodeFmt, ErrInstallFailed, outcome.Code))
}
