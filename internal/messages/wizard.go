package messages

// Wizard screen titles, prompts and errors.
const (
	WizardRequiresTerminal   = "wizard requires an interactive terminal"
	WizardFormFailedFmt      = "wizard form failed: %w"
	WizardStartingFmt        = "Starting installer (local=%t)..."
	WizardLoadingSettings    = "Loading previous settings..."
	WizardOpeningSurface     = "Initialising screen..."
	WizardUnknownStepFmt     = "no handler registered for step %s"
	WizardExitWithoutInstall = "Exiting without installing."
	WizardCancelled          = "wizard cancelled"
	WizardTermsDeclined      = "terms of service were not accepted"
	WizardInstallFailed      = "installation failed"
	WizardStepActivatedFmt   = "Activating step %s"
	WizardRendezvousReady    = "Manifest and screen ready"
	WizardFinishedFmt        = "Wizard finished: %v"
	WizardScreenTitle        = "Client Installer"
	WizardRunNeedsLoop       = "wizard run requires the presentation loop"
	WizardExited             = "installer exited by user"
	WizardInstallCodeFmt     = "%w (code %d)"
	WizardInstallErrFmt      = "%w: %w"
	WizardExpandDirFmt       = "expand install directory %s: %w"

	WizardLoadingTitle = "Loading"
	WizardLoadingBody  = "Fetching the latest version information..."

	WizardWelcomeTitle = "Welcome"
	WizardWelcomeBody  = "This wizard installs the client on this machine.\n\nYou will choose an install location, a version and optional addons before anything is written to disk."

	WizardSettingsTitle       = "Settings"
	WizardInstallDirPrompt    = "Install directory"
	WizardCreateProfilePrompt = "Create a launcher profile?"

	WizardVersionTitle        = "Version"
	WizardVersionPrompt       = "Which version do you want to install?"
	WizardVersionLatestFmt    = "Latest: %s"
	WizardVersionPreviousFmt  = "Previously installed: %s"
	WizardVersionOfflineTitle = "Offline"
	WizardVersionOfflineBody  = "The version manifest could not be loaded. The previous selection or the local build will be used."

	WizardAddonsTitle     = "Addons"
	WizardAddonsPrompt    = "Select the addons to install"
	WizardAddonDroppedFmt = "Dropping addon from previous settings: %v"

	WizardTermsTitle      = "Terms of Service"
	WizardTermsPrompt     = "Do you accept the terms of service?"
	WizardTermsExitPrompt = "The terms must be accepted to install. Exit the installer?"

	WizardPrivacyTitle = "Privacy"
	WizardPrivacyBody  = "The installer only contacts the manifest and download servers. No usage data is collected."

	WizardInstallingTitle = "Installing"
	WizardExitPrompt      = "Exit the installer?"

	WizardDoneTitle   = "Done"
	WizardDoneBodyFmt = "The client was installed to %s.\n\nInstaller log: %s"
)
