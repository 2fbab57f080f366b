package wizard

import "fmt"

// StepKind identifies a wizard screen.
type StepKind int

const (
	StepLoading StepKind = iota
	StepWelcome
	StepSettings
	StepVersion
	StepAddons
	StepTerms
	StepPrivacy
	StepInstalling
)

var stepNames = map[StepKind]string{
	StepLoading:    "loading",
	StepWelcome:    "welcome",
	StepSettings:   "settings",
	StepVersion:    "version",
	StepAddons:     "addons",
	StepTerms:      "terms",
	StepPrivacy:    "privacy",
	StepInstalling: "installing",
}

func (k StepKind) String() string {
	if name, ok := stepNames[k]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(k))
}

// BuildSteps returns the ordered steps for a run. Local runs skip version selection.
func BuildSteps(local bool) []StepKind {
	steps := []StepKind{StepLoading, StepWelcome, StepSettings}
	if !local {
		steps = append(steps, StepVersion)
	}
	return append(steps, StepAddons, StepTerms, StepPrivacy, StepInstalling)
}
