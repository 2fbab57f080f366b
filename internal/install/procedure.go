package install

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/manifest"
	"github.com/conn-castle/hinstaller/internal/messages"
)

// Result codes returned by a Procedure.
const (
	CodeSuccess = 0
	CodeFailed  = 1
)

// Procedure performs the installation for a config snapshot.
// Events are emitted on sink in order; a non-zero code means the run failed after
// reporting why, and a non-nil error means the run failed unexpectedly.
type Procedure interface {
	Install(ctx context.Context, cfg *config.InstallerConfig, sink Sink) (int, error)
}

// Fetcher downloads a URL to a destination path.
type Fetcher interface {
	Download(ctx context.Context, url string, dest string) error
}

// Installer is the default Procedure: it places the client artifact, the selected
// addons and an optional launcher profile under cfg.InstallDir.
type Installer struct {
	System        System
	Fetcher       Fetcher
	LocalArtifact string
	Log           log.FieldLogger

	now func() time.Time
}

// NewInstaller returns an Installer backed by the OS filesystem and an HTTP downloader.
func NewInstaller(localArtifact string, logger log.FieldLogger) *Installer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Installer{
		System:        RealSystem{},
		Fetcher:       NewDownloader(),
		LocalArtifact: localArtifact,
		Log:           logger,
	}
}

type launcherProfile struct {
	ID          string            `json:"id"`
	Time        string            `json:"time"`
	ReleaseTime string            `json:"releaseTime"`
	Type        string            `json:"type"`
	MainClass   string            `json:"mainClass"`
	Arguments   map[string]string `json:"arguments"`
	Libraries   []profileLibrary  `json:"libraries"`
}

type profileLibrary struct {
	Name string `json:"name"`
}

// Install runs the procedure. See Procedure.
func (inst *Installer) Install(ctx context.Context, cfg *config.InstallerConfig, sink Sink) (int, error) {
	if cfg == nil {
		return CodeFailed, errors.New(messages.InstallConfigRequired)
	}
	if cfg.Version == nil {
		return CodeFailed, errors.New(messages.InstallVersionRequired)
	}
	if cfg.InstallDir == "" {
		return CodeFailed, errors.New(messages.InstallDirRequired)
	}
	if inst.System == nil {
		return CodeFailed, errors.New(messages.InstallSystemRequired)
	}
	if sink == nil {
		sink = Discard
	}
	logger := inst.logger().WithField("version", cfg.Version.Label())
	version := cfg.Version

	sink.Emit(NewStatus(StageStarting, messages.InstallStarting, version))
	sink.Emit(NewStatus(StageStarting, messages.InstallStatusPreparing, cfg.InstallDir))
	artifact := artifactPath(cfg.InstallDir, version)
	for _, dir := range []string{cfg.InstallDir, filepath.Dir(artifact)} {
		if err := inst.System.MkdirAll(dir, 0o755); err != nil {
			return CodeFailed, fmt.Errorf(messages.InstallCreateDirFailedFmt, dir, err)
		}
	}

	if version.IsLocal() {
		if inst.LocalArtifact == "" {
			return CodeFailed, errors.New(messages.InstallLocalArtifactRequired)
		}
		sink.Emit(NewStatus(StageDownloading, fmt.Sprintf(messages.InstallStatusCopyingFmt, inst.LocalArtifact), inst.LocalArtifact))
		if err := inst.copyFile(inst.LocalArtifact, artifact); err != nil {
			sink.Emit(NewError(StageDownloading, messages.InstallErrorDownload, err))
			return CodeFailed, nil
		}
		if code := inst.skipAddons(cfg, sink); code != CodeSuccess {
			return code, nil
		}
	} else {
		if inst.Fetcher == nil {
			return CodeFailed, errors.New(messages.InstallFetcherRequired)
		}
		sink.Emit(NewStatus(StageDownloading, fmt.Sprintf(messages.InstallStatusDownloadingFmt, version.Label()), version.URL))
		if err := inst.Fetcher.Download(ctx, version.URL, artifact); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return CodeFailed, ctxErr
			}
			sink.Emit(NewError(StageDownloading, messages.InstallErrorDownload, err))
			return CodeFailed, nil
		}
		if version.Checksum != "" {
			sink.Emit(NewStatus(StageVerifying, messages.InstallStatusVerifying, version.Checksum))
			if err := VerifyChecksum(inst.System, artifact, version.Checksum); err != nil {
				_ = inst.System.Remove(artifact)
				sink.Emit(NewError(StageVerifying, messages.InstallErrorVerify, err))
				return CodeFailed, nil
			}
		}

		if code, err := inst.installAddons(ctx, cfg, sink); err != nil || code != CodeSuccess {
			return code, err
		}
	}

	if cfg.CreateProfile {
		if err := ctx.Err(); err != nil {
			return CodeFailed, err
		}
		sink.Emit(NewStatus(StageProfile, messages.InstallStatusProfile, nil))
		if err := inst.writeProfile(cfg.InstallDir, version); err != nil {
			sink.Emit(NewError(StageProfile, messages.InstallErrorProfile, err))
			return CodeFailed, nil
		}
	}

	sink.Emit(NewStatus(StageDone, messages.InstallStatusDone, artifact))
	logger.WithField("path", artifact).Info(messages.InstallSuccess)
	return CodeSuccess, nil
}

// skipAddons reports the selected addons a local install leaves out.
// Unknown IDs fail the install the same way they do for a remote install.
func (inst *Installer) skipAddons(cfg *config.InstallerConfig, sink Sink) int {
	if len(cfg.Addons) == 0 {
		return CodeSuccess
	}
	for _, id := range cfg.Addons {
		if _, err := LookupAddon(id); err != nil {
			sink.Emit(NewError(StageAddons, fmt.Sprintf(messages.InstallErrorAddonFmt, id), err))
			return CodeFailed
		}
	}
	sink.Emit(NewStatus(StageAddons, fmt.Sprintf(messages.InstallStatusAddonsLocalFmt, strings.Join(cfg.Addons, ", ")), cfg.Addons))
	return CodeSuccess
}

func (inst *Installer) installAddons(ctx context.Context, cfg *config.InstallerConfig, sink Sink) (int, error) {
	if len(cfg.Addons) == 0 {
		return CodeSuccess, nil
	}
	dir := filepath.Join(cfg.InstallDir, "addons")
	if err := inst.System.MkdirAll(dir, 0o755); err != nil {
		return CodeFailed, fmt.Errorf(messages.InstallCreateDirFailedFmt, dir, err)
	}
	for _, id := range cfg.Addons {
		if err := ctx.Err(); err != nil {
			return CodeFailed, err
		}
		failed := fmt.Sprintf(messages.InstallErrorAddonFmt, id)
		addon, err := LookupAddon(id)
		if err != nil {
			sink.Emit(NewError(StageAddons, failed, err))
			return CodeFailed, nil
		}
		sink.Emit(NewStatus(StageAddons, fmt.Sprintf(messages.InstallStatusAddonFmt, addon.Name), addon))
		src, err := addon.URL(cfg.Version.URL)
		if err == nil {
			err = inst.Fetcher.Download(ctx, src, filepath.Join(dir, addon.FileName()))
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return CodeFailed, ctxErr
			}
			sink.Emit(NewError(StageAddons, failed, &AddonLoadError{ID: id, Err: err}))
			return CodeFailed, nil
		}
	}
	return CodeSuccess, nil
}

func (inst *Installer) copyFile(src string, dest string) error {
	in, err := inst.System.Open(src)
	if err != nil {
		return fmt.Errorf(messages.InstallReadFailedFmt, src, err)
	}
	defer func() { _ = in.Close() }()
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, src, err)
	}
	if err := inst.System.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf(messages.InstallWriteFailedFmt, dest, err)
	}
	return nil
}

func (inst *Installer) writeProfile(installDir string, version *manifest.VersionManifest) error {
	dir := filepath.Join(installDir, "versions", version.ID)
	if err := inst.System.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFailedFmt, dir, err)
	}
	stamp := inst.clock()().UTC().Format(time.RFC3339)
	profile := launcherProfile{
		ID:          version.ID,
		Time:        stamp,
		ReleaseTime: stamp,
		Type:        "release",
		MainClass:   version.Tweaker,
		Arguments:   map[string]string{"tweakClass": version.Tweaker},
		Libraries:   []profileLibrary{{Name: version.Artifact}},
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.InstallEncodeProfileFmt, err)
	}
	data = append(data, '\n')
	target := filepath.Join(dir, version.ID+".json")
	if err := inst.System.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf(messages.InstallWriteFailedFmt, target, err)
	}
	return nil
}

func (inst *Installer) logger() log.FieldLogger {
	if inst.Log == nil {
		return log.StandardLogger()
	}
	return inst.Log
}

func (inst *Installer) clock() func() time.Time {
	if inst.now == nil {
		return time.Now
	}
	return inst.now
}

// artifactPath places the client under <installDir>/libraries using the manifest path.
func artifactPath(installDir string, version *manifest.VersionManifest) string {
	rel := version.Path
	if rel == "" {
		rel = path.Join(version.ID, version.ID+".jar")
	}
	return filepath.Join(installDir, "libraries", filepath.FromSlash(rel))
}
