package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/install"
	"github.com/conn-castle/hinstaller/internal/manifest"
)

// scriptedUI answers prompts by title. Answer queues are consumed in order and
// the last answer repeats; prompts without a script keep the current value.
type scriptedUI struct {
	mu           sync.Mutex
	confirms     map[string][]bool
	inputs       map[string]string
	selects      map[string]string
	multiSelects map[string][]string
	errs         map[string][]error
	titles       []string
	choices      map[string][]Choice
}

func newScriptedUI() *scriptedUI {
	return &scriptedUI{
		confirms:     map[string][]bool{},
		inputs:       map[string]string{},
		selects:      map[string]string{},
		multiSelects: map[string][]string{},
		errs:         map[string][]error{},
		choices:      map[string][]Choice{},
	}
}

func (u *scriptedUI) record(title string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.titles = append(u.titles, title)
	queue := u.errs[title]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	u.errs[title] = queue[1:]
	return err
}

func (u *scriptedUI) seen() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.titles...)
}

func (u *scriptedUI) Select(title string, choices []Choice, current *string) error {
	u.mu.Lock()
	u.choices[title] = choices
	u.mu.Unlock()
	if err := u.record(title); err != nil {
		return err
	}
	if v, ok := u.selects[title]; ok {
		*current = v
	}
	return nil
}

func (u *scriptedUI) MultiSelect(title string, choices []Choice, selected *[]string) error {
	u.mu.Lock()
	u.choices[title] = choices
	u.mu.Unlock()
	if err := u.record(title); err != nil {
		return err
	}
	if v, ok := u.multiSelects[title]; ok {
		*selected = v
	}
	return nil
}

func (u *scriptedUI) Confirm(title string, value *bool) error {
	if err := u.record(title); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	answers := u.confirms[title]
	if len(answers) == 0 {
		return nil
	}
	*value = answers[0]
	if len(answers) > 1 {
		u.confirms[title] = answers[1:]
	}
	return nil
}

func (u *scriptedUI) Input(title string, value *string) error {
	if err := u.record(title); err != nil {
		return err
	}
	if v, ok := u.inputs[title]; ok {
		*value = v
	}
	return nil
}

func (u *scriptedUI) Note(title string, _ string) error {
	return u.record(title)
}

type fakeSurface struct {
	mu       sync.Mutex
	opened   int
	statuses []string
	sections []string
	success  []string
	failure  []string
}

func (s *fakeSurface) Open(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened++
}

func (s *fakeSurface) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, text)
}

func (s *fakeSurface) Section(title string, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append(s.sections, title)
}

func (s *fakeSurface) Success(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.success = append(s.success, text)
}

func (s *fakeSurface) Failure(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = append(s.failure, text)
}

func (s *fakeSurface) lastStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[len(s.statuses)-1]
}

type fakeStore struct {
	mu     sync.Mutex
	loaded *config.InstallerConfig
	saved  []*config.InstallerConfig
}

func (s *fakeStore) Load() *config.InstallerConfig {
	if s.loaded == nil {
		return config.NewInstallerConfig()
	}
	return s.loaded.Clone()
}

func (s *fakeStore) Save(cfg *config.InstallerConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, cfg)
	return nil
}

type fakeFetcher struct {
	release  chan struct{}
	manifest *manifest.VersionManifest
	err      error
	calls    int
	mu       sync.Mutex
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*manifest.VersionManifest, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.manifest, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProcedure struct {
	mu     sync.Mutex
	run    func(cfg *config.InstallerConfig, sink install.Sink) (int, error)
	called []*config.InstallerConfig
}

func (p *fakeProcedure) Install(_ context.Context, cfg *config.InstallerConfig, sink install.Sink) (int, error) {
	p.mu.Lock()
	p.called = append(p.called, cfg)
	p.mu.Unlock()
	if p.run == nil {
		sink.Emit(install.NewStatus(install.StageStarting, "working", nil))
		return install.CodeSuccess, nil
	}
	return p.run(cfg, sink)
}

func (p *fakeProcedure) calls() []*config.InstallerConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*config.InstallerConfig(nil), p.called...)
}

// manualPresenter queues closures until the test runs them.
type manualPresenter struct {
	mu    sync.Mutex
	queue []func()
}

func (p *manualPresenter) Dispatch(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, fn)
}

func (p *manualPresenter) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// runAt removes and runs the closure at index i.
func (p *manualPresenter) runAt(t *testing.T, i int) {
	t.Helper()
	p.mu.Lock()
	require.Less(t, i, len(p.queue))
	fn := p.queue[i]
	p.queue = append(p.queue[:i], p.queue[i+1:]...)
	p.mu.Unlock()
	fn()
}

func (p *manualPresenter) runNext(t *testing.T) {
	t.Helper()
	p.runAt(t, 0)
}

func (p *manualPresenter) waitLen(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return p.len() >= n }, 2*time.Second, time.Millisecond)
}
