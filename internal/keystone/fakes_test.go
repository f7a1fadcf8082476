package keystone

import (
	"context"
	"errors"
	"sync"

	"wallet-keystone/internal/notify"
	"wallet-keystone/internal/owner"
)

type fakeDevice struct {
	initErr      error
	available    bool
	onDisconnect func()
}

func (d *fakeDevice) Initialize(ctx context.Context, onDisconnect func()) error {
	if d.initErr != nil {
		return d.initErr
	}
	d.available = true
	d.onDisconnect = onDisconnect
	return nil
}

func (d *fakeDevice) Available() bool { return d.available }

// unplug 模拟设备断开
func (d *fakeDevice) unplug() {
	d.available = false
	if d.onDisconnect != nil {
		d.onDisconnect()
	}
}

type fakeWallet struct {
	accountIDs []string
	getErr     error
	addErrs    map[string]error
	saveErr    error

	// onAdd 在 AddAccountID 执行期间调用，用来观察 pending 阶段的状态
	onAdd func(accountID string)

	added []string
	saved []AccountEntry
}

func (w *fakeWallet) GetAccountIDs(ctx context.Context, path string) ([]string, error) {
	if w.getErr != nil {
		return nil, w.getErr
	}
	return w.accountIDs, nil
}

func (w *fakeWallet) AddAccountID(ctx context.Context, accountID string) error {
	w.added = append(w.added, accountID)
	if w.onAdd != nil {
		w.onAdd(accountID)
	}
	return w.addErrs[accountID]
}

func (w *fakeWallet) SaveAndSelectAccounts(ctx context.Context, accounts []AccountEntry) error {
	w.saved = accounts
	return w.saveErr
}

type fakePaths struct {
	failFor map[string]bool
	paths   map[string]string
}

func (p *fakePaths) SetDerivationPath(ctx context.Context, accountID, path string) error {
	if p.failFor[accountID] {
		return errors.New("storage quota exceeded")
	}
	if p.paths == nil {
		p.paths = make(map[string]string)
	}
	p.paths[accountID] = path
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (r *recordingSink) ShowAlert(ctx context.Context, a notify.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recordingSink) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.alerts))
	for _, a := range r.alerts {
		out = append(out, a.MessageCode)
	}
	return out
}

type fakeOwner struct {
	owner owner.AccountOwner
}

func (f fakeOwner) GetAccountOwner(ctx context.Context) (owner.AccountOwner, error) {
	return f.owner, nil
}

type fixture struct {
	svc    *Service
	device *fakeDevice
	wallet *fakeWallet
	paths  *fakePaths
	alerts *recordingSink
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		device: &fakeDevice{},
		wallet: &fakeWallet{addErrs: map[string]error{}},
		paths:  &fakePaths{},
		alerts: &recordingSink{},
	}
	f.svc = NewService(opts, f.device, f.wallet, f.paths, f.alerts)
	return f
}
