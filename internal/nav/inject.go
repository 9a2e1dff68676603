package nav

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// CompileURL lowers a URL to the keystrokes that type it. Runes without a
// virtual-key mapping are dropped and returned so the caller can report
// them; they never abort the injection.
func CompileURL(url string) ([]platform.Keystroke, []string) {
	keys := make([]platform.Keystroke, 0, len(url))
	var skipped []string
	for _, r := range url {
		ks, ok := platform.ResolveRune(r)
		if !ok {
			skipped = append(skipped, string(r))
			continue
		}
		keys = append(keys, ks)
	}
	return keys, skipped
}

// Injector types a URL into the address bar of whatever window holds
// focus: focus chord, optional select-all, one keystroke per character,
// then the commit key. It never reads back what was typed.
type Injector struct {
	t         Timing
	selectAll bool
	log       *logging.Logger
}

// NewInjector creates an injector. selectAll clears stale address bar
// text with a select-all chord before typing.
func NewInjector(t Timing, selectAll bool, log *logging.Logger) *Injector {
	if log == nil {
		log = logging.Nop()
	}
	return &Injector{t: t, selectAll: selectAll, log: log}
}

// Inject runs the full typing sequence through one Inputter. Cancellation
// is honored at character boundaries only: a character in flight always
// completes its nested press so no modifier is left held.
func (j *Injector) Inject(ctx context.Context, in platform.Inputter, url string) ([]string, error) {
	if url == "" {
		return nil, wrapErr(ErrInvalidArgument, StageInjecting, fmt.Errorf("empty url"))
	}
	keys, skipped := CompileURL(url)
	for _, c := range skipped {
		j.log.Warn("character not typeable, skipping", zap.String("char", c))
	}
	if len(keys) == 0 {
		return skipped, wrapErr(ErrInvalidArgument, StageInjecting, fmt.Errorf("url has no typeable characters"))
	}

	lKey, _ := platform.ResolveRune('l')
	if err := j.chord(in, platform.VKControl, lKey.VK); err != nil {
		return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("focus chord: %w", err))
	}
	if err := sleep(ctx, j.t.BarSettle()); err != nil {
		return skipped, wrapErr(ErrInjection, StageInjecting, err)
	}

	if j.selectAll {
		aKey, _ := platform.ResolveRune('a')
		if err := j.chord(in, platform.VKControl, aKey.VK); err != nil {
			return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("select-all chord: %w", err))
		}
		if err := sleep(ctx, j.t.CharDelay()); err != nil {
			return skipped, wrapErr(ErrInjection, StageInjecting, err)
		}
	}

	for i, ks := range keys {
		if err := ctx.Err(); err != nil {
			return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("canceled after %d of %d characters: %w", i, len(keys), err))
		}
		if err := j.press(in, ks); err != nil {
			return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("character %d: %w", i, err))
		}
		if err := sleep(ctx, j.charDelay()); err != nil {
			return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("canceled after %d of %d characters: %w", i+1, len(keys), err))
		}
	}

	if err := sleep(ctx, j.t.CommitWait()); err != nil {
		return skipped, wrapErr(ErrInjection, StageInjecting, err)
	}
	if err := j.tap(in, platform.VKReturn); err != nil {
		return skipped, wrapErr(ErrInjection, StageInjecting, fmt.Errorf("commit: %w", err))
	}
	return skipped, nil
}

// charDelay returns the base inter-character delay plus jitter, so the
// cadence never looks machine-regular.
func (j *Injector) charDelay() time.Duration {
	d := j.t.CharDelay()
	if j.t.CharJitterMs > 0 {
		d += time.Duration(rand.Intn(j.t.CharJitterMs+1)) * time.Millisecond
	}
	return d
}

// press emits one character as an atomic unit. Shift strictly nests
// around the key, and a failed key press still releases the shift.
func (j *Injector) press(in platform.Inputter, ks platform.Keystroke) error {
	if ks.Shift {
		if err := in.KeyDown(platform.VKShift); err != nil {
			return err
		}
	}
	err := j.tap(in, ks.VK)
	if ks.Shift {
		if upErr := in.KeyUp(platform.VKShift); err == nil {
			err = upErr
		}
	}
	return err
}

// tap holds a key down for the configured hold time. The hold is a plain
// sleep: a character in flight is never cut short.
func (j *Injector) tap(in platform.Inputter, vk platform.VK) error {
	if err := in.KeyDown(vk); err != nil {
		return err
	}
	time.Sleep(j.t.KeyHold())
	return in.KeyUp(vk)
}

// chord presses modifier+key, pausing after the modifier so slow hosts
// register it before the key arrives. The modifier is released on every
// path.
func (j *Injector) chord(in platform.Inputter, mod, key platform.VK) error {
	if err := in.KeyDown(mod); err != nil {
		return err
	}
	time.Sleep(j.t.ChordHold())
	err := j.tap(in, key)
	if upErr := in.KeyUp(mod); err == nil {
		err = upErr
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
