// Package action resolves a source block's language tag to an executable
// action and runs it. Resolution order: case-insensitive alias table,
// then a user-supplied custom action table, then the external execution
// delegate. Delegate work runs detached from the interaction thread; a
// second request for the same block while one is in flight is rejected,
// never queued or silently dropped.
package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrBusy rejects a dispatch while another action for the same block is
// still running.
var ErrBusy = errors.New("an action for this block is already running")

// NoActionError reports a language with neither a custom action nor a
// resolvable delegate. Fatal to the request, not to the session.
type NoActionError struct {
	Language string
}

func (e *NoActionError) Error() string {
	return fmt.Sprintf("no primary action for %s blocks", e.Language)
}

// Params is the delegate parameter set. Merging is last-writer-wins:
// delegate defaults, then per-language header overrides, then call-site
// params.
type Params map[string]string

// MergeParams layers params left to right into a fresh map.
func MergeParams(layers ...Params) Params {
	out := Params{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// Delegate is the org-babel-equivalent execution collaborator.
type Delegate interface {
	HasDelegate(lang string) bool
	DefaultParams(lang string) Params
	Execute(ctx context.Context, lang, body string, params Params) (string, error)
}

// Custom is a user-provided action for one canonical language.
type Custom struct {
	Confirm string // confirmation prompt shown before running
	Run     func(ctx context.Context, body string) (string, error)
}

// Confirmer asks the user to approve an action. Returning false is a
// normal cancellation, not an error.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier is the transient, non-blocking failure surface.
type Notifier interface {
	Notifyf(format string, args ...any)
}

// OutputKind classifies what a delegate produced.
type OutputKind int

const (
	OutputNone OutputKind = iota
	OutputText            // literal output
	OutputFile            // output named an existing file; Text holds its contents
	OutputImage           // output named an existing image file
)

// Output is the classified result of one execution.
type Output struct {
	Kind OutputKind
	Text string
	Path string
}

// Result is delivered to the completion callback.
type Result struct {
	OK     bool
	Output Output
	Err    error
}

// Options configures a Dispatcher. Tables are passed in explicitly; the
// dispatcher keeps no ambient global state.
type Options struct {
	Aliases   *AliasTable
	Custom    map[string]Custom
	Delegate  Delegate
	Overrides map[string]Params // per-language header overrides
	Confirm   Confirmer
	Notify    Notifier
}

// Dispatcher runs block actions. Safe for concurrent Dispatch calls;
// per-block exclusivity is enforced internally.
type Dispatcher struct {
	opts    Options
	mu      sync.Mutex
	pending map[int]struct{}
}

// NewDispatcher builds a dispatcher from opts. Nil Confirm approves
// everything; nil Notify drops notifications.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.Aliases == nil {
		opts.Aliases = NewAliasTable(nil)
	}
	if opts.Confirm == nil {
		opts.Confirm = approveAll{}
	}
	if opts.Notify == nil {
		opts.Notify = discard{}
	}
	return &Dispatcher{opts: opts, pending: map[int]struct{}{}}
}

type approveAll struct{}

func (approveAll) Confirm(string) bool { return true }

type discard struct{}

func (discard) Notifyf(string, ...any) {}

// Dispatch resolves and runs the action for one block. blockID must be
// stable for the block within the current snapshot (its body start
// offset). done receives the result once the detached execution
// completes. started=false with a nil error means the user declined: a
// normal cancellation with no side effects and no callback.
func (d *Dispatcher) Dispatch(ctx context.Context, blockID int, rawLang, body string, params Params, done func(Result)) (started bool, err error) {
	lang, ok := d.opts.Aliases.Resolve(rawLang)
	if !ok {
		return false, &NoActionError{Language: rawLang}
	}

	custom, hasCustom := d.opts.Custom[lang]
	hasDelegate := !hasCustom && d.opts.Delegate != nil && d.opts.Delegate.HasDelegate(lang)
	if !hasCustom && !hasDelegate {
		return false, &NoActionError{Language: lang}
	}

	if !d.acquire(blockID) {
		return false, ErrBusy
	}

	// Confirmation runs synchronously on the interaction thread, before
	// anything detaches.
	prompt := "Execute it?"
	if hasCustom && custom.Confirm != "" {
		prompt = custom.Confirm
	}
	if !d.opts.Confirm.Confirm(prompt) {
		d.release(blockID)
		return false, nil
	}

	if hasCustom {
		go d.runCustom(ctx, blockID, custom, body, done)
		return true, nil
	}

	merged := MergeParams(d.opts.Delegate.DefaultParams(lang), d.opts.Overrides[lang], params)
	go d.runDelegate(ctx, blockID, lang, body, merged, done)
	return true, nil
}

// Busy reports whether an action for blockID is in flight.
func (d *Dispatcher) Busy(blockID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[blockID]
	return ok
}

func (d *Dispatcher) acquire(blockID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pending[blockID]; ok {
		return false
	}
	d.pending[blockID] = struct{}{}
	return true
}

func (d *Dispatcher) release(blockID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, blockID)
}

func (d *Dispatcher) runCustom(ctx context.Context, blockID int, c Custom, body string, done func(Result)) {
	defer d.release(blockID)
	out, err := c.Run(ctx, body)
	res := Result{OK: err == nil, Err: err}
	if err != nil {
		d.opts.Notify.Notifyf("action failed: %v", err)
	} else {
		res.Output = Output{Kind: OutputText, Text: out}
	}
	if done != nil {
		done(res)
	}
}

func (d *Dispatcher) runDelegate(ctx context.Context, blockID int, lang, body string, params Params, done func(Result)) {
	defer d.release(blockID)
	out, err := d.opts.Delegate.Execute(ctx, lang, body, params)
	res := Result{OK: err == nil, Err: err}
	switch {
	case err != nil:
		// Failures land on the error surface, not the caller.
		d.opts.Notify.Notifyf("%s execution failed: %v", lang, err)
	case strings.TrimSpace(out) == "":
		d.opts.Notify.Notifyf("no output (verify the %s delegate is installed)", lang)
		res.Output = Output{Kind: OutputNone}
	default:
		res.Output = ClassifyOutput(out)
	}
	if done != nil {
		done(res)
	}
}

// ClassifyOutput decides how delegate output should be surfaced: an
// existing image file renders inline as an image, any other existing file
// is inlined by contents, anything else is literal text.
func ClassifyOutput(out string) Output {
	candidate := strings.TrimSpace(out)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		if isImagePath(candidate) {
			return Output{Kind: OutputImage, Path: candidate}
		}
		contents, err := os.ReadFile(candidate)
		if err == nil {
			return Output{Kind: OutputFile, Path: candidate, Text: string(contents)}
		}
	}
	return Output{Kind: OutputText, Text: out}
}

func isImagePath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return true
	}
	return false
}
