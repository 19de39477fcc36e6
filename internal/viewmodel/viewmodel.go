// Package viewmodel implements the list screen state shared by every
// back-office collection: loading with related data, filtering, the
// edit/delete dialogs and mutation followed by a full reload.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// DefaultNoticeTTL is how long a success notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

var (
	// ErrDisposed is returned by operations on a disposed view model.
	ErrDisposed = errors.New("view model disposed")
	// ErrNothingSelected is returned when confirming a delete without a
	// selected record.
	ErrNothingSelected = errors.New("no record selected")
	// ErrNoPendingDelete is returned when confirming a delete while the
	// delete confirmation is not open.
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)

// Phase is the loading lifecycle of a screen.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// Modal identifies the dialog currently open.
type Modal string

const (
	ModalNone          Modal = "none"
	ModalEdit          Modal = "edit"
	ModalConfirmDelete Modal = "confirm_delete"
)

// Operation names what the user was doing when a failure happened.
type Operation string

const (
	OpLoad        Operation = "load"
	OpLoadRelated Operation = "load_related"
	OpSave        Operation = "save"
	OpDelete      Operation = "delete"
)

// Failure is the banner shown for a failed operation. Message is a fixed
// human-readable text, never the raw error.
type Failure struct {
	Op      Operation        `json:"op"`
	Kind    models.ErrorKind `json:"kind"`
	Related models.Kind      `json:"related,omitempty"`
	Message string           `json:"message"`
}

// Config parametrises a ListViewModel for one entity.
type Config[T models.Record] struct {
	Kind    models.Kind
	Store   Store[T]
	Related []Relation

	// Fields returns the searchable text of a record.
	Fields func(rec T, related *Related) []string
	// NewDraft returns the empty record used for creation.
	NewDraft func(now time.Time) T
	// Normalize adjusts a record before it is edited, e.g. trimming dates.
	Normalize func(rec T, now time.Time) T
	// Prepare adjusts a draft right before it is sent.
	Prepare func(rec T, now time.Time) T
	// Check rejects drafts the form would not allow. Returned errors should
	// wrap models.ErrValidation.
	Check func(rec T) error

	NoticeTTL time.Duration
	Now       func() time.Time
	Logger    *zap.Logger
}

// State is an immutable snapshot of a view model.
type State[T any] struct {
	Kind            models.Kind `json:"kind"`
	Phase           Phase       `json:"phase"`
	Loading         bool        `json:"loading"`
	Records         []T         `json:"records"`
	Filtered        []T         `json:"filtered"`
	Related         Related     `json:"related"`
	FilterTerm      string      `json:"filter_term"`
	Selected        T           `json:"selected"`
	Modal           Modal       `json:"modal"`
	Error           *Failure    `json:"error,omitempty"`
	RelatedFailures []Failure   `json:"related_failures,omitempty"`
	Notice          string      `json:"notice,omitempty"`
	CanCreate       bool        `json:"can_create"`
	CanDelete       bool        `json:"can_delete"`
}

// ListViewModel owns the state of one list screen.
type ListViewModel[T models.Record] struct {
	cfg    Config[T]
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	phase           Phase
	records         []T
	related         Related
	relatedFailures []Failure
	filterTerm      string
	selected        T
	modal           Modal
	lastErr         *Failure
	notice          string
	noticeTimer     *time.Timer
	noticeSeq       uint64
	loadSeq         uint64
	disposed        bool
}

// New builds a view model in the Idle phase.
func New[T models.Record](cfg Config[T]) *ListViewModel[T] {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = DefaultNoticeTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	vm := &ListViewModel[T]{
		cfg:    cfg,
		logger: cfg.Logger.With(zap.String("screen", string(cfg.Kind))),
		ctx:    ctx,
		cancel: cancel,
		phase:  PhaseIdle,
		modal:  ModalNone,
	}
	vm.selected = vm.emptyDraft()
	return vm
}

// Kind returns the primary entity kind.
func (vm *ListViewModel[T]) Kind() models.Kind { return vm.cfg.Kind }

// Load fetches the primary collection and every related collection in
// parallel. A primary failure moves the screen to Failed; related failures
// are recorded but the screen still becomes Ready.
func (vm *ListViewModel[T]) Load(ctx context.Context) error {
	return vm.load(ctx, true)
}

func (vm *ListViewModel[T]) load(ctx context.Context, withRelated bool) error {
	ctx, done := vm.bind(ctx)
	defer done()

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return ErrDisposed
	}
	vm.phase = PhaseLoading
	vm.loadSeq++
	seq := vm.loadSeq
	if withRelated {
		vm.lastErr = nil
		vm.relatedFailures = nil
	}
	vm.mu.Unlock()

	var relations []Relation
	if withRelated {
		relations = vm.cfg.Related
	}

	var (
		g        errgroup.Group
		records  []T
		appliers = make([]func(*Related), len(relations))
		relErrs  = make([]error, len(relations))
	)
	g.Go(func() error {
		var err error
		records, err = vm.cfg.Store.List(ctx)
		return err
	})
	for i, rel := range relations {
		g.Go(func() error {
			appliers[i], relErrs[i] = rel.fetch(ctx)
			return nil
		})
	}
	primaryErr := g.Wait()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.disposed || seq != vm.loadSeq {
		vm.logger.Debug("dropping stale load result", zap.Bool("disposed", vm.disposed))
		if vm.disposed {
			return ErrDisposed
		}
		return nil
	}

	for i, rel := range relations {
		if relErrs[i] != nil {
			vm.logger.Warn("related collection failed to load",
				zap.String("related", string(rel.Kind)), zap.Error(relErrs[i]))
			vm.relatedFailures = append(vm.relatedFailures, Failure{
				Op:      OpLoadRelated,
				Kind:    models.KindOf(relErrs[i]),
				Related: rel.Kind,
				Message: "Could not load " + rel.Kind.Plural(),
			})
			continue
		}
		appliers[i](&vm.related)
	}

	if primaryErr != nil {
		vm.logger.Error("collection failed to load", zap.Error(primaryErr))
		vm.phase = PhaseFailed
		vm.lastErr = &Failure{
			Op:      OpLoad,
			Kind:    models.KindOf(primaryErr),
			Message: "Could not load " + vm.cfg.Kind.Plural(),
		}
		return fmt.Errorf("load %s: %w", vm.cfg.Kind, primaryErr)
	}

	vm.records = records
	vm.phase = PhaseReady
	if len(vm.relatedFailures) > 0 && vm.lastErr == nil {
		first := vm.relatedFailures[0]
		vm.lastErr = &first
	}
	vm.logger.Debug("collection loaded", zap.Int("records", len(records)))
	return nil
}

// SetFilterTerm updates the free-text filter.
func (vm *ListViewModel[T]) SetFilterTerm(term string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filterTerm = term
}

// Filtered returns the records matching the current filter term.
func (vm *ListViewModel[T]) Filtered() []T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return Filter(vm.records, &vm.related, vm.filterTerm, vm.cfg.Fields)
}

// Records returns the last successfully loaded collection.
func (vm *ListViewModel[T]) Records() []T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.records)
}

// CanCreate reports whether the store supports creating records.
func (vm *ListViewModel[T]) CanCreate() bool {
	_, ok := vm.cfg.Store.(Creator[T])
	return ok
}

// CanDelete reports whether the store supports deleting records.
func (vm *ListViewModel[T]) CanDelete() bool {
	_, ok := vm.cfg.Store.(Deleter)
	return ok
}

// BeginCreate opens the edit dialog on an empty draft.
func (vm *ListViewModel[T]) BeginCreate() error {
	if !vm.CanCreate() {
		return fmt.Errorf("create %s: %w", vm.cfg.Kind.Singular(), models.ErrUnsupported)
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return ErrDisposed
	}
	vm.selected = vm.emptyDraft()
	vm.modal = ModalEdit
	return nil
}

// BeginEdit opens the edit dialog on a copy of rec.
func (vm *ListViewModel[T]) BeginEdit(rec T) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return ErrDisposed
	}
	if vm.cfg.Normalize != nil {
		rec = vm.cfg.Normalize(rec, vm.cfg.Now())
	}
	vm.selected = rec
	vm.modal = ModalEdit
	return nil
}

// BeginDelete opens the delete confirmation for rec.
func (vm *ListViewModel[T]) BeginDelete(rec T) error {
	if !vm.CanDelete() {
		return fmt.Errorf("delete %s: %w", vm.cfg.Kind.Singular(), models.ErrUnsupported)
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return ErrDisposed
	}
	vm.selected = rec
	vm.modal = ModalConfirmDelete
	return nil
}

// Cancel closes any dialog and discards the selected record.
func (vm *ListViewModel[T]) Cancel() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.selected = vm.emptyDraft()
	vm.modal = ModalNone
}

// DismissError clears the error banner.
func (vm *ListViewModel[T]) DismissError() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.lastErr = nil
}

// Submit creates the draft when it has no id and updates it otherwise. On
// success the dialog closes, a notice is shown and the primary collection
// is reloaded; related collections are left as they are. On failure the
// dialog stays open with the draft kept for a retry. The returned error
// reports the mutation only; a failed reload is reflected in the state.
func (vm *ListViewModel[T]) Submit(ctx context.Context, draft T) error {
	ctx, done := vm.bind(ctx)
	defer done()

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return ErrDisposed
	}
	prev := vm.phase
	vm.phase = PhaseLoading
	vm.lastErr = nil
	vm.selected = draft
	now := vm.cfg.Now()
	vm.mu.Unlock()

	if vm.cfg.Prepare != nil {
		draft = vm.cfg.Prepare(draft, now)
	}

	creating := draft.Identity().IsZero()
	err := vm.mutate(ctx, draft, creating)
	if err != nil {
		vm.fail(prev, OpSave, "Error saving the "+vm.cfg.Kind.Singular(), err)
		return err
	}

	verb := "updated"
	if creating {
		verb = "created"
	}
	vm.logger.Info("record saved", zap.String("id", draft.Identity().String()), zap.String("action", verb))
	vm.succeed(fmt.Sprintf("%s %s successfully!", capitalize(vm.cfg.Kind.Singular()), verb))

	_ = vm.load(ctx, false)
	return nil
}

func (vm *ListViewModel[T]) mutate(ctx context.Context, draft T, creating bool) error {
	if vm.cfg.Check != nil {
		if err := vm.cfg.Check(draft); err != nil {
			return err
		}
	}
	if creating {
		creator, ok := vm.cfg.Store.(Creator[T])
		if !ok {
			return fmt.Errorf("create %s: %w", vm.cfg.Kind.Singular(), models.ErrUnsupported)
		}
		_, err := creator.Create(ctx, draft)
		return err
	}
	_, err := vm.cfg.Store.Update(ctx, draft.Identity(), draft)
	return err
}

// ConfirmDelete deletes the selected record and reloads the primary
// collection. It only acts while the delete confirmation is open. On failure
// the confirmation stays open.
func (vm *ListViewModel[T]) ConfirmDelete(ctx context.Context) error {
	ctx, done := vm.bind(ctx)
	defer done()

	deleter, ok := vm.cfg.Store.(Deleter)
	if !ok {
		return fmt.Errorf("delete %s: %w", vm.cfg.Kind.Singular(), models.ErrUnsupported)
	}

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return ErrDisposed
	}
	if vm.modal != ModalConfirmDelete {
		vm.mu.Unlock()
		return ErrNoPendingDelete
	}
	id := vm.selected.Identity()
	if id.IsZero() {
		vm.mu.Unlock()
		return ErrNothingSelected
	}
	prev := vm.phase
	vm.phase = PhaseLoading
	vm.lastErr = nil
	vm.mu.Unlock()

	if err := deleter.Delete(ctx, id); err != nil {
		vm.fail(prev, OpDelete, "Error deleting the "+vm.cfg.Kind.Singular(), err)
		return err
	}

	vm.logger.Info("record deleted", zap.String("id", id.String()))
	vm.succeed(capitalize(vm.cfg.Kind.Singular()) + " deleted successfully!")

	_ = vm.load(ctx, false)
	return nil
}

// Snapshot returns a copy of the current state.
func (vm *ListViewModel[T]) Snapshot() State[T] {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	st := State[T]{
		Kind:            vm.cfg.Kind,
		Phase:           vm.phase,
		Loading:         vm.phase == PhaseLoading,
		Records:         slices.Clone(vm.records),
		Filtered:        Filter(vm.records, &vm.related, vm.filterTerm, vm.cfg.Fields),
		Related:         vm.related,
		FilterTerm:      vm.filterTerm,
		Selected:        vm.selected,
		Modal:           vm.modal,
		RelatedFailures: slices.Clone(vm.relatedFailures),
		Notice:          vm.notice,
		CanCreate:       vm.CanCreate(),
		CanDelete:       vm.CanDelete(),
	}
	if st.Records == nil {
		st.Records = []T{}
	}
	if vm.lastErr != nil {
		e := *vm.lastErr
		st.Error = &e
	}
	return st
}

// Dispose tears the view model down. In-flight calls are cancelled and
// their results dropped; the pending notice timer is stopped.
func (vm *ListViewModel[T]) Dispose() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.disposed = true
	if vm.noticeTimer != nil {
		vm.noticeTimer.Stop()
		vm.noticeTimer = nil
	}
	vm.cancel()
}

// Disposed reports whether Dispose was called.
func (vm *ListViewModel[T]) Disposed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.disposed
}

// bind derives a context cancelled by either the caller or Dispose.
func (vm *ListViewModel[T]) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(vm.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (vm *ListViewModel[T]) fail(prev Phase, op Operation, message string, err error) {
	vm.logger.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.phase = prev
	vm.lastErr = &Failure{Op: op, Kind: models.KindOf(err), Message: message}
}

func (vm *ListViewModel[T]) succeed(notice string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.modal = ModalNone
	vm.selected = vm.emptyDraft()
	vm.setNoticeLocked(notice)
}

// setNoticeLocked shows notice and schedules its removal. A newer notice
// supersedes the pending removal of an older one.
func (vm *ListViewModel[T]) setNoticeLocked(notice string) {
	if vm.noticeTimer != nil {
		vm.noticeTimer.Stop()
	}
	vm.notice = notice
	vm.noticeSeq++
	seq := vm.noticeSeq
	vm.noticeTimer = time.AfterFunc(vm.cfg.NoticeTTL, func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		if vm.disposed || seq != vm.noticeSeq {
			return
		}
		vm.notice = ""
		vm.noticeTimer = nil
	})
}

func (vm *ListViewModel[T]) emptyDraft() T {
	if vm.cfg.NewDraft == nil {
		var zero T
		return zero
	}
	return vm.cfg.NewDraft(vm.cfg.Now())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
