// Package screens instantiates the list view model for each back-office
// collection and exposes the result to the presentation shell.
package screens

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/lookup"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// Screen is the type-erased surface of a list view model.
type Screen interface {
	Kind() models.Kind
	Title() string
	Load(ctx context.Context) error
	View() View
	Loading() bool
	SetFilterTerm(term string)
	BeginCreate() error
	BeginEdit(id models.ID) error
	BeginDelete(id models.ID) error
	Submit(ctx context.Context, payload []byte) error
	ConfirmDelete(ctx context.Context) error
	Cancel()
	DismissError()
	Dispose()
}

// View is what the presentation shell renders.
type View struct {
	Kind            models.Kind         `json:"kind"`
	Title           string              `json:"title"`
	Phase           viewmodel.Phase     `json:"phase"`
	Loading         bool                `json:"loading"`
	ShowTable       bool                `json:"show_table"`
	FilterTerm      string              `json:"filter_term"`
	Total           int                 `json:"total"`
	Rows            []any               `json:"rows"`
	Related         viewmodel.Related   `json:"related"`
	Selected        any                 `json:"selected"`
	Modal           viewmodel.Modal     `json:"modal"`
	Error           *viewmodel.Failure  `json:"error,omitempty"`
	RelatedFailures []viewmodel.Failure `json:"related_failures,omitempty"`
	Notice          string              `json:"notice,omitempty"`
	CanCreate       bool                `json:"can_create"`
	CanDelete       bool                `json:"can_delete"`
}

// Options carries the settings shared by every screen.
type Options struct {
	NoticeTTL time.Duration
	Now       func() time.Time
	Logger    *zap.Logger
}

// screen adapts a ListViewModel to Screen.
type screen[T models.Record] struct {
	title string
	vm    *viewmodel.ListViewModel[T]
	row   func(T, *viewmodel.Related) any
}

func newScreen[T models.Record](title string, cfg viewmodel.Config[T], opts Options, row func(T, *viewmodel.Related) any) *screen[T] {
	cfg.NoticeTTL = opts.NoticeTTL
	cfg.Now = opts.Now
	if opts.Logger != nil {
		cfg.Logger = opts.Logger.Named("screen")
	}
	if row == nil {
		row = func(rec T, _ *viewmodel.Related) any { return rec }
	}
	return &screen[T]{title: title, vm: viewmodel.New(cfg), row: row}
}

func (s *screen[T]) Kind() models.Kind { return s.vm.Kind() }
func (s *screen[T]) Title() string     { return s.title }

func (s *screen[T]) Load(ctx context.Context) error { return s.vm.Load(ctx) }

func (s *screen[T]) Loading() bool {
	return s.vm.Snapshot().Phase == viewmodel.PhaseLoading
}

func (s *screen[T]) View() View {
	st := s.vm.Snapshot()
	rows := make([]any, 0, len(st.Filtered))
	for _, rec := range st.Filtered {
		rows = append(rows, s.row(rec, &st.Related))
	}
	return View{
		Kind:            st.Kind,
		Title:           s.title,
		Phase:           st.Phase,
		Loading:         st.Loading,
		ShowTable:       st.Phase == viewmodel.PhaseReady,
		FilterTerm:      st.FilterTerm,
		Total:           len(st.Records),
		Rows:            rows,
		Related:         st.Related,
		Selected:        st.Selected,
		Modal:           st.Modal,
		Error:           st.Error,
		RelatedFailures: st.RelatedFailures,
		Notice:          st.Notice,
		CanCreate:       st.CanCreate,
		CanDelete:       st.CanDelete,
	}
}

func (s *screen[T]) SetFilterTerm(term string) { s.vm.SetFilterTerm(term) }
func (s *screen[T]) BeginCreate() error        { return s.vm.BeginCreate() }

func (s *screen[T]) BeginEdit(id models.ID) error {
	rec, err := s.find(id)
	if err != nil {
		return err
	}
	return s.vm.BeginEdit(rec)
}

func (s *screen[T]) BeginDelete(id models.ID) error {
	rec, err := s.find(id)
	if err != nil {
		return err
	}
	return s.vm.BeginDelete(rec)
}

func (s *screen[T]) Submit(ctx context.Context, payload []byte) error {
	var draft T
	if err := json.Unmarshal(payload, &draft); err != nil {
		return fmt.Errorf("decode %s: %w: %v", s.vm.Kind().Singular(), models.ErrValidation, err)
	}
	return s.vm.Submit(ctx, draft)
}

func (s *screen[T]) ConfirmDelete(ctx context.Context) error { return s.vm.ConfirmDelete(ctx) }
func (s *screen[T]) Cancel()                                 { s.vm.Cancel() }
func (s *screen[T]) DismissError()                           { s.vm.DismissError() }
func (s *screen[T]) Dispose()                                { s.vm.Dispose() }

func (s *screen[T]) find(id models.ID) (T, error) {
	rec, ok := lookup.Resolve(s.vm.Records(), id)
	if !ok {
		return rec, fmt.Errorf("%s %s: %w", s.vm.Kind().Singular(), id, models.ErrNotFound)
	}
	return rec, nil
}
