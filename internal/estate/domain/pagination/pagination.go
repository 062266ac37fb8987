// Package pagination реализует курсорную пагинацию списков.
package pagination

import "errors"

// ErrAmbiguousArguments возвращается для недопустимого сочетания границ выборки.
var ErrAmbiguousArguments = errors.New("ambiguous pagination arguments")

// Kind определяет направление обхода и строгость сравнения с курсором.
type Kind int

// Виды обхода.
const (
	KindForward Kind = iota
	KindForwardIncluding
	KindBackward
	KindBackwardIncluding
)

// IsForward сообщает, идет ли обход в прямом направлении.
func (k Kind) IsForward() bool {
	return k == KindForward || k == KindForwardIncluding
}

// IsBackward сообщает, идет ли обход в обратном направлении.
func (k Kind) IsBackward() bool {
	return k == KindBackward || k == KindBackwardIncluding
}

// Operator возвращает SQL-оператор сравнения курсорной колонки с курсором.
func (k Kind) Operator() string {
	switch k {
	case KindForwardIncluding:
		return ">="
	case KindBackward:
		return "<"
	case KindBackwardIncluding:
		return "<="
	case KindForward:
	}
	return ">"
}

// Order возвращает направление сортировки SQL для этого вида обхода.
func (k Kind) Order() string {
	if k.IsForward() {
		return "ASC"
	}
	return "DESC"
}

// Arguments описывает запрошенную страницу списка.
type Arguments[C comparable] struct {
	kind   Kind
	limit  int
	cursor *C
}

// NewArguments собирает Arguments из границ relay-стиля.
// Допустимые сочетания (first, after, last, before):
//   - пустое: прямой обход с размером defaultLimit;
//   - first [, after]: прямой обход;
//   - first, after, before при after == before: прямой обход с включением курсора;
//   - last [, before]: обратный обход;
//   - last, after, before при after == before: обратный обход с включением курсора;
//   - after, before при after == before: ровно один элемент по курсору.
//
// Остальные сочетания неоднозначны и отклоняются.
func NewArguments[C comparable](first *int32, after *C, last *int32, before *C, defaultLimit int32) (Arguments[C], error) {
	switch {
	case first == nil && after == nil && last == nil && before == nil:
		return newArguments[C](false, defaultLimit, nil, false)

	case first != nil && after == nil && last == nil && before == nil:
		return newArguments[C](false, *first, nil, false)

	case first != nil && after != nil && last == nil && before == nil:
		return newArguments(false, *first, after, false)

	case first != nil && after != nil && last == nil && before != nil && *after == *before:
		return newArguments(false, *first, after, true)

	case first == nil && after == nil && last != nil && before == nil:
		return newArguments[C](true, *last, nil, false)

	case first == nil && after == nil && last != nil && before != nil:
		return newArguments(true, *last, before, false)

	case first == nil && after != nil && last != nil && before != nil && *after == *before:
		return newArguments(true, *last, before, true)

	case first == nil && after != nil && last == nil && before != nil && *after == *before:
		return newArguments(false, 1, after, true)

	default:
		return Arguments[C]{}, ErrAmbiguousArguments
	}
}

func newArguments[C comparable](backward bool, limit int32, cursor *C, including bool) (Arguments[C], error) {
	if limit < 0 {
		return Arguments[C]{}, ErrAmbiguousArguments
	}

	kind := KindForward
	switch {
	case backward && including:
		kind = KindBackwardIncluding
	case backward:
		kind = KindBackward
	case including:
		kind = KindForwardIncluding
	}

	return Arguments[C]{kind: kind, limit: int(limit), cursor: cursor}, nil
}

// Kind возвращает вид обхода.
func (a Arguments[C]) Kind() Kind {
	return a.kind
}

// Limit возвращает запрошенный размер страницы.
func (a Arguments[C]) Limit() int {
	return a.limit
}

// Cursor возвращает курсор, от которого идет обход.
func (a Arguments[C]) Cursor() *C {
	return a.cursor
}

// ExactCursor возвращает курсор, если запрошен ровно один элемент
// с включением границы.
func (a Arguments[C]) ExactCursor() *C {
	if a.limit != 1 || a.cursor == nil {
		return nil
	}
	if a.kind == KindForwardIncluding || a.kind == KindBackwardIncluding {
		return a.cursor
	}
	return nil
}

// Edge - элемент страницы вместе со своим курсором.
type Edge[C, N any] struct {
	Cursor C
	Node   N
}

// Page - страница списка с признаком наличия продолжения.
// Порядок элементов совпадает с порядком выборки.
type Page[C comparable, N any] struct {
	Edges   []Edge[C, N]
	kind    Kind
	hasMore bool
}

// NewPage собирает страницу из выбранных элементов.
// hasMore указывает, что за пределами страницы остались еще элементы.
func NewPage[C comparable, N any](args Arguments[C], edges []Edge[C, N], hasMore bool) *Page[C, N] {
	return &Page[C, N]{Edges: edges, kind: args.Kind(), hasMore: hasMore}
}

// PageInfo описывает границы страницы.
type PageInfo[C any] struct {
	StartCursor     *C
	EndCursor       *C
	HasNextPage     bool
	HasPreviousPage bool
}

// Info возвращает PageInfo этой страницы.
func (p *Page[C, N]) Info() PageInfo[C] {
	info := PageInfo[C]{
		HasNextPage:     p.hasMore && p.kind.IsForward(),
		HasPreviousPage: p.hasMore && p.kind.IsBackward(),
	}
	if len(p.Edges) > 0 {
		first := p.Edges[0].Cursor
		last := p.Edges[len(p.Edges)-1].Cursor
		info.StartCursor = &first
		info.EndCursor = &last
	}
	return info
}
