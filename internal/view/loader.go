// Package view содержит состояние экранов дашборда: загрузку данных, фильтры и форматирование.
package view

import (
	"context"
	"sync"
)

// State содержит снимок состояния загрузки экрана.
type State[T any] struct {
	Data       T
	Loading    bool
	Err        error
	Generation uint64
}

// Ticket помечает один запуск загрузки.
type Ticket struct {
	generation uint64
}

// Loader хранит результат последней загрузки экрана. Каждая загрузка получает
// номер поколения; ответ устаревшего поколения отбрасывается, поэтому медленный
// первый запрос не перезапишет результат более позднего.
type Loader[T any] struct {
	mu      sync.Mutex
	current uint64
	state   State[T]
}

// NewLoader создаёт пустой загрузчик.
func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{}
}

// Begin открывает новое поколение и отмечает экран как загружающийся.
func (l *Loader[T]) Begin() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current++
	l.state.Loading = true
	return Ticket{generation: l.current}
}

// Commit сохраняет результат, если билет принадлежит последнему поколению.
// Возвращает false, если ответ устарел и был отброшен.
func (l *Loader[T]) Commit(t Ticket, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.generation != l.current {
		return false
	}

	l.state.Loading = false
	l.state.Err = err
	l.state.Generation = t.generation
	if err == nil {
		l.state.Data = data
	}
	return true
}

// Load выполняет fetch в новом поколении и возвращает состояние после фиксации.
func (l *Loader[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) State[T] {
	t := l.Begin()
	data, err := fetch(ctx)
	l.Commit(t, data, err)
	return l.State()
}

// State возвращает текущий снимок.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
